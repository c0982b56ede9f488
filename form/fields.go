package form

type Kind string

const (
	Text   Kind = "text"
	Number Kind = "number"
	Select Kind = "select"
)

const (
	Demographic = "Demographic Information"
	Financial   = "Financial Information"
	Health      = "Health Information"
)

var Sections = []string{Demographic, Financial, Health}

type Field struct {
	Name        string
	Label       string
	Section     string
	Kind        Kind
	Placeholder string
	// Prompt is the empty choice of a select.
	Prompt   string
	Options  []string
	Required bool

	structField string
	value       func(*Record) *string
}

var Fields = []Field{
	{
		Name: "name", Label: "Full Name", Section: Demographic, Kind: Text, Required: true,
		structField: "Name", value: func(r *Record) *string { return &r.Name },
	},
	{
		Name: "age", Label: "Age", Section: Demographic, Kind: Number, Required: true,
		structField: "Age", value: func(r *Record) *string { return &r.Age },
	},
	{
		Name: "gender", Label: "Gender", Section: Demographic, Kind: Select, Required: true,
		Prompt:      "Select gender",
		Options:     []string{"Male", "Female", "Non-binary", "Prefer not to say"},
		structField: "Gender", value: func(r *Record) *string { return &r.Gender },
	},
	{
		Name: "marital_status", Label: "Marital Status", Section: Demographic, Kind: Select,
		Prompt:      "Select status",
		Options:     []string{"Single", "Married", "Divorced", "Widowed", "Separated"},
		structField: "MaritalStatus", value: func(r *Record) *string { return &r.MaritalStatus },
	},
	{
		Name: "education_level", Label: "Education Level", Section: Demographic, Kind: Select,
		Prompt: "Select education",
		Options: []string{
			"Less than high school", "High school", "Some college",
			"Associate degree", "Bachelor's degree", "Graduate degree",
		},
		structField: "EducationLevel", value: func(r *Record) *string { return &r.EducationLevel },
	},
	{
		Name: "living_arrangement", Label: "Living Arrangement", Section: Demographic, Kind: Select,
		Prompt: "Select arrangement",
		Options: []string{
			"Live alone", "Live with spouse/partner", "Live with family",
			"Assisted living", "Nursing home",
		},
		structField: "LivingArrangement", value: func(r *Record) *string { return &r.LivingArrangement },
	},
	{
		Name: "annual_income", Label: "Annual Income ($)", Section: Financial, Kind: Text, Required: true,
		Placeholder: "e.g., 75000",
		structField: "AnnualIncome", value: func(r *Record) *string { return &r.AnnualIncome },
	},
	{
		Name: "savings", Label: "Total Savings ($)", Section: Financial, Kind: Text,
		Placeholder: "e.g., 250000",
		structField: "Savings", value: func(r *Record) *string { return &r.Savings },
	},
	{
		Name: "retirement_plan", Label: "Retirement Plan", Section: Financial, Kind: Select,
		Prompt: "Select plan",
		Options: []string{
			"401(k)", "IRA", "Pension", "Multiple retirement accounts", "No retirement savings",
		},
		structField: "RetirementPlan", value: func(r *Record) *string { return &r.RetirementPlan },
	},
	{
		Name: "health_rating", Label: "Health Self-Rating", Section: Health, Kind: Select, Required: true,
		Prompt:      "Select rating",
		Options:     []string{"Excellent", "Very Good", "Good", "Fair", "Poor"},
		structField: "HealthRating", value: func(r *Record) *string { return &r.HealthRating },
	},
	{
		Name: "chronic_conditions", Label: "Chronic Conditions", Section: Health, Kind: Select,
		Prompt:      "Select option",
		Options:     []string{"None", "1 condition", "2 conditions", "3+ conditions"},
		structField: "ChronicConditions", value: func(r *Record) *string { return &r.ChronicConditions },
	},
	{
		Name: "adl_assistance", Label: "Need Assistance with Daily Activities", Section: Health, Kind: Select,
		Prompt: "Select option",
		Options: []string{
			"No assistance needed", "Minimal assistance", "Moderate assistance", "Significant assistance",
		},
		structField: "ADLAssistance", value: func(r *Record) *string { return &r.ADLAssistance },
	},
	{
		Name: "family_history", Label: "Family History of Long-Term Care Needs", Section: Health, Kind: Select,
		Prompt: "Select option",
		Options: []string{
			"No history", "Parents needed care", "Grandparents needed care",
			"Multiple family members needed care",
		},
		structField: "FamilyHistory", value: func(r *Record) *string { return &r.FamilyHistory },
	},
}

var (
	fieldIndex = map[string]int{}
	// struct field name to form name
	fieldNames = map[string]string{}
)

func init() {
	for i, f := range Fields {
		fieldIndex[f.Name] = i
		fieldNames[f.structField] = f.Name
	}
}

func FieldByName(name string) (Field, bool) {
	i, ok := fieldIndex[name]
	if !ok {
		return Field{}, false
	}
	return Fields[i], true
}

// InSection lists the fields of one section in display order.
func InSection(section string) []Field {
	var fields []Field
	for _, f := range Fields {
		if f.Section == section {
			fields = append(fields, f)
		}
	}
	return fields
}
