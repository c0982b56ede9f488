package model

import "time"

// Response is one stored survey submission. Optional columns are nil when
// the respondent left them out, and encode as JSON null.
type Response struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Age               int       `json:"age"`
	Gender            *string   `json:"gender"`
	MaritalStatus     *string   `json:"marital_status"`
	EducationLevel    *string   `json:"education_level"`
	AnnualIncome      *string   `json:"annual_income"`
	Savings           *string   `json:"savings"`
	HealthRating      *string   `json:"health_rating"`
	ChronicConditions *string   `json:"chronic_conditions"`
	ADLAssistance     *string   `json:"adl_assistance"`
	LivingArrangement *string   `json:"living_arrangement"`
	RetirementPlan    *string   `json:"retirement_plan"`
	FamilyHistory     *string   `json:"family_history"`
	CreatedAt         time.Time `json:"created_at"`
}

// Submission is the payload a client posts to create a response.
type Submission struct {
	Name              string `json:"name"`
	Age               int    `json:"age"`
	Gender            string `json:"gender"`
	MaritalStatus     string `json:"marital_status"`
	EducationLevel    string `json:"education_level"`
	AnnualIncome      string `json:"annual_income"`
	Savings           string `json:"savings"`
	HealthRating      string `json:"health_rating"`
	ChronicConditions string `json:"chronic_conditions"`
	ADLAssistance     string `json:"adl_assistance"`
	LivingArrangement string `json:"living_arrangement"`
	RetirementPlan    string `json:"retirement_plan"`
	FamilyHistory     string `json:"family_history"`
}

// Response converts the submission to a record ready for insertion: empty
// optional values become nil.
func (s Submission) Response() Response {
	return Response{
		Name:              s.Name,
		Age:               s.Age,
		Gender:            Optional(s.Gender),
		MaritalStatus:     Optional(s.MaritalStatus),
		EducationLevel:    Optional(s.EducationLevel),
		AnnualIncome:      Optional(s.AnnualIncome),
		Savings:           Optional(s.Savings),
		HealthRating:      Optional(s.HealthRating),
		ChronicConditions: Optional(s.ChronicConditions),
		ADLAssistance:     Optional(s.ADLAssistance),
		LivingArrangement: Optional(s.LivingArrangement),
		RetirementPlan:    Optional(s.RetirementPlan),
		FamilyHistory:     Optional(s.FamilyHistory),
	}
}

func Optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Stats are the aggregate counts reported by the maintenance tool.
type Stats struct {
	Total   int
	AgeAvg  *float64
	AgeMin  *int
	AgeMax  *int
	Genders []Bucket
	Health  []Bucket
}

// Bucket is one group of a distribution; Value is nil for the group of
// records that left the field unset.
type Bucket struct {
	Value *string
	Count int
}

type Table struct {
	Name    string
	Columns []Column
}

type Column struct {
	Name       string
	Type       string
	NotNull    bool
	PrimaryKey bool
}
