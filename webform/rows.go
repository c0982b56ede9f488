package webform

import (
	"strconv"

	"github.com/mbolis/care-survey/model"
)

type row struct {
	Label string
	Value string
}

func money(s string) string {
	if s == "" {
		return ""
	}
	return "$" + s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// submissionRows lists the submitted values as they were typed.
func submissionRows(s model.Submission) []row {
	return []row{
		{"Name", s.Name},
		{"Age", strconv.Itoa(s.Age)},
		{"Gender", s.Gender},
		{"Marital Status", s.MaritalStatus},
		{"Education Level", s.EducationLevel},
		{"Living Arrangement", s.LivingArrangement},
		{"Annual Income", money(s.AnnualIncome)},
		{"Savings", money(s.Savings)},
		{"Retirement Plan", s.RetirementPlan},
		{"Health Self-Rating", s.HealthRating},
		{"Chronic Conditions", s.ChronicConditions},
		{"ADL Assistance", s.ADLAssistance},
		{"Family History", s.FamilyHistory},
	}
}

func responseRows(r model.Response) []row {
	return []row{
		{"Name", r.Name},
		{"Age", strconv.Itoa(r.Age)},
		{"Gender", deref(r.Gender)},
		{"Marital Status", deref(r.MaritalStatus)},
		{"Education Level", deref(r.EducationLevel)},
		{"Living Arrangement", deref(r.LivingArrangement)},
		{"Annual Income", money(deref(r.AnnualIncome))},
		{"Savings", money(deref(r.Savings))},
		{"Retirement Plan", deref(r.RetirementPlan)},
		{"Health Self-Rating", deref(r.HealthRating)},
		{"Chronic Conditions", deref(r.ChronicConditions)},
		{"ADL Assistance", deref(r.ADLAssistance)},
		{"Family History", deref(r.FamilyHistory)},
	}
}
