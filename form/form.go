// Package form holds the state of the survey form: one typed record, the
// field layout used to render it, and the rules it must pass before it is
// submitted.
package form

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/mbolis/care-survey/model"
)

var ErrUnknownField = errors.New("unknown form field")

// Record is the form as the respondent filled it in. Every value is kept as
// typed, age included, until Submission converts it.
type Record struct {
	Name              string `validate:"notblank"`
	Age               string `validate:"notblank,float"`
	Gender            string `validate:"required"`
	MaritalStatus     string
	EducationLevel    string
	LivingArrangement string
	AnnualIncome      string `validate:"notblank"`
	Savings           string
	RetirementPlan    string
	HealthRating      string `validate:"required"`
	ChronicConditions string
	ADLAssistance     string
	FamilyHistory     string
}

// Set updates one field by its form name, leaving the others untouched.
func (r *Record) Set(name, value string) error {
	f, ok := FieldByName(name)
	if !ok {
		return ErrUnknownField
	}
	*f.value(r) = value
	return nil
}

// Get reads one field by its form name.
func (r *Record) Get(name string) (string, bool) {
	f, ok := FieldByName(name)
	if !ok {
		return "", false
	}
	return *f.value(r), true
}

// Values returns every field keyed by form name.
func (r *Record) Values() map[string]string {
	values := make(map[string]string, len(Fields))
	for _, f := range Fields {
		values[f.Name] = *f.value(r)
	}
	return values
}

// Submission converts a valid record to the API payload. Age is truncated
// to an integer; call Validate first, an unparsable age becomes 0.
func (r *Record) Submission() model.Submission {
	age, _ := strconv.ParseFloat(strings.TrimSpace(r.Age), 64)

	return model.Submission{
		Name:              r.Name,
		Age:               int(math.Trunc(age)),
		Gender:            r.Gender,
		MaritalStatus:     r.MaritalStatus,
		EducationLevel:    r.EducationLevel,
		AnnualIncome:      r.AnnualIncome,
		Savings:           r.Savings,
		HealthRating:      r.HealthRating,
		ChronicConditions: r.ChronicConditions,
		ADLAssistance:     r.ADLAssistance,
		LivingArrangement: r.LivingArrangement,
		RetirementPlan:    r.RetirementPlan,
		FamilyHistory:     r.FamilyHistory,
	}
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("float", isFloat); err != nil {
		panic(err)
	}
	return v
}

// isFloat accepts any finite decimal number, surrounding spaces included,
// the same way Submission reads it.
func isFloat(fl validator.FieldLevel) bool {
	f, err := strconv.ParseFloat(strings.TrimSpace(fl.Field().String()), 64)
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}

// messages by struct field, then by failing rule
var messages = map[string]map[string]string{
	"Name":         {"notblank": "Name is required"},
	"Age":          {"notblank": "Age is required", "float": "Age must be a number"},
	"Gender":       {"required": "Gender is required"},
	"AnnualIncome": {"notblank": "Annual income is required"},
	"HealthRating": {"required": "Health self-assessment is required"},
}

// FieldError is the first failed rule of one field.
type FieldError struct {
	Field   string
	Message string
}

// Errors lists every failing field in form order, at most one per field.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// First is the message of the first failing field.
func (e Errors) First() string {
	if len(e) == 0 {
		return ""
	}
	return e[0].Message
}

// For returns the message for the named field, if it failed.
func (e Errors) For(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// Validate checks every rule at once. It returns nil when the record can be
// submitted.
func (r *Record) Validate() Errors {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// only an invalid argument gets here, and r is always a struct pointer
		panic(err)
	}

	errs := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.StructField()][fe.Tag()]
		if !ok {
			msg = fe.StructField() + " is invalid"
		}
		errs = append(errs, FieldError{
			Field:   fieldNames[fe.StructField()],
			Message: msg,
		})
	}
	return errs
}
