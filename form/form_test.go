package form

import (
	"testing"

	"github.com/mbolis/care-survey/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() Record {
	return Record{
		Name:         "Jane Doe",
		Age:          "70",
		Gender:       "Female",
		AnnualIncome: "50000",
		HealthRating: "Good",
	}
}

func TestRecord_StartsEmpty(t *testing.T) {
	r := Record{}
	for name, value := range r.Values() {
		assert.Empty(t, value, name)
	}
	assert.Len(t, r.Values(), 13)
}

func TestRecord_SetUpdatesOneField(t *testing.T) {
	r := validRecord()
	before := r.Values()

	require.NoError(t, r.Set("savings", "250000"))

	after := r.Values()
	assert.Equal(t, "250000", after["savings"])
	delete(after, "savings")
	delete(before, "savings")
	assert.Equal(t, before, after)

	value, ok := r.Get("savings")
	assert.True(t, ok)
	assert.Equal(t, "250000", value)
}

func TestRecord_SetUnknownField(t *testing.T) {
	r := Record{}
	assert.ErrorIs(t, r.Set("email", "jane@example.com"), ErrUnknownField)

	_, ok := r.Get("email")
	assert.False(t, ok)
}

func TestRecord_ValidateAccepts(t *testing.T) {
	r := validRecord()
	assert.Nil(t, r.Validate())

	for _, age := range []string{"70.5", " 70", "70 ", "1e2", "-5"} {
		r.Age = age
		assert.Nil(t, r.Validate(), age)
	}
}

func TestRecord_ValidateAgeAgreesWithSubmission(t *testing.T) {
	tests := []struct {
		age  string
		want int
	}{
		{" 70", 70},
		{"70 ", 70},
		{"1e2", 100},
		{"70.9", 70},
	}

	for _, tt := range tests {
		t.Run(tt.age, func(t *testing.T) {
			r := validRecord()
			r.Age = tt.age
			require.Nil(t, r.Validate())
			assert.Equal(t, tt.want, r.Submission().Age)
		})
	}
}

func TestRecord_ValidateSingleFailure(t *testing.T) {
	tests := []struct {
		name   string
		change func(*Record)
		field  string
		msg    string
	}{
		{"empty name", func(r *Record) { r.Name = "" }, "name", "Name is required"},
		{"blank name", func(r *Record) { r.Name = "   " }, "name", "Name is required"},
		{"empty age", func(r *Record) { r.Age = "" }, "age", "Age is required"},
		{"non numeric age", func(r *Record) { r.Age = "seventy" }, "age", "Age must be a number"},
		{"not a number age", func(r *Record) { r.Age = "NaN" }, "age", "Age must be a number"},
		{"infinite age", func(r *Record) { r.Age = "Inf" }, "age", "Age must be a number"},
		{"no gender", func(r *Record) { r.Gender = "" }, "gender", "Gender is required"},
		{"blank income", func(r *Record) { r.AnnualIncome = " " }, "annual_income", "Annual income is required"},
		{"no health rating", func(r *Record) { r.HealthRating = "" }, "health_rating", "Health self-assessment is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.change(&r)

			errs := r.Validate()
			require.Len(t, errs, 1)
			assert.Equal(t, FieldError{Field: tt.field, Message: tt.msg}, errs[0])
			assert.Equal(t, tt.msg, errs.First())
			assert.Equal(t, tt.msg, errs.For(tt.field))
		})
	}
}

func TestRecord_ValidateReportsAllFailures(t *testing.T) {
	r := Record{Age: "abc"}

	errs := r.Validate()
	assert.Equal(t, Errors{
		{Field: "name", Message: "Name is required"},
		{Field: "age", Message: "Age must be a number"},
		{Field: "gender", Message: "Gender is required"},
		{Field: "annual_income", Message: "Annual income is required"},
		{Field: "health_rating", Message: "Health self-assessment is required"},
	}, errs)

	// the first message matches a first-match validator
	assert.Equal(t, "Name is required", errs.First())
	assert.Empty(t, errs.For("savings"))
	assert.Equal(t, "Name is required; Age must be a number; Gender is required; "+
		"Annual income is required; Health self-assessment is required", errs.Error())
}

func TestRecord_OptionalFieldsAreNotChecked(t *testing.T) {
	r := validRecord()
	r.MaritalStatus = "anything at all"
	r.Savings = "not a number"
	assert.Nil(t, r.Validate())
}

func TestRecord_Submission(t *testing.T) {
	r := validRecord()
	r.Age = "70.9"
	r.Savings = "250000"
	r.FamilyHistory = "No history"

	assert.Equal(t, model.Submission{
		Name:          "Jane Doe",
		Age:           70,
		Gender:        "Female",
		AnnualIncome:  "50000",
		Savings:       "250000",
		HealthRating:  "Good",
		FamilyHistory: "No history",
	}, r.Submission())
}

func TestFields_Layout(t *testing.T) {
	var names []string
	for _, s := range Sections {
		for _, f := range InSection(s) {
			names = append(names, f.Name)
		}
	}
	assert.Len(t, names, len(Fields))

	var required []string
	for _, f := range Fields {
		if f.Required {
			required = append(required, f.Name)
		}
		if f.Kind == Select {
			assert.NotEmpty(t, f.Options, f.Name)
			assert.NotEmpty(t, f.Prompt, f.Name)
		}
	}
	assert.Equal(t, []string{"name", "age", "gender", "annual_income", "health_rating"}, required)

	f, ok := FieldByName("gender")
	require.True(t, ok)
	assert.Equal(t, []string{"Male", "Female", "Non-binary", "Prefer not to say"}, f.Options)
}
