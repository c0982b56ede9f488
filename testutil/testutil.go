package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/mbolis/care-survey/database"
	"github.com/mbolis/care-survey/log"
	"github.com/mbolis/care-survey/model"
	"github.com/stretchr/testify/require"
)

// OpenTestDB opens a migrated database file in a fresh temporary directory.
// It is closed when the test ends.
func OpenTestDB(t *testing.T) *sql.DB {
	t.Helper()

	log.SetOutput(io.Discard)

	db, err := database.Open(filepath.Join(t.TempDir(), "survey.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

// SampleSubmission is a fully answered survey.
func SampleSubmission(name string, age int) model.Submission {
	return model.Submission{
		Name:              name,
		Age:               age,
		Gender:            "Female",
		MaritalStatus:     "Widowed",
		EducationLevel:    "High school",
		AnnualIncome:      "50000",
		Savings:           "120000",
		HealthRating:      "Good",
		ChronicConditions: "1 condition",
		ADLAssistance:     "Minimal assistance",
		LivingArrangement: "Live alone",
		RetirementPlan:    "Pension",
		FamilyHistory:     "Parents needed care",
	}
}

// MakeRequest creates an HTTP test request, JSON encoding body when not nil.
func MakeRequest(method, path string, body any) *http.Request {
	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}

	var reader io.Reader
	switch b := body.(type) {
	case string:
		reader = bytes.NewBufferString(b)
	default:
		jsonBody, _ := json.Marshal(body)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// DecodeJSON decodes the recorded response body into v.
func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(v), "body: %s", w.Body.String())
}
