package dbtool

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mbolis/care-survey/database"
	"github.com/mbolis/care-survey/log"
	"github.com/mbolis/care-survey/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempDB(t *testing.T) string {
	t.Helper()
	log.SetOutput(io.Discard)
	return filepath.Join(t.TempDir(), "survey.db")
}

func run(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand(&out)
	cmd.SetArgs(append([]string{"--db", dbPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dbPath string, args ...string) string {
	t.Helper()
	out, err := run(t, dbPath, args...)
	require.NoError(t, err)
	return out
}

func insert(t *testing.T, dbPath string, s model.Submission) {
	t.Helper()
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	defer db.Close()
	_, err = database.NewStore(db).Create(context.Background(), s.Response())
	require.NoError(t, err)
}

func TestList_Empty(t *testing.T) {
	out := mustRun(t, tempDB(t), "list")
	assert.Contains(t, out, "No survey responses found in the database.")
}

func TestSampleThenList(t *testing.T) {
	path := tempDB(t)

	assert.Equal(t, "Sample record added with ID: 1\n", mustRun(t, path, "sample"))
	insert(t, path, model.Submission{Name: "Jane Doe", Age: 70})

	out := mustRun(t, path, "list")
	assert.Contains(t, out, "Total records found: 2")
	assert.Contains(t, out, "[RECORD #1]")
	assert.Contains(t, out, "[RECORD #2]")
	assert.Contains(t, out, "Name: John Doe")
	assert.Contains(t, out, "Education: Bachelor's degree")
	assert.Contains(t, out, "Income: $85000")
	assert.Contains(t, out, "Daily Assistance: Minimal assistance")

	// newest first, unset fields spelled out
	jane := out[strings.Index(out, "[RECORD #1]"):strings.Index(out, "[RECORD #2]")]
	assert.Contains(t, jane, "ID: 2")
	assert.Contains(t, jane, "Gender: Not specified")
	assert.Contains(t, jane, "Savings: $Not specified")
}

func TestSchema(t *testing.T) {
	out := mustRun(t, tempDB(t), "schema")

	assert.Contains(t, out, "Table: responses")
	assert.Contains(t, out, "  - id (INTEGER) PRIMARY KEY\n")
	assert.Contains(t, out, "  - name (TEXT) NOT NULL\n")
	assert.Contains(t, out, "  - age (INTEGER) NOT NULL\n")
	assert.Contains(t, out, "  - gender (TEXT)\n")
	assert.Contains(t, out, "  - created_at (DATETIME)\n")
	assert.Contains(t, out, "Table: schema_migrations")
}

func TestDump(t *testing.T) {
	path := tempDB(t)
	insert(t, path, model.Submission{Name: "Jane Doe", Age: 70})

	out := mustRun(t, path, "dump")

	assert.Contains(t, out, "Records in table responses:")
	assert.Contains(t, out, "  name: Jane Doe\n")
	assert.Contains(t, out, "  gender: NULL\n")
	assert.Contains(t, out, "Records in table schema_migrations:")
	assert.True(t, strings.HasSuffix(out, "Database inspection complete.\n"))
}

func TestDelete(t *testing.T) {
	path := tempDB(t)
	mustRun(t, path, "sample")

	assert.Contains(t, mustRun(t, path, "delete", "1"), "Record with ID 1 deleted successfully.")
	assert.Contains(t, mustRun(t, path, "delete", "1"), "No record found with ID 1.")
	assert.Contains(t, mustRun(t, path, "list"), "No survey responses found in the database.")

	_, err := run(t, path, "delete", "abc")
	assert.EqualError(t, err, `invalid record id "abc"`)

	_, err = run(t, path, "delete")
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	path := tempDB(t)

	out := mustRun(t, path, "stats")
	assert.Contains(t, out, "Total responses: 0")
	assert.Contains(t, out, "Age statistics: Avg: N/A, Min: N/A, Max: N/A")

	mustRun(t, path, "sample")
	mustRun(t, path, "sample")
	insert(t, path, model.Submission{Name: "Jane Doe", Age: 70, HealthRating: "Fair"})

	out = mustRun(t, path, "stats")
	assert.Contains(t, out, "Total responses: 3")
	assert.Contains(t, out, "Age statistics: Avg: 66.7, Min: 65, Max: 70")
	assert.Contains(t, out, "Gender distribution:\n  - Not specified: 1\n  - Male: 2\n")
	assert.Contains(t, out, "Health rating distribution:\n  - Fair: 1\n  - Good: 2\n")
}

func TestReset(t *testing.T) {
	path := tempDB(t)
	mustRun(t, path, "sample")
	mustRun(t, path, "sample")

	assert.Contains(t, mustRun(t, path, "reset"), "Database reset successfully!")
	assert.Contains(t, mustRun(t, path, "list"), "No survey responses found in the database.")
	assert.Equal(t, "Sample record added with ID: 1\n", mustRun(t, path, "sample"))
}
