package analysis

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataset-billing/pkg/apperror"
)

func writeDataset(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".csv"), []byte(content), 0o600))
}

func TestEngine_Analyze_Profile(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "ds1", "name,age,city\nalice,30,lagos\nbob,,abuja\ncarol,41,\n")
	e := NewEngine(dir, zerolog.Nop())

	report, err := e.Analyze(context.Background(), "ds1")
	require.NoError(t, err)

	assert.Equal(t, "ds1", report.WorkItemID)
	assert.Equal(t, 3, report.Rows)
	assert.Equal(t, []string{"name", "age", "city"}, report.Columns)
	assert.Equal(t, 1, report.MissingValues["age"])
	assert.Equal(t, 1, report.MissingValues["city"])
	assert.Equal(t, 0, report.MissingValues["name"])
}

func TestEngine_Analyze_Outliers(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "ds2", "v\n10\n11\n12\n13\n12\n11\n10\n500\n")
	e := NewEngine(dir, zerolog.Nop())

	report, err := e.Analyze(context.Background(), "ds2")
	require.NoError(t, err)

	require.Contains(t, report.Outliers, "v")
	assert.Equal(t, []int{7}, report.Outliers["v"])
}

func TestEngine_Analyze_PII(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "ds3",
		"contact,ssn\nalice@example.com,123-45-6789\nbob@example.org,987-65-4321\n")
	e := NewEngine(dir, zerolog.Nop())

	report, err := e.Analyze(context.Background(), "ds3")
	require.NoError(t, err)

	kinds := make(map[string]int)
	for _, f := range report.PIIFindings {
		kinds[f.Column+"/"+f.Kind] = f.Matches
	}
	assert.Equal(t, 2, kinds["contact/email"])
	assert.Equal(t, 2, kinds["ssn/ssn"])
}

func TestEngine_Analyze_UnknownWorkItem(t *testing.T) {
	e := NewEngine(t.TempDir(), zerolog.Nop())

	_, err := e.Analyze(context.Background(), "nope")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UnknownWorkItem", appErr.Kind)
}

func TestEngine_Analyze_RejectsPathTraversal(t *testing.T) {
	e := NewEngine(t.TempDir(), zerolog.Nop())

	_, err := e.Analyze(context.Background(), "../etc/passwd")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ValidationError", appErr.Kind)
}
