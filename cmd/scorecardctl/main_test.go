package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/resilience-scorecard/internal/models"
)

const (
	testCatalog    = "../../internal/catalog/testdata/scorecard.yaml"
	invalidCatalog = "../../internal/catalog/testdata/invalid.yaml"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func questionIDs(t *testing.T, out string) []string {
	t.Helper()
	var questions []models.AnnotatedQuestion
	require.NoError(t, json.Unmarshal([]byte(out), &questions), out)

	ids := make([]string, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	return ids
}

func TestValidate(t *testing.T) {
	out, err := run(t, "validate", testCatalog)
	require.NoError(t, err)
	assert.Contains(t, out, "ok: 3 categories, 8 questions")
}

func TestValidate_Invalid(t *testing.T) {
	out, err := run(t, "validate", invalidCatalog)
	require.Error(t, err)
	assert.Contains(t, out, "error at ")
}

func TestQuestions_Selection(t *testing.T) {
	sel := writeFile(t, "keys.json", `[{"category": "Cloud", "subCategory": "AWS"}]`)

	out, err := run(t, "questions", testCatalog, "--selection", sel, "--json")
	require.NoError(t, err)
	assert.Equal(t, []string{"1.01", "1.02", "1.10", "2.01", "2.10", "2.11"}, questionIDs(t, out))
}

func TestQuestions_Table(t *testing.T) {
	out, err := run(t, "questions", testCatalog)
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Cloud / Azure")
	assert.Contains(t, out, "Are transaction logs backed up continuously?")
}

func TestQuestions_UnknownKey(t *testing.T) {
	sel := writeFile(t, "keys.json", `[{"category": "Mainframe", "subCategory": ""}]`)

	_, err := run(t, "questions", testCatalog, "--selection", sel)
	assert.Error(t, err)
}

func TestScore(t *testing.T) {
	answers := writeFile(t, "answers.json", `{"1.01": "yes", "1.02": "no"}`)
	sel := writeFile(t, "keys.json", `[]`)

	out, err := run(t, "score", testCatalog, "--answers", answers, "--selection", sel)
	require.NoError(t, err)

	var result struct {
		FinalScore  int                              `json:"finalScore"`
		PerCategory map[string]models.CategoryResult `json:"perCategory"`
		Band        struct {
			Key string `json:"key"`
		} `json:"band"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	// 5 of 12 points in the always-included category
	assert.Equal(t, 42, result.FinalScore)
	assert.Equal(t, "moderate", result.Band.Key)
	assert.Len(t, result.PerCategory, 1)
}

func TestScore_RejectsBadAnswer(t *testing.T) {
	answers := writeFile(t, "answers.json", `{"1.01": "sometimes"}`)

	_, err := run(t, "score", testCatalog, "--answers", answers)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "answer must be one of")
}

func TestScore_RequiresAnswers(t *testing.T) {
	_, err := run(t, "score", testCatalog)
	assert.Error(t, err)
}

func TestCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "catalog.csv")
	jsonPath := filepath.Join(dir, "catalog.json")

	_, err := run(t, "export-csv", testCatalog, "-o", csvPath)
	require.NoError(t, err)

	_, err = run(t, "import-csv", csvPath, "--base", testCatalog, "-o", jsonPath)
	require.NoError(t, err)

	out, err := run(t, "validate", jsonPath)
	require.NoError(t, err)
	assert.Contains(t, out, "ok: 3 categories, 8 questions")
}

func TestFind(t *testing.T) {
	out, err := run(t, "find", testCatalog, "--tag", "aws", "--weight", "4", "--json")
	require.NoError(t, err)
	assert.Equal(t, []string{"2.11"}, questionIDs(t, out))

	_, err = run(t, "find", testCatalog, "--weight", "7")
	assert.Error(t, err)
}

func TestMoveAndRebalance(t *testing.T) {
	moved := filepath.Join(t.TempDir(), "moved.yaml")

	_, err := run(t, "move", testCatalog, "1.10", "first", "-o", moved)
	require.NoError(t, err)

	out, err := run(t, "find", moved, "--category", "Backup Architecture", "--json")
	require.NoError(t, err)
	assert.Equal(t, []string{"1.10", "1.01", "1.02"}, questionIDs(t, out))

	out, err = run(t, "rebalance", moved, "Backup Architecture")
	require.NoError(t, err)
	assert.Contains(t, out, "order: 1000")
	assert.Contains(t, out, "order: 1200")
}
