package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/resilience-scorecard/internal/models"
)

func TestLoader_LoadFromFile(t *testing.T) {
	loader := NewLoader()
	require.NoError(t, loader.Load(filepath.Join("testdata", "scorecard.yaml")))

	cat, err := loader.Current()
	require.NoError(t, err)

	assert.Equal(t, "2.0", cat.Version)
	require.Len(t, cat.Categories, 3)

	backup := cat.FindCategory("Backup Architecture")
	require.NotNil(t, backup)
	assert.True(t, backup.AlwaysInclude)
	assert.Equal(t, "💾", backup.Icon)
	assert.Equal(t, []string{"1.01", "1.02", "1.10"}, questionIDs(backup.Questions))
	assert.Equal(t, []string{"ransomware", "immutability"}, backup.Questions[0].Tags)
	assert.Equal(t, 1000.0, backup.Questions[0].Order)

	aws := cat.FindCategory("Cloud").FindSubCategory("AWS")
	require.NotNil(t, aws)
	assert.Equal(t, 4, aws.Questions[1].Weight)

	assert.Empty(t, Errors(loader.Issues()))
	source, loadedAt := loader.Source()
	assert.Equal(t, filepath.Join("testdata", "scorecard.yaml"), source)
	assert.False(t, loadedAt.IsZero())
}

func TestLoader_CurrentBeforeLoad(t *testing.T) {
	_, err := NewLoader().Current()
	assert.ErrorIs(t, err, ErrCatalogNotLoaded)
}

func TestLoader_InvalidFileReportsIssues(t *testing.T) {
	loader := NewLoader()
	err := loader.LoadFromFile(filepath.Join("testdata", "invalid.yaml"))
	require.Error(t, err)

	var ce *CatalogError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, filepath.Join("testdata", "invalid.yaml"), ce.Source)
	assert.Contains(t, err.Error(), "invalid catalog")

	var weightIssue, textIssue bool
	for _, issue := range ce.Issues {
		assert.Equal(t, SeverityError, issue.Severity)
		assert.NotEmpty(t, issue.Message)
		switch {
		case strings.HasPrefix(issue.Path, "/categories/0/questions/0"):
			weightIssue = true
		case strings.HasPrefix(issue.Path, "/categories/0/questions/1"):
			textIssue = true
		}
	}
	assert.True(t, weightIssue, "weight out of range should be reported")
	assert.True(t, textIssue, "missing text should be reported")

	assert.Equal(t, ce.Issues, loader.Issues())
	_, err = loader.Current()
	assert.ErrorIs(t, err, ErrCatalogNotLoaded)
}

func TestLoader_FailedReloadKeepsPrevious(t *testing.T) {
	loader := NewLoader()
	require.NoError(t, loader.LoadFromFile(filepath.Join("testdata", "scorecard.yaml")))

	require.Error(t, loader.LoadFromFile(filepath.Join("testdata", "invalid.yaml")))

	cat, err := loader.Current()
	require.NoError(t, err)
	assert.Equal(t, "2.0", cat.Version)
	assert.NotEmpty(t, loader.Issues())
}

func TestLoader_LoadFromDir(t *testing.T) {
	loader := NewLoader()
	require.NoError(t, loader.Load(filepath.Join("testdata", "fragments")))

	cat, err := loader.Current()
	require.NoError(t, err)
	assert.Equal(t, "3.1", cat.Version)
	require.Len(t, cat.Categories, 2)
	assert.Equal(t, "Backup Architecture", cat.Categories[0].Name)
	assert.Equal(t, "Identity & Access Management", cat.Categories[1].Name)
}

func TestLoader_LoadFromDir_DuplicateAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	frag := []byte("categories:\n  - name: Cloud\n    icon: c\n    questions:\n      - {id: \"1\", text: t, weight: 1}\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), frag, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), frag, 0o644))

	loader := NewLoader()
	err := loader.LoadFromDir(dir)

	var ce *CatalogError
	require.True(t, errors.As(err, &ce))
	assert.Len(t, ce.Issues, 2, "duplicate category and duplicate question id")
}

func TestLoader_LoadFromDir_Empty(t *testing.T) {
	assert.Error(t, NewLoader().LoadFromDir(t.TempDir()))
}

func TestLoader_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	err := NewLoader().LoadFromFile(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoader_Set(t *testing.T) {
	loader := NewLoader()
	require.NoError(t, loader.Set(fixtureCatalog()))

	cat, err := loader.Current()
	require.NoError(t, err)
	assert.Len(t, cat.Categories, 2)

	bad := fixtureCatalog()
	bad.Categories[1].Questions[0].ID = "1.01"
	err = loader.Set(bad)
	assert.Error(t, err)

	cat, err = loader.Current()
	require.NoError(t, err)
	assert.Equal(t, "2.01", cat.Categories[1].Questions[0].ID)
}

func TestLoader_ConcurrentReads(t *testing.T) {
	loader := NewLoader()
	require.NoError(t, loader.Set(fixtureCatalog()))

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			cat, err := loader.Current()
			if err == nil {
				_ = cat.Categories[0].Name
			}
			_ = loader.Issues()
		}()
	}
	require.NoError(t, loader.Set(&models.Catalog{Categories: fixtureCatalog().Categories[:1]}))
	for i := 0; i < 8; i++ {
		<-done
	}
}
