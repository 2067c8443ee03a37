package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/terra-clan/resilience-scorecard/internal/models"
)

// Loader manages loading and caching of the question catalog
type Loader struct {
	mu       sync.RWMutex
	catalog  *models.Catalog
	issues   []Issue
	source   string
	loadedAt time.Time
}

// NewLoader creates a new catalog loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads a catalog from a single file or from every catalog file in a directory
func (l *Loader) Load(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat catalog path: %w", err)
	}
	if info.IsDir() {
		return l.LoadFromDir(path)
	}
	return l.LoadFromFile(path)
}

// LoadFromFile loads a catalog from a JSON or YAML file. On failure the
// previously loaded catalog is kept and the issues are recorded.
func (l *Loader) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	cat, issues, err := Parse(data, format)
	return l.commit(path, cat, issues, err)
}

// LoadFromDir merges every catalog file in a directory, in file name order.
// Each file holds a fragment with one or more categories.
func (l *Loader) LoadFromDir(dir string) error {
	slog.Info("loading catalog from directory", "dir", dir)

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml", "*.json"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			continue
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	if len(files) == 0 {
		return l.commit(dir, nil, nil, fmt.Errorf("no catalog files in %s", dir))
	}

	merged := &models.Catalog{}
	var issues []Issue
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		format, _ := FormatFromPath(file)

		frag, fragIssues, err := decode(data, format)
		issues = append(issues, prefixIssues(filepath.Base(file), fragIssues)...)
		if err != nil {
			var ce *CatalogError
			if errors.As(err, &ce) {
				continue
			}
			return l.commit(dir, nil, issues, fmt.Errorf("%s: %w", filepath.Base(file), err))
		}

		if merged.Version == "" {
			merged.Version = frag.Version
		}
		merged.Categories = append(merged.Categories, frag.Categories...)
	}

	issues = append(issues, lint(merged)...)
	if HasErrors(issues) {
		return l.commit(dir, nil, issues, &CatalogError{Issues: issues})
	}
	return l.commit(dir, merged, issues, nil)
}

func (l *Loader) commit(source string, cat *models.Catalog, issues []Issue, err error) error {
	for _, issue := range issues {
		slog.Warn("catalog issue", "source", source, "severity", issue.Severity, "path", issue.Path, "message", issue.Message)
	}

	var ce *CatalogError
	if errors.As(err, &ce) && ce.Source == "" {
		ce.Source = source
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.issues = issues
	if err != nil {
		return err
	}

	l.catalog = cat
	l.source = source
	l.loadedAt = time.Now()

	questions := 0
	for _, c := range cat.Categories {
		questions += c.QuestionCount()
	}
	slog.Info("catalog loaded", "source", source, "version", cat.Version,
		"categories", len(cat.Categories), "questions", questions, "warnings", len(issues))
	return nil
}

// Set replaces the current catalog after validating it
func (l *Loader) Set(cat *models.Catalog) error {
	issues := Validate(cat)
	if HasErrors(issues) {
		return l.commit("memory", nil, issues, &CatalogError{Issues: issues})
	}
	return l.commit("memory", cat, issues, nil)
}

// Current returns the loaded catalog. Callers must treat it as read-only;
// the edit functions in this package work on copies.
func (l *Loader) Current() (*models.Catalog, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.catalog == nil {
		return nil, ErrCatalogNotLoaded
	}
	return l.catalog, nil
}

// Issues returns the issues recorded by the last load attempt
func (l *Loader) Issues() []Issue {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Issue(nil), l.issues...)
}

// Source returns where the current catalog came from and when
func (l *Loader) Source() (string, time.Time) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.source, l.loadedAt
}

func prefixIssues(file string, issues []Issue) []Issue {
	out := make([]Issue, len(issues))
	for i, issue := range issues {
		issue.Path = file + "#" + issue.Path
		out[i] = issue
	}
	return out
}
