package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCatalogNotLoaded  = errors.New("catalog not loaded")
	ErrQuestionNotFound  = errors.New("question not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateQuestion = errors.New("duplicate question id")
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
)

// Severity tells whether an issue blocks loading
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one human-readable problem found in a catalog
type Issue struct {
	Severity Severity `json:"severity"`
	Path     string   `json:"path"` // JSON pointer into the catalog document
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	if i.Path == "" {
		return fmt.Sprintf("%s: %s", i.Severity, i.Message)
	}
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// CatalogError reports a catalog that failed validation
type CatalogError struct {
	Source string
	Issues []Issue
}

func (e *CatalogError) Error() string {
	errs := Errors(e.Issues)
	msgs := make([]string, 0, len(errs))
	for _, i := range errs {
		msgs = append(msgs, i.String())
	}
	prefix := "invalid catalog"
	if e.Source != "" {
		prefix = fmt.Sprintf("invalid catalog %s", e.Source)
	}
	return fmt.Sprintf("%s: %d issue(s): %s", prefix, len(errs), strings.Join(msgs, "; "))
}

// Errors returns only the error-severity issues
func Errors(issues []Issue) []Issue {
	var out []Issue
	for _, i := range issues {
		if i.Severity == SeverityError {
			out = append(out, i)
		}
	}
	return out
}

// HasErrors reports whether any issue blocks loading
func HasErrors(issues []Issue) bool {
	return len(Errors(issues)) > 0
}
