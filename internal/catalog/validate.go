package catalog

import (
	"fmt"

	"github.com/terra-clan/resilience-scorecard/internal/models"
)

const (
	minWeight = 1
	maxWeight = 5
)

// Validate checks a catalog built in code (CSV import, edits) with the same
// rules a loaded document gets from the schema plus the cross-entry rules.
func Validate(cat *models.Catalog) []Issue {
	if cat == nil {
		return []Issue{{Severity: SeverityError, Message: "catalog is missing"}}
	}
	return append(checkFields(cat), lint(cat)...)
}

// checkFields mirrors the per-field schema rules
func checkFields(cat *models.Catalog) []Issue {
	var issues []Issue
	for i, c := range cat.Categories {
		path := fmt.Sprintf("/categories/%d", i)
		if c.Name == "" {
			issues = append(issues, errorf(path+"/name", "category name is required"))
		}
		issues = append(issues, checkQuestions(path, c.Questions)...)
		for j, sc := range c.SubCategories {
			scPath := fmt.Sprintf("%s/subCategories/%d", path, j)
			if sc.Name == "" {
				issues = append(issues, errorf(scPath+"/name", "sub-category name is required"))
			}
			issues = append(issues, checkQuestions(scPath, sc.Questions)...)
		}
	}
	return issues
}

func checkQuestions(parent string, qs []models.Question) []Issue {
	var issues []Issue
	for k, q := range qs {
		path := fmt.Sprintf("%s/questions/%d", parent, k)
		if q.ID == "" {
			issues = append(issues, errorf(path+"/id", "question id is required"))
		}
		if q.Text == "" {
			issues = append(issues, errorf(path+"/text", "missing text for %q", q.ID))
		}
		if q.Weight < minWeight || q.Weight > maxWeight {
			issues = append(issues, errorf(path+"/weight", "weight %d for %q is outside %d..%d", q.Weight, q.ID, minWeight, maxWeight))
		}
	}
	return issues
}

// lint applies rules that span entries: unique names and ids, plus warnings
// for entries that load fine but render poorly.
func lint(cat *models.Catalog) []Issue {
	var issues []Issue
	categories := make(map[string]int)
	questionIDs := make(map[string]string)

	checkIDs := func(parent string, qs []models.Question) {
		for k, q := range qs {
			if q.ID == "" {
				continue
			}
			path := fmt.Sprintf("%s/questions/%d/id", parent, k)
			if first, ok := questionIDs[q.ID]; ok {
				issues = append(issues, errorf(path, "duplicate question id %q (first defined at %s)", q.ID, first))
				continue
			}
			questionIDs[q.ID] = path
		}
	}

	for i, c := range cat.Categories {
		path := fmt.Sprintf("/categories/%d", i)
		if c.Name != "" {
			if first, ok := categories[c.Name]; ok {
				issues = append(issues, errorf(path+"/name", "duplicate category name %q (first defined at /categories/%d)", c.Name, first))
			} else {
				categories[c.Name] = i
			}
		}
		if c.Icon == "" {
			issues = append(issues, warnf(path+"/icon", "category %q has no icon", c.Name))
		}
		if c.QuestionCount() == 0 {
			issues = append(issues, warnf(path, "category %q has no questions", c.Name))
		}

		checkIDs(path, c.Questions)

		subs := make(map[string]bool)
		for j, sc := range c.SubCategories {
			scPath := fmt.Sprintf("%s/subCategories/%d", path, j)
			if sc.Name != "" {
				if subs[sc.Name] {
					issues = append(issues, errorf(scPath+"/name", "duplicate sub-category %q in category %q", sc.Name, c.Name))
				}
				subs[sc.Name] = true
			}
			if len(sc.Questions) == 0 {
				issues = append(issues, warnf(scPath, "sub-category %q has no questions", sc.Name))
			}
			checkIDs(scPath, sc.Questions)
		}
	}
	return issues
}

func errorf(path, format string, args ...any) Issue {
	return Issue{Severity: SeverityError, Path: path, Message: fmt.Sprintf(format, args...)}
}

func warnf(path, format string, args ...any) Issue {
	return Issue{Severity: SeverityWarning, Path: path, Message: fmt.Sprintf(format, args...)}
}
