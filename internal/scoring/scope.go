// Package scoring selects the questions in scope for an assessment and
// turns answers into weighted per-category and aggregate scores.
//
// Everything here is a pure function of its inputs: no I/O, no logging,
// no shared state. Malformed catalog entries are skipped, never reported.
package scoring

import "github.com/terra-clan/resilience-scorecard/internal/models"

// categoryUsable reports whether a catalog entry can take part in an assessment
func categoryUsable(cat *models.Category) bool {
	return cat != nil && cat.Name != ""
}

// categoryLevelInScope decides whether a category's own questions (the ones
// not under a sub-category) are assessed.
func categoryLevelInScope(cat *models.Category, sel models.Selection) bool {
	return cat.AlwaysInclude || sel.HasCategory(cat.Name)
}

// subCategoryInScope decides whether a sub-category's questions are assessed
func subCategoryInScope(cat *models.Category, sc *models.SubCategory, sel models.Selection) bool {
	if sc.Name == "" {
		return false
	}
	return sel.Has(models.SelectionKey{Category: cat.Name, SubCategory: sc.Name})
}

// scopedQuestion is one in-scope question with its location
type scopedQuestion struct {
	question    models.Question
	subCategory *string
}

// inScope walks a category and returns its assessed, well-formed questions in
// catalog order: category-level first, then each selected sub-category.
func inScope(cat *models.Category, sel models.Selection) []scopedQuestion {
	var out []scopedQuestion

	if categoryLevelInScope(cat, sel) {
		for _, q := range cat.Questions {
			if !q.IsWellFormed() {
				continue
			}
			out = append(out, scopedQuestion{question: q})
		}
	}

	for i := range cat.SubCategories {
		sc := &cat.SubCategories[i]
		if !subCategoryInScope(cat, sc, sel) {
			continue
		}
		name := sc.Name
		for _, q := range sc.Questions {
			if !q.IsWellFormed() {
				continue
			}
			out = append(out, scopedQuestion{question: q, subCategory: &name})
		}
	}

	return out
}

// eachCategory calls fn for every usable category in catalog order. Only the
// first category with a given name is visited since names identify categories.
func eachCategory(catalog *models.Catalog, fn func(cat *models.Category)) {
	if catalog == nil {
		return
	}
	seen := make(map[string]bool, len(catalog.Categories))
	for i := range catalog.Categories {
		cat := &catalog.Categories[i]
		if !categoryUsable(cat) || seen[cat.Name] {
			continue
		}
		seen[cat.Name] = true
		fn(cat)
	}
}
