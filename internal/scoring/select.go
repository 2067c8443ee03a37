package scoring

import (
	"sort"

	"github.com/terra-clan/resilience-scorecard/internal/models"
)

// SelectQuestions flattens the catalog into the ordered list of questions a
// user answers for the given selection.
//
// Category-level questions are included when the category is alwaysInclude,
// the selection is unfiltered, or some key names the category. Sub-category
// questions are included when their key is selected. Output is sorted by
// category name, category-level before sub-category questions, sub-category
// name, then question id (see CompareIDs). A nil catalog yields an empty list.
func SelectQuestions(catalog *models.Catalog, sel models.Selection) []models.AnnotatedQuestion {
	questions := []models.AnnotatedQuestion{}

	eachCategory(catalog, func(cat *models.Category) {
		icon := cat.Icon
		if icon == "" {
			icon = models.DefaultIcon
		}

		for _, sq := range inScope(cat, sel) {
			questions = append(questions, models.AnnotatedQuestion{
				Question:     sq.question,
				Category:     cat.Name,
				SubCategory:  sq.subCategory,
				CategoryIcon: icon,
			})
		}
	})

	sort.SliceStable(questions, func(i, j int) bool {
		return lessAnnotated(&questions[i], &questions[j])
	})

	return questions
}

func lessAnnotated(a, b *models.AnnotatedQuestion) bool {
	if a.Category != b.Category {
		return a.Category < b.Category
	}

	// Category-level questions come before any sub-category
	switch {
	case a.SubCategory == nil && b.SubCategory != nil:
		return true
	case a.SubCategory != nil && b.SubCategory == nil:
		return false
	case a.SubCategory != nil && b.SubCategory != nil && *a.SubCategory != *b.SubCategory:
		return *a.SubCategory < *b.SubCategory
	}

	return CompareIDs(a.ID, b.ID) < 0
}

// Summarize describes each category for the selection step. Categories and
// sub-categories without questions are left out.
func Summarize(catalog *models.Catalog) []models.CategorySummary {
	summaries := []models.CategorySummary{}

	eachCategory(catalog, func(cat *models.Category) {
		if cat.QuestionCount() == 0 {
			return
		}

		icon := cat.Icon
		if icon == "" {
			icon = models.DefaultIcon
		}

		s := models.CategorySummary{
			Name:           cat.Name,
			Icon:           icon,
			AlwaysInclude:  cat.AlwaysInclude,
			GeneralCount:   len(cat.Questions),
			TotalQuestions: cat.QuestionCount(),
			SubCategories:  []string{},
		}
		for _, sc := range cat.SubCategories {
			if sc.Name != "" && len(sc.Questions) > 0 {
				s.SubCategories = append(s.SubCategories, sc.Name)
			}
		}
		summaries = append(summaries, s)
	})

	return summaries
}
