package scoring

import "github.com/terra-clan/resilience-scorecard/internal/models"

// scenarioCatalog is the two-category catalog used throughout the tests:
// "A" is always assessed, "B" only through its "B1" sub-category.
func scenarioCatalog() *models.Catalog {
	return &models.Catalog{
		Categories: []models.Category{
			{
				Name:          "A",
				Icon:          "🏗️",
				AlwaysInclude: true,
				Questions: []models.Question{
					{ID: "q1", Text: "Are backups immutable?", Weight: 4},
				},
			},
			{
				Name: "B",
				SubCategories: []models.SubCategory{
					{Name: "B1", Questions: []models.Question{
						{ID: "q2", Text: "Is versioning enabled?", Weight: 2},
					}},
				},
			},
		},
	}
}

// cloudCatalog mirrors the shape of the production catalog
func cloudCatalog() *models.Catalog {
	return &models.Catalog{
		Version: "2.0",
		Categories: []models.Category{
			{
				Name: "Cloud",
				Icon: "☁️",
				Questions: []models.Question{
					{ID: "2.10", Text: "Cloud backups tested?", Weight: 3},
					{ID: "2.2", Text: "Cloud inventory current?", Weight: 2},
				},
				SubCategories: []models.SubCategory{
					{Name: "GCP", Questions: []models.Question{
						{ID: "2.30", Text: "GCP snapshots locked?", Weight: 2},
					}},
					{Name: "AWS", Questions: []models.Question{
						{ID: "2.21", Text: "S3 object lock?", Weight: 5},
						{ID: "2.20", Text: "AWS Backup vault lock?", Weight: 4},
					}},
					{Name: "Azure"},
				},
			},
			{
				Name:          "Backup Architecture",
				Icon:          "🏗️",
				AlwaysInclude: true,
				Questions: []models.Question{
					{ID: "1.10", Text: "Air-gapped copy?", Weight: 5},
					{ID: "1.02", Text: "Immutable storage?", Weight: 4},
					{ID: "", Text: "broken: no id", Weight: 3},
					{ID: "1.99", Text: "", Weight: 3},
				},
			},
			{
				Name: "Databases",
				SubCategories: []models.SubCategory{
					{Name: "SQL Databases", Questions: []models.Question{
						{ID: "3.1", Text: "Transaction log backups?", Weight: 3},
					}},
				},
			},
		},
	}
}

func key(category, sub string) models.SelectionKey {
	return models.SelectionKey{Category: category, SubCategory: sub}
}

func ids(qs []models.AnnotatedQuestion) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}
