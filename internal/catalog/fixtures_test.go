package catalog

import "github.com/terra-clan/resilience-scorecard/internal/models"

func fixtureCatalog() *models.Catalog {
	return &models.Catalog{
		Version: "2.0",
		Categories: []models.Category{
			{
				Name:          "Backup Architecture",
				Icon:          "💾",
				AlwaysInclude: true,
				Questions: []models.Question{
					{ID: "1.01", Text: "Immutable storage?", Weight: 5, Order: 1000, Tags: []string{"ransomware"}},
					{ID: "1.02", Text: "Offline copy?", Weight: 4, Order: 1100, Tags: []string{"ransomware", "air-gap"}},
					{ID: "1.10", Text: "Restore tests?", Weight: 3, Order: 1200},
				},
			},
			{
				Name: "Cloud",
				Icon: "☁️",
				Questions: []models.Question{
					{ID: "2.01", Text: "Cross-account backups?", Weight: 4, Order: 2000},
				},
				SubCategories: []models.SubCategory{
					{Name: "AWS", Questions: []models.Question{
						{ID: "2.10", Text: "S3 versioning, MFA delete", Weight: 3, Order: 2100, Tags: []string{"aws"}},
						{ID: "2.11", Text: "Vault lock?", Weight: 4, Order: 2200, Tags: []string{"aws"}},
					}},
				},
			},
		},
	}
}

func questionIDs(qs []models.Question) []string {
	out := make([]string, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.ID)
	}
	return out
}
