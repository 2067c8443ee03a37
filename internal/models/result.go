package models

// RecommendationStatus classifies a gap found while scoring
type RecommendationStatus string

const (
	StatusPartial RecommendationStatus = "partial" // answered "partial"
	StatusMissing RecommendationStatus = "missing" // answered "no"
)

// CategoryResult is the derived score of one category.
// Score never exceeds Max; Percentage is 0 when Max is 0.
type CategoryResult struct {
	Score      float64 `json:"score"`
	Max        float64 `json:"max"`
	Percentage float64 `json:"percentage"`
}

// Recommendation is a remediation entry for an answer that was neither "yes" nor "na"
type Recommendation struct {
	Category        string               `json:"category"`
	SubCategory     *string              `json:"subCategory"`
	QuestionID      string               `json:"questionId"`
	Text            string               `json:"text"`
	Status          RecommendationStatus `json:"status"`
	PotentialPoints float64              `json:"potentialPoints"`
}

// CategoryStats counts answers within a category's assessed scope
type CategoryStats struct {
	Total        int      `json:"total"`
	Answered     int      `json:"answered"`
	Yes          int      `json:"yes"`
	Partial      int      `json:"partial"`
	No           int      `json:"no"`
	NA           int      `json:"na"`
	CriticalGaps []string `json:"criticalGaps"` // ids of high-weight questions answered "no"
}

// ScoreResult is the output of one scoring pass
type ScoreResult struct {
	FinalScore      int                       `json:"finalScore"` // 0..100
	PerCategory     map[string]CategoryResult `json:"perCategory"`
	CategoryOrder   []string                  `json:"categoryOrder"` // catalog order of PerCategory keys
	Recommendations []Recommendation          `json:"recommendations"`
	Stats           map[string]CategoryStats  `json:"stats"`
}

// OrderedCategories returns PerCategory as a slice in CategoryOrder
func (r *ScoreResult) OrderedCategories() []CategoryScore {
	out := make([]CategoryScore, 0, len(r.CategoryOrder))
	for _, name := range r.CategoryOrder {
		cr, ok := r.PerCategory[name]
		if !ok {
			continue
		}
		out = append(out, CategoryScore{
			Name:       name,
			Score:      cr.Score,
			Max:        cr.Max,
			Percentage: cr.Percentage,
		})
	}
	return out
}
