package scoring

import (
	"math"

	"github.com/terra-clan/resilience-scorecard/internal/models"
)

const (
	// partialCredit is the share of a question's weight earned by "partial"
	partialCredit = 0.5

	// criticalWeight is the lowest weight whose "no" answer counts as a critical gap
	criticalWeight = 4
)

// Score computes per-category and aggregate scores for the answers given.
//
// Scope is re-derived from the selection with the same rules as
// SelectQuestions. For each in-scope question the weight is added to the
// category max; "yes" earns the full weight, "partial" half of it, "no"
// nothing. "na" removes the question from both score and max. Unanswered
// questions (and unknown answer values) stay in max, earn nothing and
// produce no recommendation.
//
// Categories whose max ends at zero are omitted. The final score is
// round-half-up of 100 * sum(score) / sum(max) across the remaining
// categories, so larger categories weigh more.
func Score(catalog *models.Catalog, sel models.Selection, answers models.Answers) models.ScoreResult {
	result := models.ScoreResult{
		PerCategory:     map[string]models.CategoryResult{},
		CategoryOrder:   []string{},
		Recommendations: []models.Recommendation{},
		Stats:           map[string]models.CategoryStats{},
	}

	var totalScore, totalMax float64

	eachCategory(catalog, func(cat *models.Category) {
		questions := inScope(cat, sel)
		if len(questions) == 0 {
			return
		}

		t := tally{stats: models.CategoryStats{CriticalGaps: []string{}}}
		for _, sq := range questions {
			rec, ok := t.add(sq.question, answers[sq.question.ID])
			if ok {
				rec.Category = cat.Name
				rec.SubCategory = sq.subCategory
				result.Recommendations = append(result.Recommendations, rec)
			}
		}

		result.Stats[cat.Name] = t.stats

		if t.max <= 0 {
			return
		}

		result.PerCategory[cat.Name] = models.CategoryResult{
			Score:      t.score,
			Max:        t.max,
			Percentage: 100 * t.score / t.max,
		}
		result.CategoryOrder = append(result.CategoryOrder, cat.Name)
		totalScore += t.score
		totalMax += t.max
	})

	result.FinalScore = normalize(totalScore, totalMax)
	return result
}

// tally accumulates one category
type tally struct {
	score float64
	max   float64
	stats models.CategoryStats
}

// add scores one question and returns the recommendation it produces, if any
func (t *tally) add(q models.Question, answer models.Answer) (models.Recommendation, bool) {
	weight := float64(q.EffectiveWeight())

	t.max += weight
	t.stats.Total++

	rec := models.Recommendation{QuestionID: q.ID, Text: q.Text}

	switch answer {
	case models.AnswerYes:
		t.score += weight
		t.stats.Answered++
		t.stats.Yes++
	case models.AnswerPartial:
		t.score += weight * partialCredit
		t.stats.Answered++
		t.stats.Partial++
		rec.Status = models.StatusPartial
		rec.PotentialPoints = weight * partialCredit
		return rec, true
	case models.AnswerNo:
		t.stats.Answered++
		t.stats.No++
		if q.EffectiveWeight() >= criticalWeight {
			t.stats.CriticalGaps = append(t.stats.CriticalGaps, q.ID)
		}
		rec.Status = models.StatusMissing
		rec.PotentialPoints = weight
		return rec, true
	case models.AnswerNA:
		t.max -= weight
		t.stats.Answered++
		t.stats.NA++
	}

	return models.Recommendation{}, false
}

// normalize converts totals into a 0..100 integer, rounding half up
func normalize(score, max float64) int {
	if max <= 0 {
		return 0
	}
	n := int(math.Floor(100*score/max + 0.5))
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
