package scoring

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/resilience-scorecard/internal/models"
)

func TestScore_AlwaysIncludedOnly(t *testing.T) {
	got := Score(scenarioCatalog(), models.Select(), models.Answers{"q1": models.AnswerYes})

	assert.Equal(t, 100, got.FinalScore)
	assert.Equal(t, map[string]models.CategoryResult{
		"A": {Score: 4, Max: 4, Percentage: 100},
	}, got.PerCategory)
	assert.Equal(t, []string{"A"}, got.CategoryOrder)
	assert.Empty(t, got.Recommendations)
}

func TestScore_SelectedSubCategory(t *testing.T) {
	got := Score(scenarioCatalog(), models.Select(key("B", "B1")), models.Answers{
		"q1": models.AnswerNo,
		"q2": models.AnswerPartial,
	})

	assert.Equal(t, models.CategoryResult{Score: 0, Max: 4, Percentage: 0}, got.PerCategory["A"])
	assert.Equal(t, models.CategoryResult{Score: 1, Max: 2, Percentage: 50}, got.PerCategory["B"])
	assert.Equal(t, 17, got.FinalScore)
	assert.Equal(t, []string{"A", "B"}, got.CategoryOrder)

	require.Len(t, got.Recommendations, 2)

	missing := got.Recommendations[0]
	assert.Equal(t, "A", missing.Category)
	assert.Nil(t, missing.SubCategory)
	assert.Equal(t, "q1", missing.QuestionID)
	assert.Equal(t, models.StatusMissing, missing.Status)
	assert.Equal(t, 4.0, missing.PotentialPoints)

	partial := got.Recommendations[1]
	assert.Equal(t, "B", partial.Category)
	require.NotNil(t, partial.SubCategory)
	assert.Equal(t, "B1", *partial.SubCategory)
	assert.Equal(t, "q2", partial.QuestionID)
	assert.Equal(t, models.StatusPartial, partial.Status)
	assert.Equal(t, 1.0, partial.PotentialPoints)
}

func TestScore_AllNACategoryOmitted(t *testing.T) {
	got := Score(scenarioCatalog(), models.Select(key("B", "B1")), models.Answers{
		"q1": models.AnswerYes,
		"q2": models.AnswerNA,
	})

	assert.NotContains(t, got.PerCategory, "B")
	assert.Equal(t, []string{"A"}, got.CategoryOrder)
	assert.Equal(t, 100, got.FinalScore)
	assert.Equal(t, 1, got.Stats["B"].NA)
}

func TestScore_WeightedNotAveraged(t *testing.T) {
	small := models.Category{Name: "Small", AlwaysInclude: true}
	for _, id := range []string{"s1", "s2"} {
		small.Questions = append(small.Questions, models.Question{ID: id, Text: id, Weight: 5})
	}
	large := models.Category{Name: "Large", AlwaysInclude: true}
	answers := models.Answers{"s1": models.AnswerYes, "s2": models.AnswerYes}
	for i := 0; i < 20; i++ {
		id := "l" + string(rune('a'+i))
		large.Questions = append(large.Questions, models.Question{ID: id, Text: id, Weight: 5})
		answers[id] = models.AnswerNo
	}
	catalog := &models.Catalog{Categories: []models.Category{small, large}}

	got := Score(catalog, models.Select(), answers)

	assert.Equal(t, 10.0, got.PerCategory["Small"].Max)
	assert.Equal(t, 100.0, got.PerCategory["Large"].Max)
	assert.Equal(t, 9, got.FinalScore)
}

func TestScore_UnansweredCountsTowardMax(t *testing.T) {
	got := Score(scenarioCatalog(), models.Select(key("B", "B1")), models.Answers{
		"q1": models.AnswerYes,
	})

	assert.Equal(t, models.CategoryResult{Score: 0, Max: 2, Percentage: 0}, got.PerCategory["B"])
	assert.Equal(t, 67, got.FinalScore)
	assert.Empty(t, got.Recommendations)
	assert.Equal(t, 0, got.Stats["B"].Answered)
	assert.Equal(t, 1, got.Stats["B"].Total)
}

func TestScore_InvalidAnswerTreatedAsUnanswered(t *testing.T) {
	withInvalid := Score(scenarioCatalog(), models.Select(key("B", "B1")), models.Answers{
		"q1": models.AnswerYes,
		"q2": models.Answer("maybe"),
	})
	unanswered := Score(scenarioCatalog(), models.Select(key("B", "B1")), models.Answers{
		"q1": models.AnswerYes,
	})

	assert.Equal(t, unanswered, withInvalid)
}

func TestScore_RoundsHalfUp(t *testing.T) {
	catalog := &models.Catalog{Categories: []models.Category{{
		Name:          "R",
		AlwaysInclude: true,
		Questions: []models.Question{
			{ID: "r1", Text: "r1", Weight: 1},
			{ID: "r2", Text: "r2", Weight: 3},
		},
	}}}

	got := Score(catalog, models.Select(), models.Answers{
		"r1": models.AnswerPartial,
		"r2": models.AnswerNo,
	})

	assert.Equal(t, 12.5, got.PerCategory["R"].Percentage)
	assert.Equal(t, 13, got.FinalScore)
}

func TestScore_MissingWeightCountsAsOne(t *testing.T) {
	catalog := &models.Catalog{Categories: []models.Category{{
		Name:          "W",
		AlwaysInclude: true,
		Questions:     []models.Question{{ID: "w1", Text: "w1"}},
	}}}

	got := Score(catalog, models.Select(), models.Answers{"w1": models.AnswerNo})

	assert.Equal(t, 1.0, got.PerCategory["W"].Max)
	require.Len(t, got.Recommendations, 1)
	assert.Equal(t, 1.0, got.Recommendations[0].PotentialPoints)
}

func TestScore_NilCatalog(t *testing.T) {
	got := Score(nil, models.SelectAll(), models.Answers{"q1": models.AnswerYes})

	assert.Equal(t, 0, got.FinalScore)
	assert.Empty(t, got.PerCategory)
	assert.NotNil(t, got.Recommendations)
	assert.Empty(t, got.Recommendations)
}

func TestScore_Idempotent(t *testing.T) {
	catalog := cloudCatalog()
	sel := models.Select(key("Cloud", "AWS"), key("Databases", "SQL Databases"))
	answers := models.Answers{
		"1.02": models.AnswerPartial,
		"2.2":  models.AnswerNo,
		"2.20": models.AnswerNA,
		"3.1":  models.AnswerYes,
	}

	first := Score(catalog, sel, answers)
	second := Score(catalog, sel, answers)

	assert.Equal(t, first, second)
}

func TestScore_NAWeightDoesNotMatter(t *testing.T) {
	answers := models.Answers{
		"1.02": models.AnswerYes,
		"1.10": models.AnswerNo,
		"2.2":  models.AnswerNA,
		"2.10": models.AnswerPartial,
	}

	base := Score(cloudCatalog(), models.SelectAll(), answers)

	for _, w := range []int{1, 3, 5, 50} {
		catalog := cloudCatalog()
		catalog.Categories[0].Questions[1].Weight = w // question 2.2

		got := Score(catalog, models.SelectAll(), answers)
		assert.Equal(t, base.FinalScore, got.FinalScore, "weight %d", w)
		assert.Equal(t, base.PerCategory, got.PerCategory, "weight %d", w)
	}
}

func TestScore_Monotonic(t *testing.T) {
	catalog := cloudCatalog()
	questions := SelectQuestions(catalog, models.SelectAll())
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 200; round++ {
		answers := randomAnswers(rng, questions)
		before := Score(catalog, models.SelectAll(), answers).FinalScore

		for _, q := range questions {
			if answers[q.ID] != models.AnswerNo {
				continue
			}
			flipped := models.Answers{}
			for k, v := range answers {
				flipped[k] = v
			}
			flipped[q.ID] = models.AnswerYes

			after := Score(catalog, models.SelectAll(), flipped).FinalScore
			assert.GreaterOrEqual(t, after, before, "flipping %s", q.ID)
		}
	}
}

func TestScore_Bounds(t *testing.T) {
	catalog := cloudCatalog()
	questions := SelectQuestions(catalog, models.SelectAll())
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 500; round++ {
		got := Score(catalog, models.SelectAll(), randomAnswers(rng, questions))

		assert.GreaterOrEqual(t, got.FinalScore, 0)
		assert.LessOrEqual(t, got.FinalScore, 100)
		for name, cr := range got.PerCategory {
			assert.GreaterOrEqual(t, cr.Score, 0.0, name)
			assert.LessOrEqual(t, cr.Score, cr.Max, name)
			assert.Greater(t, cr.Max, 0.0, name)
		}
	}
}

func TestScore_Stats(t *testing.T) {
	got := Score(cloudCatalog(), models.Select(key("Cloud", "AWS")), models.Answers{
		"2.2":  models.AnswerYes,
		"2.10": models.AnswerPartial,
		"2.20": models.AnswerNo,
		"2.21": models.AnswerNo,
	})

	cloud := got.Stats["Cloud"]
	assert.Equal(t, 4, cloud.Total)
	assert.Equal(t, 4, cloud.Answered)
	assert.Equal(t, 1, cloud.Yes)
	assert.Equal(t, 1, cloud.Partial)
	assert.Equal(t, 2, cloud.No)
	assert.Equal(t, []string{"2.21", "2.20"}, cloud.CriticalGaps)

	backup := got.Stats["Backup Architecture"]
	assert.Equal(t, 2, backup.Total)
	assert.Equal(t, 0, backup.Answered)
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "excellent"},
		{80, "excellent"},
		{79, "good"},
		{60, "good"},
		{59, "moderate"},
		{40, "moderate"},
		{39, "critical"},
		{0, "critical"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BandFor(tt.score).Key, "score %d", tt.score)
	}
}

func randomAnswers(rng *rand.Rand, questions []models.AnnotatedQuestion) models.Answers {
	answers := models.Answers{}
	for _, q := range questions {
		// index len(AllAnswers) leaves the question unanswered
		i := rng.Intn(len(models.AllAnswers) + 1)
		if i < len(models.AllAnswers) {
			answers[q.ID] = models.AllAnswers[i]
		}
	}
	return answers
}
