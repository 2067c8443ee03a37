package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/terra-clan/resilience-scorecard/internal/models"
)

var answerChoices = func() string {
	names := make([]string, 0, len(models.AllAnswers))
	for _, a := range models.AllAnswers {
		names = append(names, string(a))
	}
	return strings.Join(names, ", ")
}()

// ValidateAnswers normalizes raw answer values and checks that every
// question id exists in the catalog. All failures are reported together.
func ValidateAnswers(cat *models.Catalog, raw map[string]string) (models.Answers, error) {
	known := questionIDs(cat)

	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	answers := make(models.Answers, len(raw))
	var errs ValidationErrors
	for _, id := range ids {
		field := "answers." + id
		if _, ok := known[id]; !ok {
			errs = append(errs, reject(field, fmt.Sprintf("unknown question %q", id)))
			continue
		}
		a, ok := models.ParseAnswer(raw[id])
		if !ok {
			errs = append(errs, reject(field, fmt.Sprintf("answer must be one of: %s", answerChoices)))
			continue
		}
		answers[id] = a
	}

	if err := errs.orNil(); err != nil {
		return nil, err
	}
	return answers, nil
}

func questionIDs(cat *models.Catalog) map[string]struct{} {
	ids := make(map[string]struct{})
	if cat == nil {
		return ids
	}
	for _, c := range cat.Categories {
		for _, q := range c.Questions {
			if q.IsWellFormed() {
				ids[q.ID] = struct{}{}
			}
		}
		for _, sc := range c.SubCategories {
			for _, q := range sc.Questions {
				if q.IsWellFormed() {
					ids[q.ID] = struct{}{}
				}
			}
		}
	}
	return ids
}
