package validation

import (
	"fmt"

	"github.com/terra-clan/resilience-scorecard/internal/models"
)

// ValidateSelection checks user-picked keys against the catalog and returns
// the matching Selection. A nil slice means no selection step took place.
//
// An explicit selection must name at least one unit whenever the catalog has
// something to choose from; categories marked alwaysInclude need no key.
func ValidateSelection(cat *models.Catalog, keys []models.SelectionKey) (models.Selection, error) {
	sel, err := CheckSelectionKeys(cat, keys)
	if err != nil {
		return models.Selection{}, err
	}
	if keys != nil && len(keys) == 0 && hasSelectableUnits(cat) {
		return models.Selection{}, reject("selectedKeys", "select at least one category to assess")
	}
	return sel, nil
}

// CheckSelectionKeys rejects keys naming an unknown category or sub-category
// without requiring a non-empty selection. A key with an empty sub-category
// selects a category's own questions.
func CheckSelectionKeys(cat *models.Catalog, keys []models.SelectionKey) (models.Selection, error) {
	if keys == nil {
		return models.SelectAll(), nil
	}

	var errs ValidationErrors
	for i, k := range keys {
		field := fmt.Sprintf("selectedKeys[%d]", i)
		c := cat.FindCategory(k.Category)
		switch {
		case c == nil:
			errs = append(errs, reject(field, fmt.Sprintf("unknown category %q", k.Category)))
		case k.SubCategory != "" && c.FindSubCategory(k.SubCategory) == nil:
			errs = append(errs, reject(field, fmt.Sprintf("unknown sub-category %q in category %q", k.SubCategory, k.Category)))
		}
	}
	if err := errs.orNil(); err != nil {
		return models.Selection{}, err
	}
	return models.Select(keys...), nil
}

// hasSelectableUnits reports whether any category needs a key to be assessed
func hasSelectableUnits(cat *models.Catalog) bool {
	if cat == nil {
		return false
	}
	for _, c := range cat.Categories {
		if !c.AlwaysInclude && c.QuestionCount() > 0 {
			return true
		}
	}
	return false
}
