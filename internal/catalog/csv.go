package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/terra-clan/resilience-scorecard/internal/models"
)

// CSVHeader is the column layout used by offline catalog editing
var CSVHeader = []string{"ID", "Category", "Subcategory", "Order", "Text", "Weight", "Tags"}

const tagSeparator = ";"

// ExportCSV writes one row per question, category-level questions first
func ExportCSV(w io.Writer, cat *models.Catalog) error {
	if cat == nil {
		return ErrCatalogNotLoaded
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	row := func(c, sub string, q models.Question) []string {
		return []string{
			q.ID,
			c,
			sub,
			strconv.FormatFloat(q.Order, 'f', -1, 64),
			q.Text,
			strconv.Itoa(q.Weight),
			strings.Join(q.Tags, tagSeparator),
		}
	}

	for _, c := range cat.Categories {
		for _, q := range c.Questions {
			if err := cw.Write(row(c.Name, "", q)); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		for _, sc := range c.SubCategories {
			for _, q := range sc.Questions {
				if err := cw.Write(row(c.Name, sc.Name, q)); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// ImportCSV builds a catalog from exported rows. Category metadata (icon,
// description, alwaysInclude) and category order are taken from base when
// names match; base may be nil.
func ImportCSV(r io.Reader, base *models.Catalog) (*models.Catalog, []Issue, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("CSV is empty")
		}
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, required := range []string{"id", "category", "text", "weight"} {
		if _, ok := cols[required]; !ok {
			return nil, nil, fmt.Errorf("CSV header is missing column %q", required)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	out := &models.Catalog{}
	if base != nil {
		out.Version = base.Version
		for _, c := range base.Categories {
			out.Categories = append(out.Categories, models.Category{
				Name:          c.Name,
				Icon:          c.Icon,
				Description:   c.Description,
				AlwaysInclude: c.AlwaysInclude,
			})
		}
	}

	var issues []Issue
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, issues, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}
		if isBlank(rec) {
			continue
		}

		path := fmt.Sprintf("line %d", line)
		q := models.Question{
			ID:   field(rec, "id"),
			Text: field(rec, "text"),
		}

		weight, err := strconv.Atoi(field(rec, "weight"))
		if err != nil {
			// Dropped so the range check does not report the same cell twice
			issues = append(issues, errorf(path+"/Weight", "weight %q is not an integer", field(rec, "weight")))
			continue
		}
		q.Weight = weight

		if raw := field(rec, "order"); raw != "" {
			order, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				issues = append(issues, errorf(path+"/Order", "order %q is not a number", raw))
			}
			q.Order = order
		}

		for _, tag := range strings.Split(field(rec, "tags"), tagSeparator) {
			if tag = strings.TrimSpace(tag); tag != "" {
				q.Tags = append(q.Tags, tag)
			}
		}

		category := field(rec, "category")
		if category == "" {
			issues = append(issues, errorf(path+"/Category", "missing category for %q", q.ID))
			continue
		}

		c := out.FindCategory(category)
		if c == nil {
			out.Categories = append(out.Categories, models.Category{Name: category})
			c = &out.Categories[len(out.Categories)-1]
		}

		if sub := field(rec, "subcategory"); sub != "" {
			sc := c.FindSubCategory(sub)
			if sc == nil {
				c.SubCategories = append(c.SubCategories, models.SubCategory{Name: sub})
				sc = &c.SubCategories[len(c.SubCategories)-1]
			}
			sc.Questions = append(sc.Questions, q)
		} else {
			c.Questions = append(c.Questions, q)
		}
	}

	// Base categories without rows are dropped
	kept := out.Categories[:0]
	for _, c := range out.Categories {
		if c.QuestionCount() > 0 {
			sortByOrder(c.Questions)
			for j := range c.SubCategories {
				sortByOrder(c.SubCategories[j].Questions)
			}
			kept = append(kept, c)
		}
	}
	out.Categories = kept

	issues = append(issues, Validate(out)...)
	if HasErrors(issues) {
		return nil, issues, &CatalogError{Source: "csv", Issues: issues}
	}
	return out, issues, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
