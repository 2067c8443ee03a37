package catalog

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/terra-clan/resilience-scorecard/internal/models"
)

// Edit operations never modify their input: each returns a new catalog.

const orderGap = 100

// Location addresses a question list: a category's own questions when
// SubCategory is empty, otherwise the named sub-category.
type Location struct {
	Category    string
	SubCategory string
}

// AddQuestion appends a question at loc. A missing sub-category is created.
// A zero Order is replaced by the next slot after the current last question.
func AddQuestion(cat *models.Catalog, loc Location, q models.Question) (*models.Catalog, error) {
	if cat == nil {
		return nil, ErrCatalogNotLoaded
	}
	if !q.IsWellFormed() {
		return nil, fmt.Errorf("question requires id and text")
	}
	if q.Weight < minWeight || q.Weight > maxWeight {
		return nil, fmt.Errorf("weight %d is outside %d..%d", q.Weight, minWeight, maxWeight)
	}
	if _, _, ok := locate(cat, q.ID); ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateQuestion, q.ID)
	}

	out := cat.Clone()
	c := out.FindCategory(loc.Category)
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, loc.Category)
	}

	list := &c.Questions
	if loc.SubCategory != "" {
		sc := c.FindSubCategory(loc.SubCategory)
		if sc == nil {
			c.SubCategories = append(c.SubCategories, models.SubCategory{Name: loc.SubCategory})
			sc = &c.SubCategories[len(c.SubCategories)-1]
		}
		list = &sc.Questions
	}

	if q.Order == 0 {
		q.Order = nextOrder(*list)
	}
	if q.Tags != nil {
		q.Tags = append([]string(nil), q.Tags...)
	}
	*list = append(*list, q)
	sortByOrder(*list)
	return out, nil
}

// QuestionUpdate lists the fields to change. Nil fields are left alone.
type QuestionUpdate struct {
	Text   *string   `json:"text,omitempty"`
	Weight *int      `json:"weight,omitempty"`
	Order  *float64  `json:"order,omitempty"`
	Tags   *[]string `json:"tags,omitempty"`
}

// UpdateQuestion applies an update to the question with the given id
func UpdateQuestion(cat *models.Catalog, id string, upd QuestionUpdate) (*models.Catalog, error) {
	if cat == nil {
		return nil, ErrCatalogNotLoaded
	}
	if upd.Text != nil && *upd.Text == "" {
		return nil, fmt.Errorf("question text cannot be empty")
	}
	if upd.Weight != nil && (*upd.Weight < minWeight || *upd.Weight > maxWeight) {
		return nil, fmt.Errorf("weight %d is outside %d..%d", *upd.Weight, minWeight, maxWeight)
	}

	out := cat.Clone()
	list, idx, ok := locate(out, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrQuestionNotFound, id)
	}

	q := &(*list)[idx]
	if upd.Text != nil {
		q.Text = *upd.Text
	}
	if upd.Weight != nil {
		q.Weight = *upd.Weight
	}
	if upd.Tags != nil {
		q.Tags = append([]string(nil), (*upd.Tags)...)
	}
	if upd.Order != nil {
		q.Order = *upd.Order
		sortByOrder(*list)
	}
	return out, nil
}

// RemoveQuestion deletes the question with the given id
func RemoveQuestion(cat *models.Catalog, id string) (*models.Catalog, error) {
	if cat == nil {
		return nil, ErrCatalogNotLoaded
	}

	out := cat.Clone()
	list, idx, ok := locate(out, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrQuestionNotFound, id)
	}
	*list = append((*list)[:idx], (*list)[idx+1:]...)
	return out, nil
}

type positionKind int

const (
	positionFirst positionKind = iota
	positionLast
	positionAfter
	positionAt
)

// Position is a target for MoveQuestion
type Position struct {
	kind  positionKind
	after string
	order float64
}

// First places a question before every other question of its category
func First() Position { return Position{kind: positionFirst} }

// Last places a question after every other question of its category
func Last() Position { return Position{kind: positionLast} }

// After places a question right behind the question with the given id
func After(id string) Position { return Position{kind: positionAfter, after: id} }

// At sets the order value directly
func At(order float64) Position { return Position{kind: positionAt, order: order} }

// ParsePosition reads "first", "last", a number, or a question id
func ParsePosition(s string) (Position, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return Position{}, fmt.Errorf("position is required")
	case "first":
		return First(), nil
	case "last":
		return Last(), nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return At(f), nil
	}
	return After(s), nil
}

func (p Position) String() string {
	switch p.kind {
	case positionFirst:
		return "first"
	case positionLast:
		return "last"
	case positionAfter:
		return "after " + p.after
	default:
		return strconv.FormatFloat(p.order, 'f', -1, 64)
	}
}

// MoveQuestion changes a question's order relative to the other questions
// of its category, sub-categories included. Neighbours keep their values.
func MoveQuestion(cat *models.Catalog, id string, pos Position) (*models.Catalog, error) {
	if cat == nil {
		return nil, ErrCatalogNotLoaded
	}

	out := cat.Clone()
	list, idx, ok := locate(out, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrQuestionNotFound, id)
	}

	c := owningCategory(out, id)
	siblings := categoryQuestions(c)

	var order float64
	switch pos.kind {
	case positionFirst:
		order = siblings[0].Order - orderGap
	case positionLast:
		order = siblings[len(siblings)-1].Order + orderGap
	case positionAfter:
		t := -1
		for i, q := range siblings {
			if q.ID == pos.after {
				t = i
				break
			}
		}
		if t < 0 {
			return nil, fmt.Errorf("%w: target %s in category %q", ErrQuestionNotFound, pos.after, c.Name)
		}
		order = siblings[t].Order + orderGap
		// Skip the moved question itself when looking for the next neighbour
		for _, next := range siblings[t+1:] {
			if next.ID == id {
				continue
			}
			order = (siblings[t].Order + next.Order) / 2
			break
		}
	default:
		order = pos.order
	}

	(*list)[idx].Order = order
	sortByOrder(*list)
	return out, nil
}

// Rebalance reassigns order values within a category as base + i*100,
// keeping the current relative order. Base is derived from the category's
// position in the catalog (first category 1000, second 2000, ...).
func Rebalance(cat *models.Catalog, category string) (*models.Catalog, error) {
	if cat == nil {
		return nil, ErrCatalogNotLoaded
	}

	out := cat.Clone()
	idx := -1
	for i := range out.Categories {
		if out.Categories[i].Name == category {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, category)
	}

	c := &out.Categories[idx]
	base := float64((idx + 1) * 1000)

	var refs []*models.Question
	for i := range c.Questions {
		refs = append(refs, &c.Questions[i])
	}
	for j := range c.SubCategories {
		for i := range c.SubCategories[j].Questions {
			refs = append(refs, &c.SubCategories[j].Questions[i])
		}
	}
	sort.SliceStable(refs, func(i, j int) bool { return refs[i].Order < refs[j].Order })

	for i, q := range refs {
		q.Order = base + float64(i*orderGap)
	}

	sortByOrder(c.Questions)
	for j := range c.SubCategories {
		sortByOrder(c.SubCategories[j].Questions)
	}
	return out, nil
}

// Criteria filters FindQuestions. Zero fields match everything.
type Criteria struct {
	Category    string
	SubCategory string
	Tags        []string // any of
	Weight      int
	Search      string // case-insensitive substring of the text
}

// FindQuestions returns matching questions in catalog order
func FindQuestions(cat *models.Catalog, crit Criteria) []models.AnnotatedQuestion {
	out := []models.AnnotatedQuestion{}
	if cat == nil {
		return out
	}
	search := strings.ToLower(crit.Search)

	match := func(q models.Question, sub string) bool {
		if crit.SubCategory != "" && sub != crit.SubCategory {
			return false
		}
		if crit.Weight != 0 && q.Weight != crit.Weight {
			return false
		}
		if len(crit.Tags) > 0 && !hasAnyTag(q.Tags, crit.Tags) {
			return false
		}
		if search != "" && !strings.Contains(strings.ToLower(q.Text), search) {
			return false
		}
		return true
	}

	for _, c := range cat.Categories {
		if crit.Category != "" && c.Name != crit.Category {
			continue
		}
		icon := c.Icon
		if icon == "" {
			icon = models.DefaultIcon
		}
		for _, q := range c.Questions {
			if match(q, "") {
				out = append(out, models.AnnotatedQuestion{Question: q, Category: c.Name, CategoryIcon: icon})
			}
		}
		for _, sc := range c.SubCategories {
			name := sc.Name
			for _, q := range sc.Questions {
				if match(q, name) {
					out = append(out, models.AnnotatedQuestion{Question: q, Category: c.Name, SubCategory: &name, CategoryIcon: icon})
				}
			}
		}
	}
	return out
}

// locate finds the list holding the question and its index there
func locate(cat *models.Catalog, id string) (*[]models.Question, int, bool) {
	for i := range cat.Categories {
		c := &cat.Categories[i]
		for k := range c.Questions {
			if c.Questions[k].ID == id {
				return &c.Questions, k, true
			}
		}
		for j := range c.SubCategories {
			sc := &c.SubCategories[j]
			for k := range sc.Questions {
				if sc.Questions[k].ID == id {
					return &sc.Questions, k, true
				}
			}
		}
	}
	return nil, 0, false
}

func owningCategory(cat *models.Catalog, id string) *models.Category {
	for i := range cat.Categories {
		for _, q := range categoryQuestions(&cat.Categories[i]) {
			if q.ID == id {
				return &cat.Categories[i]
			}
		}
	}
	return nil
}

// categoryQuestions returns every question of a category sorted by order
func categoryQuestions(c *models.Category) []models.Question {
	all := append([]models.Question(nil), c.Questions...)
	for _, sc := range c.SubCategories {
		all = append(all, sc.Questions...)
	}
	sortByOrder(all)
	return all
}

func nextOrder(qs []models.Question) float64 {
	if len(qs) == 0 {
		return orderGap
	}
	highest := qs[0].Order
	for _, q := range qs[1:] {
		highest = math.Max(highest, q.Order)
	}
	return math.Ceil(highest/orderGap)*orderGap + orderGap
}

func sortByOrder(qs []models.Question) {
	sort.SliceStable(qs, func(i, j int) bool { return qs[i].Order < qs[j].Order })
}

func hasAnyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}
