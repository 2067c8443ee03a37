package models

// Catalog is the static tree of categories, sub-categories and questions
type Catalog struct {
	Version    string     `json:"version,omitempty"`
	Categories []Category `json:"categories"`
}

// Category represents a top-level assessment area (e.g. "Backup Architecture", "Cloud")
type Category struct {
	Name          string        `json:"name"`
	Icon          string        `json:"icon,omitempty"` // display hint, opaque to scoring
	Description   string        `json:"description,omitempty"`
	AlwaysInclude bool          `json:"alwaysInclude,omitempty"`
	Questions     []Question    `json:"questions,omitempty"`
	SubCategories []SubCategory `json:"subCategories,omitempty"`
}

// SubCategory groups questions for one selectable area of a category (e.g. "Cloud" → "AWS")
type SubCategory struct {
	Name      string     `json:"name"`
	Questions []Question `json:"questions,omitempty"`
}

// Question is a single weighted yes/partial/no/na question
type Question struct {
	ID     string   `json:"id"`
	Text   string   `json:"text"`
	Weight int      `json:"weight"`          // 1..5
	Order  float64  `json:"order,omitempty"` // editing position, see catalog.Rebalance
	Tags   []string `json:"tags,omitempty"`
}

// DefaultIcon is shown for categories without an icon
const DefaultIcon = "❓"

// EffectiveWeight returns the weight used for scoring. Missing weights count as 1.
func (q Question) EffectiveWeight() int {
	if q.Weight <= 0 {
		return 1
	}
	return q.Weight
}

// IsWellFormed reports whether the question carries the fields scoring needs
func (q Question) IsWellFormed() bool {
	return q.ID != "" && q.Text != ""
}

// FindCategory returns the category with the given name, or nil
func (c *Catalog) FindCategory(name string) *Category {
	if c == nil {
		return nil
	}
	for i := range c.Categories {
		if c.Categories[i].Name == name {
			return &c.Categories[i]
		}
	}
	return nil
}

// FindSubCategory returns the named sub-category, or nil
func (c *Category) FindSubCategory(name string) *SubCategory {
	if c == nil {
		return nil
	}
	for i := range c.SubCategories {
		if c.SubCategories[i].Name == name {
			return &c.SubCategories[i]
		}
	}
	return nil
}

// QuestionCount returns the number of questions in the category, sub-categories included
func (c *Category) QuestionCount() int {
	n := len(c.Questions)
	for _, sc := range c.SubCategories {
		n += len(sc.Questions)
	}
	return n
}

// Clone returns a deep copy of the catalog
func (c *Catalog) Clone() *Catalog {
	if c == nil {
		return nil
	}
	out := &Catalog{Version: c.Version}
	if c.Categories != nil {
		out.Categories = make([]Category, len(c.Categories))
	}
	for i, cat := range c.Categories {
		cp := cat
		cp.Questions = cloneQuestions(cat.Questions)
		if cat.SubCategories != nil {
			cp.SubCategories = make([]SubCategory, len(cat.SubCategories))
			for j, sc := range cat.SubCategories {
				cp.SubCategories[j] = SubCategory{Name: sc.Name, Questions: cloneQuestions(sc.Questions)}
			}
		}
		out.Categories[i] = cp
	}
	return out
}

func cloneQuestions(qs []Question) []Question {
	if qs == nil {
		return nil
	}
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = q
		if q.Tags != nil {
			out[i].Tags = append([]string(nil), q.Tags...)
		}
	}
	return out
}

// AnnotatedQuestion is a question together with where it lives in the catalog
type AnnotatedQuestion struct {
	Question
	Category     string  `json:"category"`
	SubCategory  *string `json:"subCategory"` // nil for category-level questions
	CategoryIcon string  `json:"categoryIcon"`
}

// CategorySummary describes one category for the selection step
type CategorySummary struct {
	Name           string   `json:"name"`
	Icon           string   `json:"icon"`
	AlwaysInclude  bool     `json:"alwaysInclude"`
	GeneralCount   int      `json:"generalCount"` // category-level questions
	TotalQuestions int      `json:"totalQuestions"`
	SubCategories  []string `json:"subCategories"` // non-empty sub-categories only
}
