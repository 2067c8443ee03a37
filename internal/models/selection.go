package models

// SelectionKey identifies one assessable (category, sub-category) unit.
// It is a struct rather than a joined string so names may contain any character.
type SelectionKey struct {
	Category    string `json:"category"`
	SubCategory string `json:"subCategory"`
}

// Selection is the set of keys a user picked.
//
// The zero value is an explicit empty selection: only categories marked
// alwaysInclude contribute questions. SelectAll returns the unfiltered
// selection used when no selection step took place.
type Selection struct {
	keys       map[SelectionKey]struct{}
	categories map[string]int
	unfiltered bool
}

// SelectAll returns a selection that includes every category and sub-category
func SelectAll() Selection {
	return Selection{unfiltered: true}
}

// Select returns an explicit selection of the given keys
func Select(keys ...SelectionKey) Selection {
	s := Selection{
		keys:       make(map[SelectionKey]struct{}, len(keys)),
		categories: make(map[string]int),
	}
	for _, k := range keys {
		if _, dup := s.keys[k]; dup {
			continue
		}
		s.keys[k] = struct{}{}
		s.categories[k.Category]++
	}
	return s
}

// SelectionFromKeys maps a decoded key list onto a Selection: nil means
// unset (no filter), a non-nil slice (even empty) is an explicit selection.
func SelectionFromKeys(keys []SelectionKey) Selection {
	if keys == nil {
		return SelectAll()
	}
	return Select(keys...)
}

// Unfiltered reports whether the selection includes everything
func (s Selection) Unfiltered() bool {
	return s.unfiltered
}

// Has reports whether the sub-category unit is selected
func (s Selection) Has(k SelectionKey) bool {
	if s.unfiltered {
		return true
	}
	_, ok := s.keys[k]
	return ok
}

// HasCategory reports whether at least one key names the category
func (s Selection) HasCategory(name string) bool {
	if s.unfiltered {
		return true
	}
	return s.categories[name] > 0
}

// Len returns the number of distinct keys (0 for an unfiltered selection)
func (s Selection) Len() int {
	return len(s.keys)
}

// Keys returns the selected keys in unspecified order
func (s Selection) Keys() []SelectionKey {
	out := make([]SelectionKey, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	return out
}
