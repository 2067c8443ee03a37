package validation

import (
	"fmt"
	"strings"
)

// ValidationError rejects one input field with a specific reason
type ValidationError struct {
	Field   string   `json:"field"`
	Reason  string   `json:"reason"`
	Details []string `json:"details,omitempty"` // every failed check, Reason first
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationErrors collects failures across several fields
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// orNil returns nil for an empty list so callers can return it as error
func (v ValidationErrors) orNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
