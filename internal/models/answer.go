package models

import "strings"

// Answer is the user's response to one question
type Answer string

const (
	AnswerYes     Answer = "yes"     // Fully in place
	AnswerPartial Answer = "partial" // Half credit, produces a recommendation
	AnswerNo      Answer = "no"      // No credit, produces a recommendation
	AnswerNA      Answer = "na"      // Excluded from both score and max
)

// Answers maps question id to answer. Unanswered questions are absent.
type Answers map[string]Answer

// AllAnswers lists the accepted answer values in display order
var AllAnswers = []Answer{AnswerYes, AnswerPartial, AnswerNo, AnswerNA}

// Valid reports whether a is one of the four accepted values
func (a Answer) Valid() bool {
	switch a {
	case AnswerYes, AnswerPartial, AnswerNo, AnswerNA:
		return true
	}
	return false
}

// ParseAnswer normalizes case and surrounding whitespace
func ParseAnswer(s string) (Answer, bool) {
	a := Answer(strings.ToLower(strings.TrimSpace(s)))
	return a, a.Valid()
}
