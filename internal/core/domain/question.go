package domain

import (
	"errors"
	"strconv"
	"strings"
)

// Question is one quiz prompt. A question either declares a fixed set of
// selectable options or a bounded integer scale (Min < Max), never both.
type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options,omitempty"`
	Min     int      `json:"min,omitempty"`
	Max     int      `json:"max,omitempty"`
	// Scale labels for the endpoints of a numeric question.
	MinLabel string `json:"min_label,omitempty"`
	MaxLabel string `json:"max_label,omitempty"`
}

// IsScale reports whether the question accepts a numeric range value.
func (q Question) IsScale() bool {
	return len(q.Options) == 0 && q.Min < q.Max
}

// Accepts reports whether value is a valid selection for this question.
func (q Question) Accepts(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	if q.IsScale() {
		n, err := strconv.Atoi(value)
		return err == nil && n >= q.Min && n <= q.Max
	}
	for _, opt := range q.Options {
		if opt == value {
			return true
		}
	}
	return false
}

// ValidateQuestions checks the invariants a question list must satisfy
// before it can drive a quiz: unique identifiers and a non-empty option
// set or a sane scale per question.
func ValidateQuestions(questions []Question) error {
	if len(questions) == 0 {
		return errors.New("domain: question list is empty")
	}
	seen := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		if q.ID == "" {
			return errors.New("domain: question without identifier")
		}
		if _, dup := seen[q.ID]; dup {
			return errors.New("domain: duplicate question identifier " + q.ID)
		}
		seen[q.ID] = struct{}{}
		if len(q.Options) == 0 && !q.IsScale() {
			return errors.New("domain: question " + q.ID + " has no options and no range")
		}
	}
	return nil
}
