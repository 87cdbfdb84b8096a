// Package questions serves the ordered quiz question list. The catalog is
// compiled in; it sits behind the question-source port so a remote source
// can replace it without touching the core.
package questions

import (
	"context"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
)

// Catalog is the built-in question source.
type Catalog struct {
	questions []domain.Question
}

var _ ports.QuestionSource = (*Catalog)(nil)

// NewCatalog returns the default ten-step progressive quiz.
func NewCatalog() *Catalog {
	return &Catalog{questions: defaultQuestions()}
}

// Questions returns the ordered question list. The slice is copied so a
// caller can never mutate the catalog.
func (c *Catalog) Questions(ctx context.Context) ([]domain.Question, error) {
	out := make([]domain.Question, len(c.questions))
	copy(out, c.questions)
	return out, nil
}

func defaultQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:      "genre",
			Text:    "What sound are you craving?",
			Options: []string{"Indie", "Hip-Hop", "Electronic", "Rock", "R&B", "Jazz"},
		},
		{
			ID:      "era",
			Text:    "Which era should it come from?",
			Options: []string{"60s & 70s", "80s", "90s", "2000s", "2010s", "Right now"},
		},
		{
			ID:      "mood",
			Text:    "How are you actually feeling?",
			Options: []string{"Euphoric", "Melancholic", "Restless", "Nostalgic", "Focused", "Untouchable"},
		},
		{
			ID:      "setting",
			Text:    "Where will this be playing?",
			Options: []string{"Late-night drive", "Morning commute", "Deep work", "House party", "Gym", "Rainy window"},
		},
		{
			ID:      "discovery",
			Text:    "Familiar comfort or new territory?",
			Options: []string{"Only songs I know", "Mostly familiar", "A healthy mix", "Mostly new", "Deep cuts only", "Surprise me completely"},
		},
		{
			ID:       "energy",
			Text:     "What's the vibe?",
			Min:      1,
			Max:      10,
			MinLabel: "Zombie",
			MaxLabel: "Nuclear",
		},
		{
			ID:       "valence",
			Text:     "Mood level?",
			Min:      1,
			Max:      10,
			MinLabel: "Deep Blue",
			MaxLabel: "Sunshine",
		},
		{
			ID:       "scene",
			Text:     "In a library or at a party?",
			Min:      1,
			Max:      10,
			MinLabel: "Library",
			MaxLabel: "Party",
		},
		{
			ID:      "vocals",
			Text:    "Voices or no voices?",
			Options: []string{"All instrumental", "Mostly instrumental", "Balanced", "Vocal-forward", "Choirs and harmonies", "One voice and a guitar"},
		},
		{
			ID:      "tempo",
			Text:    "Pick your pace.",
			Options: []string{"Glacial", "Slow burn", "Head-nod", "Mid-tempo", "Uptempo", "Breakneck"},
		},
	}
}
