package gemini

import (
	"fmt"
	"sort"
	"strings"
)

// answer keys the narrative sentence knows how to phrase directly.
var narrativeKeys = []string{"genre", "era", "mood", "setting", "discovery"}

// buildPrompt turns the answer set and language into the vibe paragraph
// the curator persona analyzes. Missing answers fall back to neutral
// phrasing so an empty set still yields a usable "no preference" prompt.
func buildPrompt(answers map[string]string, language string, trackCount int) string {
	var b strings.Builder

	b.WriteString("ANALYSIS: ")
	b.WriteString(narrative(answers, language))
	b.WriteString("\n\n")

	if extra := extraSignals(answers); extra != "" {
		b.WriteString("ADDITIONAL SIGNALS: ")
		b.WriteString(extra)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "TASK: Return a %d-track playlist as JSON with a one-sentence poetic summary, "+
		"a small set of named vibe statistics whose values sum to 100, "+
		"and the track list as artist/track pairs.", trackCount)

	return b.String()
}

func narrative(answers map[string]string, language string) string {
	pick := func(key, fallback string) string {
		if v, ok := answers[key]; ok && v != "" {
			return v
		}
		return fallback
	}

	return fmt.Sprintf(
		"The user wants a %s sound from the %s. They are in a %s mood, listening during %s. "+
			"They want %s and the language must be %s.",
		pick("genre", "any"),
		pick("era", "any era"),
		pick("mood", "neutral"),
		pick("setting", "an ordinary day"),
		pick("discovery", "a healthy mix"),
		language,
	)
}

// extraSignals renders the answers the narrative sentence does not cover,
// such as the 1-10 scale questions, in a stable order.
func extraSignals(answers map[string]string) string {
	covered := make(map[string]struct{}, len(narrativeKeys))
	for _, k := range narrativeKeys {
		covered[k] = struct{}{}
	}

	keys := make([]string, 0, len(answers))
	for k := range answers {
		if _, ok := covered[k]; ok {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, answers[k]))
	}
	return strings.Join(parts, ", ")
}
