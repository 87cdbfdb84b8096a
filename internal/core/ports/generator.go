package ports

import (
	"context"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
)

// VibeGenerator turns a finalized answer set into a vibe draft. An empty
// answer map is permitted and treated as "no preference".
type VibeGenerator interface {
	GenerateVibe(ctx context.Context, answers map[string]string, language string) (domain.VibeDraft, error)
}
