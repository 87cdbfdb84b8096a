package ports

import (
	"context"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
)

// HistoryStore persists per-user generation history keyed by a stable
// identity. LastVibe and SearchCount return domain.ErrNotFound when no
// entry exists.
type HistoryStore interface {
	SyncUser(ctx context.Context, email, spotifyID string) error
	LastVibe(ctx context.Context, email string) (domain.VibeResult, error)
	SaveVibe(ctx context.Context, email string, result domain.VibeResult) error
	SearchCount(ctx context.Context, email string) (int, error)
}
