package ports

import (
	"context"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
)

// QuestionSource supplies the ordered question list a quiz walks. Fetched
// once at quiz start; the list is read-only for the run.
type QuestionSource interface {
	Questions(ctx context.Context) ([]domain.Question, error)
}
