package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
)

// ErrNoConfidentMatch indicates search results did not meet the confidence threshold.
var ErrNoConfidentMatch = errors.New("no confident match")

// NoConfidentMatchError provides context for a failed track match.
type NoConfidentMatchError struct {
	Title  string
	Artist string
}

func (e NoConfidentMatchError) Error() string {
	if e.Title == "" && e.Artist == "" {
		return ErrNoConfidentMatch.Error()
	}
	return fmt.Sprintf("no confident match found for title %q artist %q", e.Title, e.Artist)
}

func (e NoConfidentMatchError) Is(target error) bool {
	return target == ErrNoConfidentMatch
}

// TrackResolver maps an (artist, title) suggestion to a concrete platform
// track. Implementations return a NoConfidentMatchError when nothing
// scores above the threshold.
type TrackResolver interface {
	ResolveTrack(ctx context.Context, token, title, artist string) (domain.Track, error)
}

// PlaylistExporter materializes an ordered list of track references as a
// playlist on the external platform. Not idempotent: each call may create
// a new playlist.
type PlaylistExporter interface {
	ExportPlaylist(ctx context.Context, token, name string, uris []string) (domain.PlaylistRef, error)
}
