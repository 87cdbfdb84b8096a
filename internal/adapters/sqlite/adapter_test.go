package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
)

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	a, err := NewAdapter(":memory:")
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func testResult(summary string) domain.VibeResult {
	return domain.VibeResult{
		Tracks: []domain.Track{
			{ID: "t1", Name: "Song One", Artist: "Artist A", URI: "spotify:track:t1"},
			{ID: "t2", Name: "Song Two", Artist: "Artist B", URI: "spotify:track:t2"},
		},
		Summary: summary,
		Stats: []domain.VibeStat{
			{Name: "Nostalgia", Value: 40},
			{Name: "Energy", Value: 60},
		},
	}
}

func TestAdapter_LastVibe(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(t *testing.T, a *Adapter)
		email       string
		wantErr     error
		wantSummary string
	}{
		{
			name:    "unknown user",
			setup:   func(t *testing.T, a *Adapter) {},
			email:   "nobody@test.dev",
			wantErr: domain.ErrNotFound,
		},
		{
			name: "synced user without a stored vibe",
			setup: func(t *testing.T, a *Adapter) {
				if err := a.SyncUser(context.Background(), "fresh@test.dev", "sp-1"); err != nil {
					t.Fatalf("sync user: %v", err)
				}
			},
			email:   "fresh@test.dev",
			wantErr: domain.ErrNotFound,
		},
		{
			name: "stored vibe round trips",
			setup: func(t *testing.T, a *Adapter) {
				if err := a.SaveVibe(context.Background(), "user@test.dev", testResult("late night drive")); err != nil {
					t.Fatalf("save vibe: %v", err)
				}
			},
			email:       "user@test.dev",
			wantSummary: "late night drive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAdapter(t)
			tt.setup(t, a)

			got, err := a.LastVibe(context.Background(), tt.email)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Summary != tt.wantSummary {
				t.Fatalf("summary: got %q, want %q", got.Summary, tt.wantSummary)
			}
			if len(got.Tracks) != 2 || got.Tracks[0].ID != "t1" {
				t.Fatalf("tracks not recovered: %+v", got.Tracks)
			}
			if len(got.Stats) != 2 {
				t.Fatalf("stats not recovered: %+v", got.Stats)
			}
		})
	}
}

func TestAdapter_SaveVibeReplacesAndCounts(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()
	const email = "user@test.dev"

	if err := a.SaveVibe(ctx, email, testResult("first")); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := a.SaveVibe(ctx, email, testResult("second")); err != nil {
		t.Fatalf("save second: %v", err)
	}

	got, err := a.LastVibe(ctx, email)
	if err != nil {
		t.Fatalf("last vibe: %v", err)
	}
	if got.Summary != "second" {
		t.Fatalf("stored vibe not replaced: got %q", got.Summary)
	}

	count, err := a.SearchCount(ctx, email)
	if err != nil {
		t.Fatalf("search count: %v", err)
	}
	if count != 2 {
		t.Fatalf("search count: got %d, want 2", count)
	}
}

func TestAdapter_SyncUserKeepsVibe(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()
	const email = "user@test.dev"

	if err := a.SaveVibe(ctx, email, testResult("kept")); err != nil {
		t.Fatalf("save vibe: %v", err)
	}

	// A later login sync must not wipe the stored result.
	if err := a.SyncUser(ctx, email, "sp-new"); err != nil {
		t.Fatalf("sync user: %v", err)
	}

	got, err := a.LastVibe(ctx, email)
	if err != nil {
		t.Fatalf("last vibe after sync: %v", err)
	}
	if got.Summary != "kept" {
		t.Fatalf("vibe lost on sync: got %q", got.Summary)
	}
}

func TestAdapter_SearchCountUnknownUser(t *testing.T) {
	a := newTestAdapter(t)
	if _, err := a.SearchCount(context.Background(), "nobody@test.dev"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
