package domain

import (
	"errors"
	"math"
	"testing"
)

func TestVibeResult_Validate(t *testing.T) {
	tests := []struct {
		name    string
		result  VibeResult
		wantErr bool
	}{
		{
			name: "valid result",
			result: VibeResult{
				Tracks: []Track{{ID: "t1"}, {ID: "t2"}},
				Stats:  []VibeStat{{Name: "Nostalgia", Value: 25}},
			},
			wantErr: false,
		},
		{
			name:    "no tracks",
			result:  VibeResult{Summary: "empty"},
			wantErr: true,
		},
		{
			name:    "duplicate track id",
			result:  VibeResult{Tracks: []Track{{ID: "t1"}, {ID: "t1"}}},
			wantErr: true,
		},
		{
			name:    "track without id",
			result:  VibeResult{Tracks: []Track{{Name: "nameless"}}},
			wantErr: true,
		},
		{
			name: "negative stat",
			result: VibeResult{
				Tracks: []Track{{ID: "t1"}},
				Stats:  []VibeStat{{Name: "Gloom", Value: -1}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.result.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate: err=%v wantErr=%v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrEmptyResult) {
				t.Fatalf("expected ErrEmptyResult, got %v", err)
			}
		})
	}
}

func TestVibeResult_NormalizeStats(t *testing.T) {
	result := VibeResult{
		Stats: []VibeStat{
			{Name: "Nostalgia", Value: 1},
			{Name: "Energy", Value: 3},
		},
	}
	result.NormalizeStats()

	var total float64
	for _, s := range result.Stats {
		total += s.Value
	}
	if math.Abs(total-100) > 1e-9 {
		t.Fatalf("stats sum to %v, want 100", total)
	}
	if math.Abs(result.Stats[0].Value-25) > 1e-9 {
		t.Fatalf("first stat %v, want 25", result.Stats[0].Value)
	}
}

func TestVibeResult_URIs(t *testing.T) {
	result := VibeResult{Tracks: []Track{
		{ID: "t1", URI: "spotify:track:1"},
		{ID: "t2"}, // no playable reference
		{ID: "t3", URI: "spotify:track:3"},
	}}

	uris := result.URIs()
	if len(uris) != 2 {
		t.Fatalf("got %d uris, want 2", len(uris))
	}
	if uris[0] != "spotify:track:1" || uris[1] != "spotify:track:3" {
		t.Fatalf("uris out of order: %v", uris)
	}
}

func TestSession_RequireToken(t *testing.T) {
	if err := (Session{}).RequireToken(); !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
	if err := (Session{Token: "t1"}).RequireToken(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
