package spotify

import "testing"

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{
			name: "kitten sitting",
			a:    "kitten",
			b:    "sitting",
			want: 3,
		},
		{
			name: "empty to word",
			a:    "",
			b:    "sound",
			want: 5,
		},
		{
			name: "identical",
			a:    "vibe",
			b:    "vibe",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := levenshteinDistance(tt.a, tt.b)
			if got != tt.want {
				t.Fatalf("distance: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTrackMatchScore(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		artist string
		track  spotifyTrack
		wantOK bool
	}{
		{
			name:   "matches remastered title",
			title:  "Happy",
			artist: "Pharrell Williams",
			track: spotifyTrack{
				Name:    "Happy (Remastered 2014)",
				Artists: []spotifyArtist{{Name: "Pharrell Williams"}},
			},
			wantOK: true,
		},
		{
			name:   "rejects different track",
			title:  "Happy",
			artist: "Pharrell Williams",
			track: spotifyTrack{
				Name:    "Sad Song",
				Artists: []spotifyArtist{{Name: "Other Artist"}},
			},
			wantOK: false,
		},
		{
			name:   "rejects right title wrong artist",
			title:  "Happy",
			artist: "Pharrell Williams",
			track: spotifyTrack{
				Name:    "Happy",
				Artists: []spotifyArtist{{Name: "A Completely Unrelated Band"}},
			},
			wantOK: false,
		},
		{
			name:   "rejects candidate without artists",
			title:  "Happy",
			artist: "Pharrell Williams",
			track: spotifyTrack{
				Name: "Happy",
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := trackMatchScore(tt.title, tt.artist, tt.track)
			if got != tt.wantOK {
				t.Fatalf("match: got %v, want %v", got, tt.wantOK)
			}
		})
	}
}
