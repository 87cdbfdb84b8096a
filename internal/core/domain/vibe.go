package domain

// Track is one recommended song inside a vibe result. Immutable once the
// result is published.
type Track struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Artist   string `json:"artist"`
	URI      string `json:"uri"`
	AlbumArt string `json:"album_art,omitempty"`
}

// VibeStat is one named slice of the vibe breakdown chart.
type VibeStat struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Suggestion is an (artist, title) pair proposed by the generation
// service before it has been resolved to a concrete platform track.
type Suggestion struct {
	Artist string `json:"artist"`
	Title  string `json:"track"`
}

// VibeDraft is what the generation service produces: suggestions that
// still need resolving against the music platform, plus the narrative
// summary and chart statistics.
type VibeDraft struct {
	Summary     string       `json:"summary"`
	Stats       []VibeStat   `json:"vibe_stats"`
	Suggestions []Suggestion `json:"tracks"`
}

// VibeResult is the outcome of one generation: an ordered track sequence,
// a free-text summary, and the named statistics driving the chart.
type VibeResult struct {
	Tracks  []Track    `json:"tracks"`
	Summary string     `json:"summary"`
	Stats   []VibeStat `json:"vibe_stats"`
}

// Validate enforces the publishing invariants: a non-empty track sequence
// with identifiers unique within the result, and non-negative statistics.
func (v VibeResult) Validate() error {
	if len(v.Tracks) == 0 {
		return ErrEmptyResult
	}
	seen := make(map[string]struct{}, len(v.Tracks))
	for _, t := range v.Tracks {
		if t.ID == "" {
			return ErrEmptyResult
		}
		if _, dup := seen[t.ID]; dup {
			return ErrEmptyResult
		}
		seen[t.ID] = struct{}{}
	}
	for _, s := range v.Stats {
		if s.Value < 0 {
			return ErrEmptyResult
		}
	}
	return nil
}

// NormalizeStats rescales the statistics so they sum to 100, which is the
// whole the chart expects. Results with no stats are left untouched.
func (v *VibeResult) NormalizeStats() {
	var total float64
	for _, s := range v.Stats {
		total += s.Value
	}
	if total <= 0 {
		return
	}
	for i := range v.Stats {
		v.Stats[i].Value = v.Stats[i].Value / total * 100
	}
}

// URIs returns the playable references of the result's tracks in order,
// skipping tracks that have none.
func (v VibeResult) URIs() []string {
	uris := make([]string, 0, len(v.Tracks))
	for _, t := range v.Tracks {
		if t.URI != "" {
			uris = append(uris, t.URI)
		}
	}
	return uris
}

// PlaylistRef is the openable reference returned by a successful export.
type PlaylistRef struct {
	ID   string `json:"playlist_id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}
