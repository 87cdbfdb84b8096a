package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
)

// ResolveTrack searches for the suggestion and returns the best candidate
// that clears the confidence thresholds. Calls are rate-limited so bulk
// resolution stays under the platform's throttle.
func (c *Client) ResolveTrack(ctx context.Context, token, title, artist string) (domain.Track, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.Track{}, fmt.Errorf("spotify adapter: rate limit wait: %w", err)
	}

	searchURL, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return domain.Track{}, fmt.Errorf("spotify adapter: invalid search url: %w", err)
	}

	queryTitle := fallbackIfEmpty(normalizeSearchInput(title), title)
	queryArtist := fallbackIfEmpty(normalizeSearchInput(artist), artist)

	query := searchURL.Query()
	query.Set("q", fmt.Sprintf("track:%s artist:%s", queryTitle, queryArtist))
	query.Set("type", "track")
	query.Set("limit", "5")
	searchURL.RawQuery = query.Encode()

	req, err := c.newRequest(ctx, http.MethodGet, searchURL.String(), token, nil)
	if err != nil {
		return domain.Track{}, err
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return domain.Track{}, fmt.Errorf("spotify adapter: search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return domain.Track{}, fmt.Errorf("spotify adapter: search status %d: %w", resp.StatusCode, domain.ErrMissingCredential)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.Track{}, fmt.Errorf("spotify adapter: search status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Track{}, fmt.Errorf("spotify adapter: search decode error: %w", err)
	}

	bestScore := 0.0
	bestIndex := -1
	for i, candidate := range body.Tracks.Items {
		score, ok := trackMatchScore(title, artist, candidate)
		c.logger.Debug("search candidate", "artist", joinArtistNames(candidate), "title", candidate.Name, "score", score)
		if ok && score > bestScore {
			bestScore = score
			bestIndex = i
		}
	}

	if bestIndex == -1 {
		return domain.Track{}, fmt.Errorf("spotify adapter: %w", &ports.NoConfidentMatchError{Title: title, Artist: artist})
	}

	return mapTrackToDomain(body.Tracks.Items[bestIndex]), nil
}

// mapTrackToDomain flattens a raw Spotify track into the domain shape.
func mapTrackToDomain(st spotifyTrack) domain.Track {
	names := make([]string, 0, len(st.Artists))
	for _, a := range st.Artists {
		names = append(names, a.Name)
	}

	albumArt := ""
	if len(st.Album.Images) > 0 {
		albumArt = st.Album.Images[0].URL
	}

	return domain.Track{
		ID:       st.ID,
		Name:     st.Name,
		Artist:   strings.Join(names, ", "),
		URI:      st.URI,
		AlbumArt: albumArt,
	}
}
