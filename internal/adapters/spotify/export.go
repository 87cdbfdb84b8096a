package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
)

// Spotify caps a single add-tracks call at 100 URIs.
const addTracksChunkSize = 100

// ExportPlaylist creates a playlist for the token's user and fills it with
// the given track URIs, in order. Each call creates a new playlist; the
// platform offers no idempotent variant.
func (c *Client) ExportPlaylist(ctx context.Context, token, name string, uris []string) (domain.PlaylistRef, error) {
	if len(uris) == 0 {
		return domain.PlaylistRef{}, domain.ErrNoTracks
	}

	profile, err := c.Profile(ctx, token)
	if err != nil {
		return domain.PlaylistRef{}, err
	}

	created, err := c.createPlaylist(ctx, token, profile.ID, name)
	if err != nil {
		return domain.PlaylistRef{}, err
	}

	for start := 0; start < len(uris); start += addTracksChunkSize {
		end := min(start+addTracksChunkSize, len(uris))
		if err := c.addTracks(ctx, token, created.ID, uris[start:end]); err != nil {
			return domain.PlaylistRef{}, err
		}
	}

	return domain.PlaylistRef{
		ID:   created.ID,
		Name: created.Name,
		URL:  created.ExternalURLs.Spotify,
	}, nil
}

// Profile fetches the token's user profile.
func (c *Client) Profile(ctx context.Context, token string) (domain.Profile, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.baseURL+"/me", token, nil)
	if err != nil {
		return domain.Profile{}, err
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("spotify adapter: profile request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return domain.Profile{}, fmt.Errorf("spotify adapter: profile status %d: %w", resp.StatusCode, domain.ErrMissingCredential)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.Profile{}, fmt.Errorf("spotify adapter: profile status %d", resp.StatusCode)
	}

	var profile spotifyProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return domain.Profile{}, fmt.Errorf("spotify adapter: profile decode error: %w", err)
	}

	return domain.Profile{
		ID:          profile.ID,
		Email:       profile.Email,
		DisplayName: profile.DisplayName,
	}, nil
}

func (c *Client) createPlaylist(ctx context.Context, token, userID, name string) (createPlaylistResponse, error) {
	payload, err := json.Marshal(createPlaylistRequest{
		Name:        name,
		Description: "Generated by VibeCheck",
		Public:      true,
	})
	if err != nil {
		return createPlaylistResponse{}, fmt.Errorf("spotify adapter: marshal playlist: %w", err)
	}

	url := fmt.Sprintf("%s/users/%s/playlists", c.baseURL, userID)
	req, err := c.newRequest(ctx, http.MethodPost, url, token, payload)
	if err != nil {
		return createPlaylistResponse{}, err
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return createPlaylistResponse{}, fmt.Errorf("spotify adapter: create playlist failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return createPlaylistResponse{}, fmt.Errorf("spotify adapter: create playlist status %d", resp.StatusCode)
	}

	var created createPlaylistResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return createPlaylistResponse{}, fmt.Errorf("spotify adapter: create playlist decode error: %w", err)
	}
	return created, nil
}

func (c *Client) addTracks(ctx context.Context, token, playlistID string, uris []string) error {
	payload, err := json.Marshal(addTracksRequest{URIs: uris})
	if err != nil {
		return fmt.Errorf("spotify adapter: marshal tracks: %w", err)
	}

	url := fmt.Sprintf("%s/playlists/%s/tracks", c.baseURL, playlistID)
	req, err := c.newRequest(ctx, http.MethodPost, url, token, payload)
	if err != nil {
		return err
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return fmt.Errorf("spotify adapter: add tracks failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("spotify adapter: add tracks status %d", resp.StatusCode)
	}
	return nil
}
