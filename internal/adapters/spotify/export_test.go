package spotify_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
)

func TestExportPlaylist(t *testing.T) {
	var addedURIs []string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/me":
			w.Write([]byte(`{ "id": "user-1", "email": "user@test.dev", "display_name": "Test User" }`))
		case "/users/user-1/playlists":
			var body struct {
				Name   string `json:"name"`
				Public bool   `json:"public"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("decode create payload: %v", err)
			}
			if body.Name != "My Mix" {
				t.Errorf("playlist name: got %q", body.Name)
			}
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{
				"id": "pl-1",
				"name": "My Mix",
				"external_urls": { "spotify": "https://open.spotify.test/playlist/pl-1" }
			}`))
		case "/playlists/pl-1/tracks":
			var body struct {
				URIs []string `json:"uris"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("decode tracks payload: %v", err)
			}
			addedURIs = append(addedURIs, body.URIs...)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{ "snapshot_id": "snap-1" }`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	uris := []string{"spotify:track:a", "spotify:track:b", "spotify:track:c"}

	ref, err := client.ExportPlaylist(context.Background(), "test-token", "My Mix", uris)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if ref.ID != "pl-1" || ref.Name != "My Mix" {
		t.Fatalf("unexpected ref: %+v", ref)
	}
	if ref.URL != "https://open.spotify.test/playlist/pl-1" {
		t.Fatalf("ref URL: got %q", ref.URL)
	}
	if len(addedURIs) != len(uris) {
		t.Fatalf("added %d uris, want %d", len(addedURIs), len(uris))
	}
	for i, uri := range uris {
		if addedURIs[i] != uri {
			t.Fatalf("uri %d: got %q, want %q", i, addedURIs[i], uri)
		}
	}
}

func TestExportPlaylistNoURIs(t *testing.T) {
	client := newTestClient("http://unused.test")
	if _, err := client.ExportPlaylist(context.Background(), "test-token", "My Mix", nil); !errors.Is(err, domain.ErrNoTracks) {
		t.Fatalf("expected ErrNoTracks, got %v", err)
	}
}

func TestExportPlaylistExpiredToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{ "error": { "status": 401, "message": "The access token expired" } }`))
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	_, err := client.ExportPlaylist(context.Background(), "stale", "My Mix", []string{"spotify:track:a"})
	if !errors.Is(err, domain.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}

func TestExportPlaylistCreateFails(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/me":
			w.Write([]byte(`{ "id": "user-1" }`))
		default:
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{ "error": { "status": 400, "message": "bad request" } }`))
		}
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	if _, err := client.ExportPlaylist(context.Background(), "test-token", "My Mix", []string{"spotify:track:a"}); err == nil {
		t.Fatal("expected error, got nil")
	}
}
