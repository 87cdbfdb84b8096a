package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
)

// Generate handles POST /runs/{id}/generate. Serves the run's cache or
// stored history when available; otherwise requests a fresh generation.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Generate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, result)
}

// Regenerate handles POST /runs/{id}/regenerate. Always requests a fresh
// generation, never a cache or history replay.
func (h *Handler) Regenerate(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Regenerate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, result)
}

type lastVibeResponse struct {
	Vibe        domain.VibeResult `json:"vibe"`
	SearchCount int               `json:"search_count"`
}

// LastVibe handles GET /last-vibe?email=. 404 when the user has none.
func (h *Handler) LastVibe(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	result, count, err := h.svc.LastVibe(r.Context(), email)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, lastVibeResponse{Vibe: result, SearchCount: count})
}

type exportRequest struct {
	Name string `json:"name"`
}

// Export handles POST /runs/{id}/export. The playlist name may be edited
// per attempt; a blank name falls back to the default.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	ref, err := h.svc.Export(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, ref)
}
