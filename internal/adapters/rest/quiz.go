package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
)

// Questions handles GET /questions.
func (h *Handler) Questions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.svc.Questions(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, questions)
}

type startRunRequest struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	Language string `json:"language"`
}

// StartRun handles POST /runs.
func (h *Handler) StartRun(w http.ResponseWriter, r *http.Request) {
	var req startRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session := domain.NewSession(req.Token, req.Email, "", req.Language)
	snapshot, err := h.svc.StartRun(r.Context(), session)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, snapshot)
}

// GetRun handles GET /runs/{id}.
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.svc.Run(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, snapshot)
}

// EndRun handles DELETE /runs/{id}.
func (h *Handler) EndRun(w http.ResponseWriter, r *http.Request) {
	h.svc.EndRun(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

type answerRequest struct {
	Value string `json:"value"`
}

// Answer handles POST /runs/{id}/answers. An invalid selection is not an
// error to the client: the machine stays put and the unchanged snapshot
// comes back.
func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	snapshot, err := h.svc.Answer(chi.URLParam(r, "id"), req.Value)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAnswer) {
			h.logger.Debug("rejected answer", "run", snapshot.RunID, "value", req.Value)
			h.respond(w, http.StatusOK, snapshot)
			return
		}
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, snapshot)
}
