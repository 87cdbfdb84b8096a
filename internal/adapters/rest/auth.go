package rest

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

const stateTTL = 10 * time.Minute

// Login starts the external authorization flow. The frontend redirects the
// browser to the returned URL.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	state := uuid.New().String()

	h.stateMu.Lock()
	h.states[state] = time.Now().Add(stateTTL)
	h.stateMu.Unlock()

	h.respond(w, http.StatusOK, map[string]string{"auth_url": h.auth.AuthURL(state)})
}

// Callback completes the authorization flow: validates state, exchanges
// the code, fetches the profile, upserts the user, and bounces the browser
// back to the frontend with token and identity in the fragment-free query.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	if !h.claimState(r.URL.Query().Get("state")) {
		http.Error(w, "invalid state parameter", http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "authorization failed: missing code", http.StatusBadRequest)
		return
	}

	token, err := h.auth.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("token exchange failed", "err", err)
		http.Error(w, "token exchange failed", http.StatusBadGateway)
		return
	}

	// Best-effort identity: a profile failure still yields a usable
	// anonymous session, it just loses history.
	var email, spotifyID string
	if profile, err := h.profiles.Profile(r.Context(), token); err != nil {
		h.logger.Warn("profile fetch failed, continuing without identity", "err", err)
	} else {
		email, spotifyID = profile.Email, profile.ID
		if err := h.svc.SyncUser(r.Context(), email, spotifyID); err != nil {
			h.logger.Warn("user sync failed", "err", err)
		}
	}

	redirect := fmt.Sprintf("%s/quiz?token=%s&email=%s",
		h.frontendURL, url.QueryEscape(token), url.QueryEscape(email))
	http.Redirect(w, r, redirect, http.StatusFound)
}

// claimState consumes a pending login state exactly once, expiring stale
// entries as a side effect.
func (h *Handler) claimState(state string) bool {
	if state == "" {
		return false
	}

	h.stateMu.Lock()
	defer h.stateMu.Unlock()

	now := time.Now()
	for s, deadline := range h.states {
		if deadline.Before(now) {
			delete(h.states, s)
		}
	}

	deadline, ok := h.states[state]
	if !ok || deadline.Before(now) {
		return false
	}
	delete(h.states, state)
	return true
}
