package domain

const DefaultLanguage = "en"

// Session carries the authenticated identity for one run. It is assembled
// once from the post-login redirect and is read-only afterwards.
type Session struct {
	Token     string `json:"token"`
	Email     string `json:"email,omitempty"`
	SpotifyID string `json:"spotify_id,omitempty"`
	Language  string `json:"language,omitempty"`
}

// NewSession normalizes the redirect parameters into a session. The token
// may still be absent here; operations that need it call RequireToken.
func NewSession(token, email, spotifyID, language string) Session {
	if language == "" {
		language = DefaultLanguage
	}
	return Session{Token: token, Email: email, SpotifyID: spotifyID, Language: language}
}

// RequireToken fails fast with ErrMissingCredential when the session has
// no access token. Every operation that reaches a remote collaborator
// checks this before building a request.
func (s Session) RequireToken() error {
	if s.Token == "" {
		return ErrMissingCredential
	}
	return nil
}

// HasIdentity reports whether the session carries a stable user identifier
// usable as a history key.
func (s Session) HasIdentity() bool {
	return s.Email != ""
}

// Profile is the platform account behind a token, fetched once at login.
type Profile struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}
