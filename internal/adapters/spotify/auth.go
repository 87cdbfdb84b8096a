package spotify

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// The core consumes the resulting token as an opaque string; the
// authorization-code dance lives entirely in this adapter.

var spotifyEndpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.spotify.com/authorize",
	TokenURL: "https://accounts.spotify.com/api/token",
}

var defaultScopes = []string{
	"playlist-modify-public",
	"user-top-read",
	"user-read-private",
	"user-read-email",
}

// Authenticator runs the Spotify authorization-code flow.
type Authenticator struct {
	config *oauth2.Config
}

// NewAuthenticator builds an authenticator for the registered application.
func NewAuthenticator(clientID, clientSecret, redirectURL string) *Authenticator {
	return &Authenticator{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       defaultScopes,
			Endpoint:     spotifyEndpoint,
		},
	}
}

// AuthURL returns the authorization redirect URL for the given CSRF state.
func (a *Authenticator) AuthURL(state string) string {
	return a.config.AuthCodeURL(state)
}

// Exchange trades the callback code for an access token.
func (a *Authenticator) Exchange(ctx context.Context, code string) (string, error) {
	token, err := a.config.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("spotify adapter: token exchange failed: %w", err)
	}
	return token.AccessToken, nil
}
