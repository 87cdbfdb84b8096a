// Package config loads the application configuration from a TOML file
// with environment overrides for secrets.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config represents the application configuration.
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Generation  GenerationConfig  `toml:"generation"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	FrontendURL string `toml:"frontend_url"`
}

// CredentialsConfig contains service credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
	Gemini  GeminiConfig  `toml:"gemini"`
}

// SpotifyConfig contains the registered application's OAuth settings.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
}

// GeminiConfig contains the generation service settings.
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// DatabaseConfig contains history store settings.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// GenerationConfig tunes the generation pipeline.
type GenerationConfig struct {
	TrackCount     int `toml:"track_count"`
	ResolveWorkers int `toml:"resolve_workers"`
	QueueSize      int `toml:"queue_size"`
	Workers        int `toml:"workers"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        4040,
			FrontendURL: "http://localhost:3030",
		},
		Database: DatabaseConfig{Path: "vibecheck.db"},
		Generation: GenerationConfig{
			TrackCount:     15,
			ResolveWorkers: 5,
			QueueSize:      100,
			Workers:        2,
		},
	}
}

// Load reads the TOML file at path (when it exists), then applies
// environment overrides. Secrets always win from the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
			// fall through to env-only config
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// Validate checks that everything a running server needs is present.
func (c *Config) Validate() error {
	if c.Credentials.Spotify.ClientID == "" || c.Credentials.Spotify.ClientSecret == "" {
		return errors.New("config: spotify client credentials are required")
	}
	if c.Credentials.Spotify.RedirectURI == "" {
		return errors.New("config: spotify redirect URI is required")
	}
	if c.Credentials.Gemini.APIKey == "" {
		return errors.New("config: gemini API key is required")
	}
	return nil
}

// Addr returns the host:port the server binds.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func applyEnv(cfg *Config) {
	setIfPresent := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setIfPresent(&cfg.Credentials.Spotify.ClientID, "SPOTIFY_CLIENT_ID")
	setIfPresent(&cfg.Credentials.Spotify.ClientSecret, "SPOTIFY_CLIENT_SECRET")
	setIfPresent(&cfg.Credentials.Spotify.RedirectURI, "SPOTIFY_REDIRECT_URI")
	setIfPresent(&cfg.Credentials.Gemini.APIKey, "GEMINI_API_KEY")
	setIfPresent(&cfg.Credentials.Gemini.Model, "GEMINI_MODEL")
	setIfPresent(&cfg.Database.Path, "VIBECHECK_DB_PATH")
	setIfPresent(&cfg.Server.FrontendURL, "VIBECHECK_FRONTEND_URL")
}
