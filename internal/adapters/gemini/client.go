// Package gemini adapts the Gemini generation service to the vibe
// generator port. It sends the vibe narrative built from quiz answers and
// parses the structured JSON response into a domain draft.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
)

const defaultModel = "gemini-2.5-flash"

const systemInstruction = "You are Fabergé, an elite music curator. " +
	"Analyze vibe paragraphs and return ONLY valid JSON matching the response schema."

// Client implements the vibe generator port on top of the Gemini SDK.
type Client struct {
	client     *genai.Client
	model      string
	trackCount int
}

var _ ports.VibeGenerator = (*Client)(nil)

// Config holds the Gemini connection settings.
type Config struct {
	APIKey     string
	Model      string
	TrackCount int
}

// NewClient constructs a Gemini-backed generator.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	trackCount := cfg.TrackCount
	if trackCount < 1 {
		trackCount = 15
	}

	return &Client{client: client, model: model, trackCount: trackCount}, nil
}

// GenerateVibe asks the model for a playlist draft matching the answers.
func (c *Client) GenerateVibe(ctx context.Context, answers map[string]string, language string) (domain.VibeDraft, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		ResponseMIMEType: "application/json",
		ResponseSchema:   draftSchema(),
	}

	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: buildPrompt(answers, language, c.trackCount)}}},
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return domain.VibeDraft{}, fmt.Errorf("gemini: generate: %w", err)
	}

	raw := strings.TrimSpace(result.Text())
	if raw == "" {
		return domain.VibeDraft{}, fmt.Errorf("gemini: empty response")
	}

	var draft domain.VibeDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return domain.VibeDraft{}, fmt.Errorf("gemini: decode draft: %w", err)
	}
	if len(draft.Suggestions) == 0 {
		return domain.VibeDraft{}, fmt.Errorf("gemini: draft has no tracks")
	}

	return draft, nil
}

func draftSchema() *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"summary", "vibe_stats", "tracks"},
		Properties: map[string]*genai.Schema{
			"summary": {
				Type:        genai.TypeString,
				Description: "A one-sentence poetic summary of the vibe.",
			},
			"vibe_stats": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type:     genai.TypeObject,
					Required: []string{"name", "value"},
					Properties: map[string]*genai.Schema{
						"name":  {Type: genai.TypeString},
						"value": {Type: genai.TypeNumber},
					},
				},
			},
			"tracks": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type:     genai.TypeObject,
					Required: []string{"artist", "track"},
					Properties: map[string]*genai.Schema{
						"artist": {Type: genai.TypeString},
						"track":  {Type: genai.TypeString},
					},
				},
			},
		},
	}
}
