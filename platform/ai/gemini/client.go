// Package gemini provides a text generation client backed by Google Gemini.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Client wraps the genai SDK for plain prompt-in, text-out generation.
type Client struct {
	client *genai.Client
	model  string
}

// Config configures the Gemini client.
type Config struct {
	APIKey string
	Model  string
}

// NewClient creates a new Gemini generation client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// Generate runs the model on a single user prompt with an optional system
// instruction and returns the generated text.
func (c *Client) Generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{}
	if systemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		}
	}
	temp := float32(0.4)
	config.Temperature = &temp

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", fmt.Errorf("gemini returned nil result")
	}

	return result.Text(), nil
}
