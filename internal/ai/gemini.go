package ai

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Assistant generates feedback text for a code snippet.
type Assistant interface {
	Ask(ctx context.Context, code, prompt string) (string, error)
}

// Gemini is the Google Gemini-backed Assistant.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Ask wraps the user's prompt around the code block and returns the model's
// response text.
func (g *Gemini) Ask(ctx context.Context, code, prompt string) (string, error) {
	full := fmt.Sprintf("%s:\n\n```\n%s\n```", prompt, code)

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(full), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if result == nil {
		return "", errors.New("no response generated")
	}

	text, err := result.Text()
	if err != nil {
		return "", fmt.Errorf("extract response text: %w", err)
	}
	if text == "" {
		return "", errors.New("empty response generated")
	}
	return text, nil
}
