package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// TextGenerator produces free text from a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	Close() error
}

// ErrNotConfigured is returned when no provider credentials are set.
var ErrNotConfigured = errors.New("llm provider is not configured")

const DefaultGeminiModel = "gemini-2.5-flash"

type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiProvider(ctx context.Context, apiKey, modelName string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if modelName == "" {
		modelName = DefaultGeminiModel
	}

	model := client.GenerativeModel(modelName)
	// Reports are read by parents; keep the tone steady between runs.
	model.SetTemperature(0.4)
	model.SetMaxOutputTokens(512)
	model.SystemInstruction = genai.NewUserContent(genai.Text(
		"You write short, warm daily updates for parents of children in a licensed daycare. " +
			"Only use the facts you are given. Never invent incidents, medications or health details.",
	))

	return &GeminiProvider{client: client, model: model}, nil
}

func (g *GeminiProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("no response from LLM")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("no text content in response")
	}

	return strings.TrimSpace(sb.String()), nil
}

func (g *GeminiProvider) Close() error {
	return g.client.Close()
}
