package llm

import (
	"context"
	"fmt"

	"github.com/Adityasingh-8858/warm-transfer/internal/domain"
	"google.golang.org/genai"
)

type GeminiClient struct {
	client    *genai.Client
	modelName string
}

// NewGeminiClient creates a SummaryClient backed by the Gemini API.
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// Summarize implements domain.SummaryClient.
func (g *GeminiClient) Summarize(ctx context.Context, callContext string) (string, error) {
	return g.generate(ctx, summarySystemPrompt, buildSummaryPrompt(callContext), domain.ErrSummaryUnavailable)
}

// Reply implements domain.SummaryClient. Used by the voice agent, so the
// output is tuned to be short enough to speak.
func (g *GeminiClient) Reply(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, replySystemPrompt, prompt, domain.ErrSummaryUnavailable)
}

func (g *GeminiClient) generate(ctx context.Context, system, user string, kind error) (string, error) {
	temp := float32(0.3)
	topP := float32(0.9)
	outputTokens := int32(512)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       &temp,
		TopP:              &topP,
		MaxOutputTokens:   outputTokens,
	}

	contents := []*genai.Content{
		genai.NewContentFromText(user, genai.RoleUser),
	}

	res, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("%w: gemini generate content: %v", kind, err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("%w: gemini returned empty text", kind)
	}

	return text, nil
}
