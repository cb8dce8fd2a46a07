package text

import (
	"context"

	"studio/internal/domain"
	"studio/internal/providers/genai"
)

// Client generates structured text (JSON) from a system instruction, user
// text, and an optional moodboard image.
type Client interface {
	Generate(ctx context.Context, system, user string, moodboard *domain.Image) (string, error)
}

// GeminiPlannerClient adapts the Gemini client to the text Client contract.
type GeminiPlannerClient struct {
	client *genai.Client
}

func NewGeminiPlannerClient(client *genai.Client) *GeminiPlannerClient {
	return &GeminiPlannerClient{client: client}
}

func (g *GeminiPlannerClient) Generate(ctx context.Context, system, user string, moodboard *domain.Image) (string, error) {
	var blob *genai.Blob
	if moodboard != nil && len(moodboard.Data) > 0 {
		blob = &genai.Blob{MIME: moodboard.MIME, Data: moodboard.Data}
	}
	return g.client.GenerateJSON(ctx, system, user, blob)
}

var _ Client = (*GeminiPlannerClient)(nil)
