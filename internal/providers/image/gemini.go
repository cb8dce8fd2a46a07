package image

import (
	"context"

	"studio/internal/domain"
	"studio/internal/providers/genai"
)

// Part is one element of an image-generation response: inline image bytes or
// plain text. The generation API is unreliable and may return either, both,
// or neither.
type Part struct {
	Text string
	MIME string
	Data []byte
}

// IsImage reports whether the part carries inline image bytes.
func (p Part) IsImage() bool {
	return len(p.Data) > 0
}

// Client generates images from a prompt plus ordered reference images.
// Implementations must preserve the reference order on the wire: prompt text
// numbering the images depends on it.
type Client interface {
	Generate(ctx context.Context, prompt string, refs []domain.RoleImage) ([]Part, error)
}

// GeminiGenerator adapts the Gemini client to the image Client contract.
type GeminiGenerator struct {
	client *genai.Client
}

func NewGeminiGenerator(client *genai.Client) *GeminiGenerator {
	return &GeminiGenerator{client: client}
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, refs []domain.RoleImage) ([]Part, error) {
	blobs := make([]genai.Blob, len(refs))
	for i, ref := range refs {
		blobs[i] = genai.Blob{MIME: ref.Image.MIME, Data: ref.Image.Data}
	}
	parts, err := g.client.GenerateImage(ctx, prompt, blobs)
	if err != nil {
		return nil, err
	}
	out := make([]Part, len(parts))
	for i, part := range parts {
		out[i] = Part{Text: part.Text, MIME: part.MIME, Data: part.Data}
	}
	return out, nil
}

var _ Client = (*GeminiGenerator)(nil)
