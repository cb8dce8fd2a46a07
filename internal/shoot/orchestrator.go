package shoot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"studio/internal/domain"
	"studio/internal/imaging"
	"studio/internal/providers/image"
)

// ShootRequest is one generation session: the planned shots plus the shared
// references and settings applied to every shot.
type ShootRequest struct {
	Shots            []domain.ShotBrief
	References       domain.ReferenceSet
	Style            domain.StylePreset
	AspectRatio      domain.AspectRatio
	LocationOverride bool
}

// ShotResult reports one shot's outcome. Exactly one of Artifact and Err is
// set.
type ShotResult struct {
	Shot     domain.ShotBrief
	Artifact *domain.GeneratedArtifact
	Err      error
}

// Orchestrator runs the per-shot generation loop. Shots are independent units
// of work: one shot's failure never blocks or corrupts its siblings.
type Orchestrator struct {
	images      image.Client
	concurrency int
	logger      zerolog.Logger
}

func NewOrchestrator(images image.Client, concurrency int, logger zerolog.Logger) *Orchestrator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Orchestrator{images: images, concurrency: concurrency, logger: logger}
}

// GenerateShots generates every shot of the request and returns results in
// shot-index order. It returns an error only for configuration mistakes
// (here: a missing apparel reference, which the main shoot prompt mandates);
// per-shot failures are reported inside the result slice.
func (o *Orchestrator) GenerateShots(ctx context.Context, req ShootRequest) ([]ShotResult, error) {
	if _, ok := req.References[domain.RoleApparel]; !ok {
		return nil, fmt.Errorf("apparel reference: %w", domain.ErrMissingReference)
	}

	payload := req.References.ShootPayload()
	roles := domain.Roles(payload)

	results := make([]ShotResult, len(req.Shots))
	g := new(errgroup.Group)
	g.SetLimit(o.concurrency)
	for i, shot := range req.Shots {
		i, shot := i, shot
		g.Go(func() error {
			results[i] = o.generateShot(ctx, shot, payload, roles, req)
			return nil
		})
	}
	_ = g.Wait()
	return results, nil
}

func (o *Orchestrator) generateShot(ctx context.Context, shot domain.ShotBrief, payload []domain.RoleImage, roles []domain.ReferenceRole, req ShootRequest) ShotResult {
	result := ShotResult{Shot: shot}
	if strings.TrimSpace(shot.Description) == "" {
		result.Err = &domain.ShotError{Index: shot.Index, Err: domain.ErrEmptyBrief}
		return result
	}

	prompt := Compose(ComposeRequest{
		Subject:          shot.Description,
		Style:            req.Style,
		AspectRatio:      req.AspectRatio,
		LocationOverride: req.LocationOverride,
		AttachedRoles:    roles,
	})

	parts, err := o.images.Generate(ctx, prompt, payload)
	if err != nil {
		result.Err = &domain.ShotError{Index: shot.Index, Err: err}
		return result
	}

	artifact, err := extractArtifact(parts, prompt)
	if err != nil {
		o.logger.Warn().Err(err).Int("shot", shot.Index).Msg("shoot: no usable image for shot")
		result.Err = &domain.ShotError{Index: shot.Index, Err: err}
		return result
	}
	result.Artifact = artifact
	return result
}

// EditImage runs a single edit-style generation (remix or accessory
// insertion) against an existing image plus optional extra references.
func (o *Orchestrator) EditImage(ctx context.Context, prompt string, refs []domain.RoleImage) (*domain.GeneratedArtifact, error) {
	parts, err := o.images.Generate(ctx, prompt, refs)
	if err != nil {
		return nil, err
	}
	return extractArtifact(parts, prompt)
}

// extractArtifact scans response parts for the first inline image and
// normalizes it to PNG. A text part carrying a URL means the provider
// returned a link instead of image bytes; that is a distinct soft failure.
func extractArtifact(parts []image.Part, prompt string) (*domain.GeneratedArtifact, error) {
	for _, part := range parts {
		if !part.IsImage() {
			continue
		}
		raw, err := imaging.DecodePayload(part.Data)
		if err != nil {
			return nil, err
		}
		data, err := imaging.ToPNG(raw)
		if err != nil {
			return nil, err
		}
		return &domain.GeneratedArtifact{
			Prompt:    prompt,
			Image:     domain.Image{MIME: "image/png", Data: data},
			CreatedAt: time.Now().UTC(),
		}, nil
	}
	for _, part := range parts {
		if part.Text != "" && strings.Contains(part.Text, "http") {
			return nil, fmt.Errorf("%w: %s", domain.ErrLinkReturned, strings.TrimSpace(part.Text))
		}
	}
	return nil, domain.ErrNoImageInReply
}
