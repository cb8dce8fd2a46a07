package shoot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"studio/internal/domain"
	"studio/internal/providers/text"
)

const (
	// minSegmentLength is the minimum raw length for a "Shot N" segment to
	// count as a usable shot description.
	minSegmentLength = 20
	maxShots         = 8
	defaultMinShots  = 3
)

var shotMarker = regexp.MustCompile(`(?i)shot\s*\d+`)

// Planner turns a free-text creative brief into an ordered shot list. The
// external text model is best-effort: any failure degrades to a deterministic
// plan instead of failing the session.
type Planner struct {
	text   text.Client
	caser  cases.Caser
	logger zerolog.Logger
}

func NewPlanner(client text.Client, logger zerolog.Logger) *Planner {
	return &Planner{
		text:   client,
		caser:  cases.Title(language.Und),
		logger: logger,
	}
}

// Plan produces at least minCount shots for the brief. A brief that already
// carries "Shot N" markers is split structurally; otherwise the text model is
// asked for a JSON shot list, falling back to a fixed 3-entry plan on any
// transport, parsing, or validation failure.
func (p *Planner) Plan(ctx context.Context, brief string, moodboard *domain.Image, minCount int) domain.ShotPlan {
	if minCount < 1 {
		minCount = defaultMinShots
	}

	if shots := splitStructuredBrief(brief); len(shots) >= 2 {
		return domain.ShotPlan{Shots: shots, Source: domain.PlanSourceStructured}
	}

	shots, err := p.planWithModel(ctx, brief, moodboard, minCount)
	if err != nil {
		p.logger.Warn().Err(err).Msg("planner: model plan unusable; using heuristic fallback")
		return domain.ShotPlan{Shots: p.fallbackShots(brief), Source: domain.PlanSourceFallback}
	}
	return domain.ShotPlan{Shots: shots, Source: domain.PlanSourceModel}
}

// splitStructuredBrief handles briefs that already enumerate shots with
// "Shot 1"/"Shot 2" markers. Segments are measured before cleaning so short
// descriptions such as "red dress on beach." still qualify.
func splitStructuredBrief(brief string) []domain.ShotBrief {
	if !shotMarker.MatchString(brief) {
		return nil
	}
	var shots []domain.ShotBrief
	for _, segment := range shotMarker.Split(brief, -1) {
		segment = strings.TrimSpace(segment)
		if len(segment) <= minSegmentLength {
			continue
		}
		desc := strings.TrimSpace(strings.TrimLeft(segment, ":.-"))
		shots = append(shots, domain.ShotBrief{Index: len(shots), Description: desc})
	}
	if len(shots) < 2 {
		return nil
	}
	return shots
}

const planSystemInstruction = `You are an art director planning a fashion photo shoot.
Decompose the creative brief into distinct camera setups.
Rules:
1. Produce at least %d shots. If the brief contains more than %d distinct ideas, produce one shot per idea, up to %d.
2. Vary camera angle and pose between shots.
3. Keep the same model and the same apparel across every shot.
4. Respond ONLY with a strict JSON array of objects: [{"title": string, "description": string}]. No prose, no markdown.`

type shotPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (p *Planner) planWithModel(ctx context.Context, brief string, moodboard *domain.Image, minCount int) ([]domain.ShotBrief, error) {
	if p.text == nil {
		return nil, errors.New("no text client configured")
	}
	system := fmt.Sprintf(planSystemInstruction, minCount, minCount, maxShots)
	raw, err := p.text.Generate(ctx, system, brief, moodboard)
	if err != nil {
		return nil, err
	}

	cleaned := extractJSONFragment(raw)
	if cleaned == "" {
		return nil, errors.New("empty model response")
	}
	var payload []shotPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("parse shot list: %w", err)
	}

	var shots []domain.ShotBrief
	for _, item := range payload {
		desc := strings.TrimSpace(item.Description)
		if desc == "" {
			continue
		}
		shots = append(shots, domain.ShotBrief{
			Index:       len(shots),
			Title:       strings.TrimSpace(item.Title),
			Description: desc,
		})
		if len(shots) == maxShots {
			break
		}
	}
	if len(shots) < minCount {
		return nil, fmt.Errorf("model returned %d usable shots, want at least %d", len(shots), minCount)
	}
	return shots, nil
}

// fallbackShots is the deterministic plan used when the model path fails: the
// brief itself, plus two fixed variations.
func (p *Planner) fallbackShots(brief string) []domain.ShotBrief {
	return []domain.ShotBrief{
		{Index: 0, Description: brief},
		{
			Index:       1,
			Title:       p.caser.String("dynamic variation"),
			Description: brief + " DYNAMIC VARIATION: side profile / walking motion / active stance",
		},
		{
			Index:       2,
			Title:       p.caser.String("detail shot"),
			Description: brief + " DETAIL SHOT: close-up / alternative angle / texture focus",
		},
	}
}

func extractJSONFragment(raw string) string {
	text := trimCodeFence(strings.TrimSpace(raw))
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "]}")
	if start >= 0 && end >= start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
