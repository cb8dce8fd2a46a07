package shoot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"studio/internal/domain"
)

type fakeTextClient struct {
	generate func(ctx context.Context, system, user string, moodboard *domain.Image) (string, error)
}

func (f fakeTextClient) Generate(ctx context.Context, system, user string, moodboard *domain.Image) (string, error) {
	if f.generate != nil {
		return f.generate(ctx, system, user, moodboard)
	}
	return "", errors.New("generate not implemented")
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func TestPlanStructuredBriefSkipsModel(t *testing.T) {
	planner := NewPlanner(fakeTextClient{
		generate: func(context.Context, string, string, *domain.Image) (string, error) {
			t.Fatal("model must not be called for a structured brief")
			return "", nil
		},
	}, testLogger())

	brief := "Shot 1: red dress on beach. Shot 2: red dress at night under neon lights."
	plan := planner.Plan(context.Background(), brief, nil, 3)

	if plan.Source != domain.PlanSourceStructured {
		t.Fatalf("plan source = %q, want structured", plan.Source)
	}
	if len(plan.Shots) != 2 {
		t.Fatalf("plan has %d shots, want 2", len(plan.Shots))
	}
	if !strings.Contains(plan.Shots[0].Description, "red dress on beach") {
		t.Fatalf("first shot = %q, want beach description", plan.Shots[0].Description)
	}
	if !strings.Contains(plan.Shots[1].Description, "red dress at night") {
		t.Fatalf("second shot = %q, want night description", plan.Shots[1].Description)
	}
	if plan.Degraded() {
		t.Fatal("structured plan reported as degraded")
	}
}

func TestPlanShortSegmentsDoNotTriggerStructuredPath(t *testing.T) {
	planner := NewPlanner(fakeTextClient{
		generate: func(context.Context, string, string, *domain.Image) (string, error) {
			return "", errors.New("unavailable")
		},
	}, testLogger())

	// Two markers but only one segment above the length threshold.
	plan := planner.Plan(context.Background(), "Shot 1: hat. Shot 2: the same red dress photographed at golden hour.", nil, 3)
	if plan.Source != domain.PlanSourceFallback {
		t.Fatalf("plan source = %q, want fallback", plan.Source)
	}
}

func TestPlanModelPathParsesFencedJSON(t *testing.T) {
	response := "```json\n[\n" +
		`{"title": "Hero", "description": "full body, model centered, storefront backdrop"},` + "\n" +
		`{"title": "Motion", "description": "walking toward camera, low angle"},` + "\n" +
		`{"title": "Detail", "description": "close-up of fabric texture at the collar"}` + "\n]\n```"

	var capturedSystem string
	planner := NewPlanner(fakeTextClient{
		generate: func(_ context.Context, system, user string, _ *domain.Image) (string, error) {
			capturedSystem = system
			if user != "evening collection launch" {
				t.Fatalf("brief forwarded as %q", user)
			}
			return response, nil
		},
	}, testLogger())

	plan := planner.Plan(context.Background(), "evening collection launch", nil, 3)
	if plan.Source != domain.PlanSourceModel {
		t.Fatalf("plan source = %q, want model", plan.Source)
	}
	if len(plan.Shots) != 3 {
		t.Fatalf("plan has %d shots, want 3", len(plan.Shots))
	}
	if plan.Shots[1].Title != "Motion" {
		t.Fatalf("second shot title = %q, want Motion", plan.Shots[1].Title)
	}
	for i, shot := range plan.Shots {
		if shot.Index != i {
			t.Fatalf("shot %d has index %d", i, shot.Index)
		}
	}
	if !strings.Contains(capturedSystem, "JSON array") {
		t.Fatalf("system instruction missing JSON contract: %q", capturedSystem)
	}
}

func TestPlanModelFailureFallsBackDeterministically(t *testing.T) {
	planner := NewPlanner(fakeTextClient{
		generate: func(context.Context, string, string, *domain.Image) (string, error) {
			return "", errors.New("quota exhausted")
		},
	}, testLogger())

	brief := "red dress on beach"
	plan := planner.Plan(context.Background(), brief, nil, 3)

	if plan.Source != domain.PlanSourceFallback {
		t.Fatalf("plan source = %q, want fallback", plan.Source)
	}
	if !plan.Degraded() {
		t.Fatal("fallback plan not reported as degraded")
	}
	if len(plan.Shots) != 3 {
		t.Fatalf("fallback plan has %d shots, want 3", len(plan.Shots))
	}
	if plan.Shots[0].Description != brief {
		t.Fatalf("first fallback shot = %q, want the brief verbatim", plan.Shots[0].Description)
	}
	if !strings.Contains(plan.Shots[1].Description, "DYNAMIC VARIATION") {
		t.Fatalf("second fallback shot = %q, want dynamic variation", plan.Shots[1].Description)
	}
	if !strings.Contains(plan.Shots[2].Description, "DETAIL SHOT") {
		t.Fatalf("third fallback shot = %q, want detail shot", plan.Shots[2].Description)
	}
}

func TestPlanRejectsSparseModelOutput(t *testing.T) {
	planner := NewPlanner(fakeTextClient{
		generate: func(context.Context, string, string, *domain.Image) (string, error) {
			return `[{"title": "Only", "description": "one single setup"}, {"title": "Empty", "description": "  "}]`, nil
		},
	}, testLogger())

	plan := planner.Plan(context.Background(), "spring lookbook", nil, 3)
	if plan.Source != domain.PlanSourceFallback {
		t.Fatalf("plan source = %q, want fallback for sparse output", plan.Source)
	}
}

func TestPlanCapsModelOutput(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < 12; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(`{"title": "S", "description": "a distinct camera setup for the same outfit"}`)
	}
	sb.WriteString("]")

	planner := NewPlanner(fakeTextClient{
		generate: func(context.Context, string, string, *domain.Image) (string, error) {
			return sb.String(), nil
		},
	}, testLogger())

	plan := planner.Plan(context.Background(), "festival capsule drop", nil, 3)
	if len(plan.Shots) != maxShots {
		t.Fatalf("plan has %d shots, want cap of %d", len(plan.Shots), maxShots)
	}
}
