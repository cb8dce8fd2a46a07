package domain

import "fmt"

// ShotBrief is one planned camera setup within a campaign. Briefs are
// proposals: callers may edit the list between planning and generation.
type ShotBrief struct {
	Index       int    `json:"index"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description"`
}

// PlanSource records how a shot plan was produced.
type PlanSource string

const (
	// PlanSourceStructured means the brief carried explicit "Shot N" markers.
	PlanSourceStructured PlanSource = "structured"
	// PlanSourceModel means the plan came from the text-generation model.
	PlanSourceModel PlanSource = "model"
	// PlanSourceFallback means the deterministic heuristic plan was used.
	PlanSourceFallback PlanSource = "fallback"
)

// ShotPlan is the ordered list of shots proposed for a campaign.
type ShotPlan struct {
	Shots  []ShotBrief `json:"shots"`
	Source PlanSource  `json:"source"`
}

// Degraded reports whether planning fell back to the heuristic list, so the
// caller can tell the user the plan is not model-assisted.
func (p ShotPlan) Degraded() bool {
	return p.Source == PlanSourceFallback
}

// AspectRatio is the output framing requested from the image model.
type AspectRatio string

const (
	AspectSquare    AspectRatio = "1:1"
	AspectLandscape AspectRatio = "16:9"
	AspectPortrait  AspectRatio = "9:16"
)

// ParseAspectRatio validates a user-supplied ratio, defaulting to square.
func ParseAspectRatio(s string) (AspectRatio, error) {
	switch AspectRatio(s) {
	case AspectSquare, AspectLandscape, AspectPortrait:
		return AspectRatio(s), nil
	case "":
		return AspectSquare, nil
	}
	return "", fmt.Errorf("aspect ratio must be one of 1:1, 16:9, 9:16")
}
