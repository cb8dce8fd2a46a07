package domain

import "fmt"

// StyleID enumerates the brand style presets.
type StyleID string

const (
	StyleMinimalist StyleID = "minimalist"
	StyleUrban      StyleID = "urban"
	StyleLuxury     StyleID = "luxury"
	StylePop        StyleID = "pop"
)

// StylePreset bundles the environment/lighting/pose creative direction that is
// reused across every shot of a campaign.
type StylePreset struct {
	ID             StyleID
	DisplayName    string
	PromptFragment string
}

var stylePresets = map[StyleID]StylePreset{
	StyleMinimalist: {
		ID:             StyleMinimalist,
		DisplayName:    "Minimalist / Zara (Clean)",
		PromptFragment: "Environment: Infinite white cyclorama background, clean studio floor. Lighting: Softbox studio lighting, even illumination, neutral white balance, no harsh shadows. Pose: Neutral standing pose, arms relaxed, looking at camera, bored expression.",
	},
	StyleUrban: {
		ID:             StyleUrban,
		DisplayName:    "Urban / Streetwear (Hype)",
		PromptFragment: "Environment: Concrete wall, outdoor city street daytime, blurred depth. Lighting: Natural sunlight, slight hard shadow, high contrast. Pose: Candid walking motion, looking away, dynamic angle, streetwear aesthetic.",
	},
	StyleLuxury: {
		ID:             StyleLuxury,
		DisplayName:    "Luxury / Editorial (Vogue)",
		PromptFragment: "Environment: Dark grey textured backdrop, moody studio atmosphere. Lighting: Single spotlight, rim lighting on silhouette, dramatic contrast, warm tones. Pose: Sharp angular high-fashion pose, intense gaze, confident, elegant.",
	},
	StylePop: {
		ID:             StylePop,
		DisplayName:    "Pop / Fast Fashion (Bright)",
		PromptFragment: "Environment: Solid bright pastel color background (pink or yellow). Lighting: High-key lighting, overexposed brightness, vibrant colors. Pose: Cheerful, smiling, playful movement, hand on hip, energetic.",
	},
}

// ResolveStyle looks up a preset by id. The set of ids is closed; an
// unrecognized id is a caller bug and fails with ErrUnknownStyle.
func ResolveStyle(id StyleID) (StylePreset, error) {
	preset, ok := stylePresets[id]
	if !ok {
		return StylePreset{}, fmt.Errorf("style %q: %w", id, ErrUnknownStyle)
	}
	return preset, nil
}

// Styles returns the presets in a stable display order.
func Styles() []StylePreset {
	order := []StyleID{StyleMinimalist, StyleUrban, StyleLuxury, StylePop}
	out := make([]StylePreset, 0, len(order))
	for _, id := range order {
		out = append(out, stylePresets[id])
	}
	return out
}
