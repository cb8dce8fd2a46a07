package shoot

import (
	"fmt"
	"strings"

	"studio/internal/domain"
)

// MasterBasePrompt is the camera/quality boilerplate prefixed to every
// composed shoot prompt.
const MasterBasePrompt = "Professional e-commerce fashion photography, wide shot, rule of thirds composition. " +
	"Framing: Model is centered with visible headroom above and floor space below. " +
	"Anatomy: Anatomically correct proportions, natural human height, realistic body structure. " +
	"Camera: Shot on Phase One XF IQ4, 100MP, 50mm lens (eye-level angle), f/8 aperture. " +
	"Quality: 4k native resolution, hyper-realistic, uncompressed, sharp details. " +
	"Cloth Physics: Clothing must drape naturally over the body, respecting gravity and fabric weight. Avoid rigid or floating textures. Realistic seam interaction with the pose."

// NegativePrompt lists artefacts every composed prompt excludes.
const NegativePrompt = "elongated body, stretched torso, long neck, unnatural height, distorted proportions, alien anatomy, " +
	"cinematic lighting, dramatic shadows, artistic blur, bokeh, messy background, illustration, painting, " +
	"3d render, low contrast, grain, noise, watermark, text."

// LocationOverrideDirective makes an attached location photo take precedence
// over the style preset's baked-in environment.
const LocationOverrideDirective = "IGNORE STYLE ENVIRONMENT. USE LOCATION IMAGE BACKGROUND."

// ComposeRequest carries everything needed to build one shot's prompt.
// AttachedRoles must list the roles in the same order the reference images are
// sent to the generation call; the visual-mapping numbering depends on it.
type ComposeRequest struct {
	Subject          string
	Style            domain.StylePreset
	AspectRatio      domain.AspectRatio
	LocationOverride bool
	AttachedRoles    []domain.ReferenceRole
}

// mappingOrder is the fixed precedence the visual-mapping section follows.
// The legacy single model photo stands in for the body reference.
var mappingOrder = []domain.ReferenceRole{
	domain.RoleModelFace,
	domain.RoleModelBody,
	domain.RoleModel,
	domain.RoleApparel,
	domain.RoleLocation,
}

// Compose builds the final prompt string for one shot. Pure: no network or
// storage side effects, output never mutated.
func Compose(req ComposeRequest) string {
	styleText := req.Style.PromptFragment
	if req.LocationOverride {
		styleText += " " + LocationOverrideDirective
	}

	var b strings.Builder
	fmt.Fprintf(&b, "STRICT INSTRUCTION: %s Aspect Ratio: %s. Subject: %s. Style Guide: %s Exclude: %s",
		MasterBasePrompt, req.AspectRatio, strings.TrimSpace(req.Subject), styleText, NegativePrompt)

	if len(req.AttachedRoles) > 0 {
		writeVisualMapping(&b, req.AttachedRoles)
		b.WriteString("\n\nFINAL INSTRUCTION: NATURAL CONSISTENCY ALL THE TIME.")
		b.WriteString("\n1. The Reference Face MUST match the Output Face.")
		b.WriteString("\n2. The Reference Apparel MUST match the Output Apparel.")
		b.WriteString("\n3. Lighting must be coherent across Model, Clothes, and Background.")
	}

	return b.String()
}

// writeVisualMapping numbers each attached reference image sequentially from 1
// and states its role-specific fidelity constraints. Numbering is strictly
// positional and contiguous: "Image 2" in the text is always the second image
// in the payload.
func writeVisualMapping(b *strings.Builder, attached []domain.ReferenceRole) {
	present := make(map[domain.ReferenceRole]bool, len(attached))
	for _, role := range attached {
		present[role] = true
	}

	b.WriteString("\n\nVISUAL MAPPING:")
	n := 1
	for _, role := range mappingOrder {
		if !present[role] {
			continue
		}
		switch role {
		case domain.RoleModelFace:
			fmt.Fprintf(b, "\n- Image %d: MODEL FACE REF. PRIORITY: CRITICAL IDENTITY PRESERVATION. The output face must be indistinguishable from this reference. strict Carbon-Copy. Do NOT 'beautify', 'optimize', or 'average' the features. Maintain exact eye shape, nose structure, and facial landmarks.", n)
		case domain.RoleModelBody, domain.RoleModel:
			fmt.Fprintf(b, "\n- Image %d: MODEL BODY REF. Use this for body proportions and pose. Ensure natural anatomical connection to the head.", n)
		case domain.RoleApparel:
			fmt.Fprintf(b, "\n- Image %d: APPAREL REF. PRIORITY: TEXTURE & CUT FIDELITY. However, the FIT must be realistic. The fabric should fold, crease, and hang according to the model's pose and gravity. Do not make it look like a sticker. It must wrap around the 3D form.", n)
		case domain.RoleLocation:
			fmt.Fprintf(b, "\n- Image %d: LOCATION REF. Use this background. Integrate the subject with matching lighting and shadows.", n)
		}
		n++
	}
}
