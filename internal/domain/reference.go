package domain

// ReferenceRole identifies what an uploaded reference image depicts.
type ReferenceRole string

const (
	RoleModelFace ReferenceRole = "model_face"
	RoleModelBody ReferenceRole = "model_body"
	// RoleModel is the legacy single model photo used before face and body
	// references were split. Split roles take precedence when both exist.
	RoleModel     ReferenceRole = "model"
	RoleApparel   ReferenceRole = "apparel"
	RoleLocation  ReferenceRole = "location"
	RoleAccessory ReferenceRole = "accessory"
	RoleMoodboard ReferenceRole = "moodboard"
)

// Image is a decoded in-memory reference image.
type Image struct {
	MIME string
	Data []byte
}

// RoleImage pairs a reference image with its role, preserving payload order.
type RoleImage struct {
	Role  ReferenceRole
	Image Image
}

// ReferenceSet maps roles to reference images for one generation call.
type ReferenceSet map[ReferenceRole]Image

// ShootPayload returns the ordered image payload for the main apparel shoot:
// model face then model body when present (falling back to the legacy single
// model photo only when neither split role exists), then apparel, then
// location. The order here must match the visual-mapping numbering in the
// composed prompt.
func (s ReferenceSet) ShootPayload() []RoleImage {
	var out []RoleImage
	face, hasFace := s[RoleModelFace]
	body, hasBody := s[RoleModelBody]
	if hasFace {
		out = append(out, RoleImage{Role: RoleModelFace, Image: face})
	}
	if hasBody {
		out = append(out, RoleImage{Role: RoleModelBody, Image: body})
	}
	if !hasFace && !hasBody {
		if legacy, ok := s[RoleModel]; ok {
			out = append(out, RoleImage{Role: RoleModel, Image: legacy})
		}
	}
	if apparel, ok := s[RoleApparel]; ok {
		out = append(out, RoleImage{Role: RoleApparel, Image: apparel})
	}
	if location, ok := s[RoleLocation]; ok {
		out = append(out, RoleImage{Role: RoleLocation, Image: location})
	}
	return out
}

// Roles extracts the role order from a payload.
func Roles(payload []RoleImage) []ReferenceRole {
	roles := make([]ReferenceRole, len(payload))
	for i, ri := range payload {
		roles[i] = ri.Role
	}
	return roles
}
