package domain

import "testing"

func TestShootPayloadOrder(t *testing.T) {
	refs := ReferenceSet{
		RoleLocation:  {MIME: "image/png", Data: []byte{4}},
		RoleApparel:   {MIME: "image/png", Data: []byte{3}},
		RoleModelBody: {MIME: "image/png", Data: []byte{2}},
		RoleModelFace: {MIME: "image/png", Data: []byte{1}},
	}
	payload := refs.ShootPayload()
	want := []ReferenceRole{RoleModelFace, RoleModelBody, RoleApparel, RoleLocation}
	if len(payload) != len(want) {
		t.Fatalf("payload length = %d, want %d", len(payload), len(want))
	}
	for i, role := range want {
		if payload[i].Role != role {
			t.Fatalf("payload[%d].Role = %q, want %q", i, payload[i].Role, role)
		}
	}
}

func TestShootPayloadLegacyModelOnlyWithoutSplitRoles(t *testing.T) {
	refs := ReferenceSet{
		RoleModel:   {MIME: "image/png", Data: []byte{1}},
		RoleApparel: {MIME: "image/png", Data: []byte{2}},
	}
	payload := refs.ShootPayload()
	if len(payload) != 2 || payload[0].Role != RoleModel || payload[1].Role != RoleApparel {
		t.Fatalf("unexpected payload roles: %v", Roles(payload))
	}

	refs[RoleModelFace] = Image{MIME: "image/png", Data: []byte{3}}
	payload = refs.ShootPayload()
	for _, ri := range payload {
		if ri.Role == RoleModel {
			t.Fatal("legacy model photo included despite split face role")
		}
	}
}
