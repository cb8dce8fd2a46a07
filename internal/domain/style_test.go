package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestResolveStyleKnownIDs(t *testing.T) {
	for _, id := range []StyleID{StyleMinimalist, StyleUrban, StyleLuxury, StylePop} {
		preset, err := ResolveStyle(id)
		if err != nil {
			t.Fatalf("ResolveStyle(%q) returned error: %v", id, err)
		}
		if preset.ID != id {
			t.Fatalf("preset ID = %q, want %q", preset.ID, id)
		}
		if preset.PromptFragment == "" {
			t.Fatalf("preset %q has empty prompt fragment", id)
		}
		for _, section := range []string{"Environment:", "Lighting:", "Pose:"} {
			if !strings.Contains(preset.PromptFragment, section) {
				t.Fatalf("preset %q fragment missing %q section", id, section)
			}
		}
	}
}

func TestResolveStyleUnknownID(t *testing.T) {
	_, err := ResolveStyle("vaporwave")
	if !errors.Is(err, ErrUnknownStyle) {
		t.Fatalf("ResolveStyle error = %v, want ErrUnknownStyle", err)
	}
}

func TestStylesStableOrder(t *testing.T) {
	presets := Styles()
	if len(presets) != 4 {
		t.Fatalf("Styles() returned %d presets, want 4", len(presets))
	}
	want := []StyleID{StyleMinimalist, StyleUrban, StyleLuxury, StylePop}
	for i, preset := range presets {
		if preset.ID != want[i] {
			t.Fatalf("Styles()[%d] = %q, want %q", i, preset.ID, want[i])
		}
	}
}
