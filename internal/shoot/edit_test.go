package shoot

import (
	"strings"
	"testing"
)

func TestRemixPromptCarriesBaseContextAndEdit(t *testing.T) {
	prompt := RemixPrompt("red dress on beach", "make the sky stormy")
	if !strings.Contains(prompt, "Image Editing / Remix") {
		t.Fatalf("remix prompt missing mode marker: %q", prompt)
	}
	if !strings.Contains(prompt, "Base Context: red dress on beach.") {
		t.Fatalf("remix prompt missing base context: %q", prompt)
	}
	if !strings.Contains(prompt, "User Edit Request: make the sky stormy.") {
		t.Fatalf("remix prompt missing edit request: %q", prompt)
	}
	if !strings.Contains(prompt, "KEEP the original Pose, Composition, and Lighting") {
		t.Fatalf("remix prompt missing preservation constraint: %q", prompt)
	}
}

func TestAccessoryPromptProtectsFaceAndDress(t *testing.T) {
	prompt := AccessoryPrompt("red dress on beach", "gold watch")
	if !strings.Contains(prompt, "Image Editing / Object Insertion") {
		t.Fatalf("accessory prompt missing mode marker: %q", prompt)
	}
	if !strings.Contains(prompt, "Add the following accessory to the model: gold watch.") {
		t.Fatalf("accessory prompt missing accessory description: %q", prompt)
	}
	if !strings.Contains(prompt, "DO NOT change the Model's face or the original dress.") {
		t.Fatalf("accessory prompt missing identity constraint: %q", prompt)
	}
}
