package shoot

import "fmt"

// RemixPrompt builds the instruction for a localized remix of an existing
// generated image: keep pose, composition, and lighting unless the edit says
// otherwise.
func RemixPrompt(baseDescription, editInstruction string) string {
	return fmt.Sprintf(
		"STRICT INSTRUCTION: Image Editing / Remix. "+
			"Base Context: %s. "+
			"User Edit Request: %s. "+
			"Constraints: 1. KEEP the original Pose, Composition, and Lighting structure unless explicitly told to change it. "+
			"2. Apply the user's edit naturally into the scene. "+
			"3. Maintain high photorealism and 4k quality. "+
			"Output: A final composited e-commerce shot.",
		baseDescription, editInstruction)
}

// AccessoryPrompt builds the instruction for compositing a named accessory
// into an existing generated image without touching model identity or garment.
func AccessoryPrompt(baseDescription, accessoryDescription string) string {
	return fmt.Sprintf(
		"STRICT INSTRUCTION: Image Editing / Object Insertion. "+
			"Base Context: %s. "+
			"Task: Add the following accessory to the model: %s. "+
			"Requirements: 1. The accessory must look photorealistic and chemically bonded to the image (lighting, shadows, reflections). "+
			"2. DO NOT change the Model's face or the original dress. "+
			"3. High Fidelity Texture: Ensure gold looks like gold, leather looks like leather. "+
			"Output: A final composited e-commerce shot.",
		baseDescription, accessoryDescription)
}
