package triptic

import "context"

// Renderer is the narrow interface to the external image-generation
// collaborator. The core has no knowledge of API keys, vendor response
// shapes, or the semantic content of prompts; it only exchanges opaque bytes
// and a suggested file extension.
type Renderer interface {
	// Generate produces image bytes from a prompt.
	Generate(ctx context.Context, prompt string) (data []byte, ext string, err error)

	// Edit produces image bytes from a prompt applied to a base image.
	Edit(ctx context.Context, prompt string, base []byte) (data []byte, ext string, err error)

	// Flip mirrors an image horizontally.
	Flip(ctx context.Context, base []byte) (data []byte, ext string, err error)
}
