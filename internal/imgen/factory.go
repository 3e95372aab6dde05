package imgen

import (
	"fmt"

	"triptic/internal/config"
	"triptic/internal/triptic"
)

// NewRendererFromConfig creates a Renderer implementation based on the renderer config type.
func NewRendererFromConfig(cfg config.RendererConfig) (triptic.Renderer, error) {
	switch cfg.Type {
	case "stub", "":
		return NewStubRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown renderer type: %s", cfg.Type)
	}
}
