package overlay

import "github.com/danieljhkim/projinit/internal/project"

// Layer is one ordered source tree contributing files to the destination.
type Layer struct {
	// Name identifies the layer in logs and reports (e.g. "base", "api").
	Name string

	// Source is the absolute path of the layer's root directory.
	Source string

	// Required makes a missing Source abort the composition.
	Required bool
}

// Sequence is an ordered list of layers; later layers win on path collisions.
type Sequence []Layer

// Names returns the layer names in order.
func (s Sequence) Names() []string {
	names := make([]string, 0, len(s))
	for _, l := range s {
		names = append(names, l.Name)
	}
	return names
}

// Layer names used by BuildSequence.
const (
	LayerBase         = "base"
	LayerAPI          = "api"
	LayerAuthAPI      = "auth-api"
	LayerAuthFrontend = "auth-frontend"
)

// Layout resolves template roots for the layers of a project.
type Layout interface {
	// BaseTemplates is the shared base layer.
	BaseTemplates() string

	// APITemplates is the variant-specific layer.
	APITemplates(v project.Variant) string

	// AuthAPITemplates is the auth API overlay for a mode and variant.
	AuthAPITemplates(m project.AuthMode, v project.Variant) string

	// AuthFrontendTemplates is the auth frontend overlay for a mode,
	// shared by all variants.
	AuthFrontendTemplates(m project.AuthMode) string
}

// BuildSequence returns the layers for a variant and auth mode:
// base, variant API, then the auth API and auth frontend overlays as a
// pair when an auth mode is selected. Every layer is required.
func BuildSequence(layout Layout, variant project.Variant, auth project.AuthMode) Sequence {
	seq := Sequence{
		{Name: LayerBase, Source: layout.BaseTemplates(), Required: true},
		{Name: LayerAPI, Source: layout.APITemplates(variant), Required: true},
	}
	if auth.Enabled() {
		seq = append(seq,
			Layer{Name: LayerAuthAPI, Source: layout.AuthAPITemplates(auth, variant), Required: true},
			Layer{Name: LayerAuthFrontend, Source: layout.AuthFrontendTemplates(auth), Required: true},
		)
	}
	return seq
}
