package config

import (
	"path/filepath"

	"github.com/danieljhkim/projinit/internal/project"
)

// Template directory naming under the templates root.
const (
	baseTemplatesDir = "templates"
	apiTemplatesFmt  = "templates-api-"
	templatesPrefix  = "templates-"
	frontendSuffix   = "-frontend"
	envSourceName    = ".env"
)

// Paths locates the template roots and the base env source.
//
// Layout under Templates:
//
//	templates/                      shared base layer
//	templates-api-<variant>/        variant layer
//	templates-<auth>-<variant>/     auth API overlay
//	templates-<auth>-frontend/      auth frontend overlay
//	.env                            base configuration source
type Paths struct {
	// Templates is the directory holding every template root.
	Templates string

	// EnvSource is the base KEY=VALUE document.
	EnvSource string
}

// NewPaths returns the layout rooted at templates. An empty envSource
// selects <templates>/.env.
func NewPaths(templates, envSource string) Paths {
	if envSource == "" {
		envSource = filepath.Join(templates, envSourceName)
	}
	return Paths{Templates: templates, EnvSource: envSource}
}

// BaseTemplates returns the shared base layer.
func (p Paths) BaseTemplates() string {
	return filepath.Join(p.Templates, baseTemplatesDir)
}

// APITemplates returns the variant-specific layer.
func (p Paths) APITemplates(v project.Variant) string {
	return filepath.Join(p.Templates, apiTemplatesFmt+string(v))
}

// AuthAPITemplates returns the API overlay of an auth mode for a variant.
func (p Paths) AuthAPITemplates(m project.AuthMode, v project.Variant) string {
	return filepath.Join(p.Templates, templatesPrefix+string(m)+"-"+string(v))
}

// AuthFrontendTemplates returns the frontend overlay of an auth mode.
func (p Paths) AuthFrontendTemplates(m project.AuthMode) string {
	return filepath.Join(p.Templates, templatesPrefix+string(m)+frontendSuffix)
}
