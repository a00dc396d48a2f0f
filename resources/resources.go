// Package resources embeds the route table, the default configuration, the
// page templates and the static shell served around the bundle.
package resources

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
)

//go:embed routes.yaml
var Routes []byte

//go:embed config.yaml
var Config []byte

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed web
var webFiles embed.FS

// Templates parses every page template. Each file defines one template named
// after the page plus shared partials.
func Templates() (*template.Template, error) {
	t, err := template.New("storefront").ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return t, nil
}

// Web returns the static shell (index.html).
func Web() fs.FS {
	sub, err := fs.Sub(webFiles, "web")
	if err != nil {
		panic(err)
	}
	return sub
}
