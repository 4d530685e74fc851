// Package assets holds the embedded templates for the image card and the
// public share page.
package assets

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var FS embed.FS

// Templates parses every embedded template. Each is addressable by its file
// name, e.g. "card.svg.tmpl".
func Templates(funcs template.FuncMap) (*template.Template, error) {
	return template.New("assets").Funcs(funcs).ParseFS(FS, "templates/*.tmpl")
}
