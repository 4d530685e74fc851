// internal/render/render.go
//
// Presentation for the two non-JSON surfaces.
// Responsibilities:
//   - The 1200×628 SVG card shown as the frame image.
//   - The HTML page: the landing page at "/" and the share page for people
//     who only received a link. Both announce the landing frame in their head.
//
// Both are html/template files embedded by package assets; a View carries
// everything they may show.

package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/robalobadob/farguessr/assets"
	"github.com/robalobadob/farguessr/internal/frame"
	"github.com/robalobadob/farguessr/internal/game"
)

const (
	cardTemplate  = "card.svg.tmpl"
	shareTemplate = "share.html.tmpl"
)

// View is the data a template renders. Pair and Rating are nil when the
// state has none. The fields below Message are only used by the HTML page.
type View struct {
	Status  frame.Status
	Mode    frame.Mode
	Pair    *game.Pair
	Rating  *game.Rating
	Message string

	// Frame, when set, is announced in the page head so frame clients can
	// start playing from the page URL.
	Frame        *frame.Frame
	ImageURL     string
	PlayURL      string
	GeoJSONURL   string
	PermalinkURL string
	ShareText    string
}

// Renderer writes a View in one output format.
type Renderer interface {
	Render(w io.Writer, v View) error
	ContentType() string
}

// Template is a Renderer backed by one embedded template.
type Template struct {
	t           *template.Template
	name        string
	contentType string
}

func (t *Template) Render(w io.Writer, v View) error {
	if err := t.t.ExecuteTemplate(w, t.name, v); err != nil {
		return fmt.Errorf("render %s: %w", t.name, err)
	}
	return nil
}

func (t *Template) ContentType() string { return t.contentType }

// Set is the pair of renderers the server needs.
type Set struct {
	Card  *Template
	Share *Template
}

var funcs = template.FuncMap{
	"stars": game.StarsString,
	"inc":   func(i int) int { return i + 1 },
}

// ShareText is the message a player posts with a result.
func ShareText(stars int, playURL string) string {
	return "Farguessr\n\n" + game.StarsString(stars) + "\n\n" + playURL
}

// Load parses the embedded templates.
func Load() (*Set, error) {
	t, err := assets.Templates(funcs)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Set{
		Card:  &Template{t: t, name: cardTemplate, contentType: "image/svg+xml"},
		Share: &Template{t: t, name: shareTemplate, contentType: "text/html; charset=utf-8"},
	}, nil
}
