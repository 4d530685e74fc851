package frame

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/robalobadob/farguessr/internal/game"
)

// Routes the signed URLs point at.
const (
	PathFrames   = "/frames"
	PathRedirect = "/frames/redirect"
	PathImages   = "/images"
	PathShare    = "/share"
	PathGeoJSON  = "/share/geojson"
)

// URLSigner mints signed URLs.
type URLSigner interface {
	Sign(rawURL string) (string, error)
}

// Links builds absolute, signed URLs under the public base URL.
type Links struct {
	base   *url.URL
	signer URLSigner
}

// NewLinks parses publicURL. It must be an absolute http(s) URL with no path,
// since signatures cover the request path the server will see.
func NewLinks(publicURL string, s URLSigner) (*Links, error) {
	u, err := url.Parse(publicURL)
	if err != nil {
		return nil, fmt.Errorf("frame: parse public url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("frame: public url %q must be http or https", publicURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("frame: public url %q has no host", publicURL)
	}
	if strings.Trim(u.Path, "/") != "" {
		return nil, fmt.Errorf("frame: public url %q must not have a path", publicURL)
	}
	if s == nil {
		return nil, errors.New("frame: nil signer")
	}
	return &Links{
		base:   &url.URL{Scheme: u.Scheme, Host: u.Host},
		signer: s,
	}, nil
}

// Base is the public base URL.
func (l *Links) Base() string { return l.base.String() }

// URL signs path with q under the base URL.
func (l *Links) URL(path string, q url.Values) (string, error) {
	u := *l.base
	u.Path = path
	u.RawQuery = q.Encode()
	signed, err := l.signer.Sign(u.String())
	if err != nil {
		return "", fmt.Errorf("frame: sign %s: %w", path, err)
	}
	return signed, nil
}

// Post is where the client submits its next interaction from state s.
func (l *Links) Post(s State) (string, error) {
	return l.URL(PathFrames, s.Values())
}

// Image is the card for s, with message overlaid when non-empty.
func (l *Links) Image(s State, message string) (string, error) {
	q := s.Values()
	if message != "" {
		q.Set(ParamMessage, message)
	}
	return l.URL(PathImages, q)
}

// Share is the public result page for a GUESSED state.
func (l *Links) Share(s State) (string, error) {
	return l.URL(PathShare, s.Values())
}

// ShareRedirect is the post_redirect target that forwards to Share.
func (l *Links) ShareRedirect(s State) (string, error) {
	return l.URL(PathRedirect, s.Values())
}

// GeoJSON is the map export of a GUESSED state.
func (l *Links) GeoJSON(s State) (string, error) {
	return l.URL(PathGeoJSON, s.Values())
}

// Frame is the JSON document returned for every interaction.
type Frame struct {
	Status  Status       `json:"status"`
	Image   string       `json:"image"`
	PostURL string       `json:"postUrl"`
	Buttons []Button     `json:"buttons"`
	Input   string       `json:"input,omitempty"`
	Message string       `json:"message,omitempty"`
	Rating  *game.Rating `json:"rating,omitempty"`
}

// Build turns a transition result into a Frame, signing the continuation,
// image and redirect URLs for next.
func Build(next State, d Directive, links *Links) (Frame, error) {
	post, err := links.Post(next)
	if err != nil {
		return Frame{}, err
	}
	img, err := links.Image(next, d.Message)
	if err != nil {
		return Frame{}, err
	}

	buttons := make([]Button, len(d.Buttons))
	copy(buttons, d.Buttons)
	for i := range buttons {
		if buttons[i].Action != ActionPostRedirect {
			continue
		}
		target, err := links.ShareRedirect(next)
		if err != nil {
			return Frame{}, err
		}
		buttons[i].Target = target
	}

	return Frame{
		Status:  next.Status,
		Image:   img,
		PostURL: post,
		Buttons: buttons,
		Input:   d.InputPrompt,
		Message: d.Message,
		Rating:  d.Rating,
	}, nil
}
