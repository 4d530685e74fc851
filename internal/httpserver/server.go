// internal/httpserver/server.go
//
// HTTP server wiring for Farguessr.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, structured request log,
//     panic recovery, timeouts, per-client rate limiting).
//   - Diagnostics: "/health", "/openapi.json", "/docs".
//   - Frame endpoints: /frames, /frames/redirect.
//   - Pages and signed read-only endpoints: "/", /images, /share, /share/geojson.
//
// Notes:
//   - The server keeps no session state. Every round lives in signed query
//     parameters; a request whose signature fails is answered with the
//     landing frame (or card) and "Invalid request", never an error detail.

package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"github.com/swaggest/swgui/v5emb"

	"github.com/robalobadob/farguessr/internal/frame"
	"github.com/robalobadob/farguessr/internal/render"
)

// Verifier checks a signed request and returns its covered parameters.
type Verifier interface {
	VerifyQuery(path, rawQuery string) (url.Values, error)
}

// Options are the collaborators and limits a Server is built from.
type Options struct {
	Addr           string
	Machine        *frame.Machine
	Links          *frame.Links
	Verifier       Verifier
	Views          *render.Set
	RateLimitRPS   float64
	RateLimitBurst int
	RequestTimeout time.Duration
}

// Server bundles the router and the read-only game collaborators.
type Server struct {
	r        *chi.Mux
	srv      *http.Server
	machine  *frame.Machine
	links    *frame.Links
	verifier Verifier
	views    *render.Set
	limiter  *ipLimiter
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) (*Server, error) {
	if opts.Machine == nil || opts.Links == nil || opts.Verifier == nil || opts.Views == nil {
		return nil, errors.New("httpserver: machine, links, verifier and views are required")
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}

	s := &Server{
		r:        chi.NewRouter(),
		machine:  opts.Machine,
		links:    opts.Links,
		verifier: opts.Verifier,
		views:    opts.Views,
		limiter:  newIPLimiter(opts.RateLimitRPS, opts.RateLimitBurst),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(opts.RequestTimeout))

	// --- diagnostics ---
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{OK: true})
	})
	s.r.Get("/openapi.json", handleOpenAPI())
	s.r.Mount("/docs", v5emb.New("Farguessr API", "/openapi.json", "/docs"))

	// --- game (rate limited) ---
	s.r.Group(func(r chi.Router) {
		r.Use(s.limiter.middleware)
		s.mountFrames(r)
		s.mountShare(r)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	s.srv = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s, nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Run serves until Shutdown is called.
func (s *Server) Run(_ context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.srv.Addr, err)
	}
	log.Info().Str("addr", ln.Addr().String()).Msg("http server listening")

	err = s.srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests for up to ten seconds.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
