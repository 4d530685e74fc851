package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/robalobadob/farguessr/internal/frame"
)

// signedQuery documents the state parameters every signed URL carries.
type signedQuery struct {
	Status string `query:"status" enum:"INITIAL,STARTED,INVALID,GUESSED" description:"Round step."`
	Mode   string `query:"mode" enum:"DAILY,RANDOM"`
	Seed   string `query:"rk" description:"Seed key the pair is derived from."`
	Dist   int    `query:"dist" description:"Guessed distance in km (GUESSED only)."`
	Dir    string `query:"dir" enum:"N,NE,E,SE,S,SW,W,NW" description:"Guessed direction (GUESSED only)."`
	Sig    string `query:"sig" description:"URL signature; must be the last parameter."`
}

type imageQuery struct {
	signedQuery
	Msg string `query:"msg" description:"Message overlaid on the card."`
}

type shareQuery struct {
	signedQuery
	From string `query:"f" description:"Permalink: source place key."`
	To   string `query:"t" description:"Permalink: destination place key."`
}

type framePostRequest struct {
	signedQuery
	frameRequest
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Farguessr API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Guess how far apart two countries are, one signed frame at a time.")

	// GET /health
	getHealth, _ := r.NewOperationContext(http.MethodGet, "/health")
	getHealth.SetSummary("Health check")
	getHealth.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getHealth)

	// GET /
	getLanding, _ := r.NewOperationContext(http.MethodGet, "/")
	getLanding.SetSummary("Landing page")
	getLanding.SetDescription("HTML page announcing the first frame.")
	getLanding.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK), openapi.WithContentType("text/html"))
	_ = r.AddOperation(getLanding)

	// GET /frames
	getFrames, _ := r.NewOperationContext(http.MethodGet, frame.PathFrames)
	getFrames.SetSummary("Current frame")
	getFrames.SetDescription("Without parameters returns the landing frame. With a signed state returns the frame for it.")
	getFrames.AddReqStructure(signedQuery{})
	getFrames.AddRespStructure(frame.Frame{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getFrames)

	// POST /frames
	postFrames, _ := r.NewOperationContext(http.MethodPost, frame.PathFrames)
	postFrames.SetSummary("Advance the round")
	postFrames.SetDescription("Applies the pressed button and typed text to the signed state and returns the next frame.")
	postFrames.AddReqStructure(framePostRequest{})
	postFrames.AddRespStructure(frame.Frame{}, openapi.WithHTTPStatus(http.StatusOK))
	postFrames.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postFrames.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusTooManyRequests))
	_ = r.AddOperation(postFrames)

	// POST /frames/redirect
	postRedirect, _ := r.NewOperationContext(http.MethodPost, frame.PathRedirect)
	postRedirect.SetSummary("Share redirect")
	postRedirect.SetDescription("Redirects a signed GUESSED state to its share page.")
	postRedirect.AddReqStructure(signedQuery{})
	postRedirect.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusFound))
	postRedirect.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postRedirect)

	// GET /images
	getImage, _ := r.NewOperationContext(http.MethodGet, frame.PathImages)
	getImage.SetSummary("Frame image")
	getImage.SetDescription("SVG card for a signed state. A rejected URL yields the landing card.")
	getImage.AddReqStructure(imageQuery{})
	getImage.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK), openapi.WithContentType("image/svg+xml"))
	_ = r.AddOperation(getImage)

	// GET /share
	getShare, _ := r.NewOperationContext(http.MethodGet, frame.PathShare)
	getShare.SetSummary("Share page")
	getShare.SetDescription("Result page for a signed GUESSED state, or for a permalink naming the places with f and t instead of a seed.")
	getShare.AddReqStructure(shareQuery{})
	getShare.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK), openapi.WithContentType("text/html"))
	getShare.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusBadRequest), openapi.WithContentType("text/html"))
	_ = r.AddOperation(getShare)

	// GET /share/geojson
	getGeoJSON, _ := r.NewOperationContext(http.MethodGet, frame.PathGeoJSON)
	getGeoJSON.SetSummary("Round as GeoJSON")
	getGeoJSON.SetDescription("FeatureCollection with source, destination, the great-circle path and the guessed point.")
	getGeoJSON.AddReqStructure(signedQuery{})
	getGeoJSON.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK), openapi.WithContentType("application/geo+json"))
	getGeoJSON.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(getGeoJSON)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("marshal openapi spec")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
