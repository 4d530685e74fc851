// internal/httpserver/routes_frames.go
//
// Frame protocol endpoints.
//   - GET|POST /frames          → advance the round and return the next Frame
//   - POST     /frames/redirect → answer the Share button with a 302
//
// The previous state arrives in signed query parameters; the player's input
// arrives in the (untrusted) JSON body.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/farguessr/internal/frame"
)

const maxBodyBytes = 64 << 10

// frameRequest is the body a frame client posts.
type frameRequest struct {
	UntrustedData untrustedData `json:"untrustedData"`
}

type untrustedData struct {
	ButtonIndex int    `json:"buttonIndex"`
	InputText   string `json:"inputText"`
}

func (s *Server) mountFrames(r chi.Router) {
	r.Get(frame.PathFrames, s.handleFrames)
	r.Post(frame.PathFrames, s.handleFrames)
	r.Post(frame.PathRedirect, s.handleRedirect)
}

// handleFrames runs one state machine step.
func (s *Server) handleFrames(w http.ResponseWriter, r *http.Request) {
	in, err := readInput(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	var (
		next frame.State
		d    frame.Directive
	)
	if prev, ok := s.verifiedState(r, true); ok {
		next, d = s.machine.Transition(prev, in)
	} else {
		next, d = s.machine.Initial(frame.MsgInvalidRequest)
	}

	f, err := frame.Build(next, d, s.links)
	if err != nil {
		log.Error().Err(err).Msg("build frame")
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	log.Debug().
		Str("status", string(next.Status)).
		Str("mode", string(next.Mode)).
		Str("request_id", requestID(r)).
		Msg("frame step")
	writeJSON(w, http.StatusOK, f)
}

// handleRedirect forwards a GUESSED state to its share page.
func (s *Server) handleRedirect(w http.ResponseWriter, r *http.Request) {
	st, ok := s.verifiedState(r, false)
	if !ok || st.Status != frame.StatusGuessed {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	target, err := s.links.Share(st)
	if err != nil {
		log.Error().Err(err).Msg("sign share url")
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// readInput decodes the optional frame body. An empty body is no input.
func readInput(r *http.Request) (frame.Input, error) {
	if r.Body == nil || r.Method == http.MethodGet {
		return frame.Input{}, nil
	}
	var req frameRequest
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req)
	if errors.Is(err, io.EOF) {
		return frame.Input{}, nil
	}
	if err != nil {
		return frame.Input{}, err
	}
	return frame.Input{
		ButtonIndex: req.UntrustedData.ButtonIndex,
		InputText:   req.UntrustedData.InputText,
	}, nil
}
