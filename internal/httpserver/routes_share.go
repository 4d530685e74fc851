// internal/httpserver/routes_share.go
//
// Read-only pages and signed read-only endpoints.
//   - GET /              → landing page announcing the first frame
//   - GET /images        → SVG card for a state
//   - GET /share         → HTML result page, from a state or a permalink
//   - GET /share/geojson → GeoJSON of source, destination, path and guess
//
// Each is a pure function of its signed parameters, so responses are
// cacheable for as long as the signing secret stays the same.

package httpserver

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/farguessr/internal/frame"
	"github.com/robalobadob/farguessr/internal/game"
	"github.com/robalobadob/farguessr/internal/geo"
	"github.com/robalobadob/farguessr/internal/render"
)

// pathSegments is how many pieces the exported great-circle path has.
const pathSegments = 32

func (s *Server) mountShare(r chi.Router) {
	r.Get("/", s.handleLanding)
	r.Get(frame.PathImages, s.handleImage)
	r.Get(frame.PathShare, s.handleShare)
	r.Get(frame.PathGeoJSON, s.handleGeoJSON)
}

// handleLanding is the page a round starts from: a short intro for browsers
// and the landing frame for frame clients.
func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	f, err := s.landingFrame()
	if err != nil {
		log.Error().Err(err).Msg("build landing frame")
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	s.writeView(w, s.views.Share, render.View{Status: frame.StatusInitial, Frame: &f, ImageURL: f.Image}, http.StatusOK, true)
}

// handleImage renders the card for a signed state. A rejected URL still gets
// a card (the landing one) so the client has something to show.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	var v render.View
	st, ok := s.verifiedState(r, false)
	if ok {
		v, ok = s.stateView(r, st)
	}
	if ok {
		v.Message = r.URL.Query().Get(frame.ParamMessage)
	} else {
		v = render.View{Status: frame.StatusInitial, Message: frame.MsgInvalidRequest}
	}
	s.writeView(w, s.views.Card, v, http.StatusOK, ok)
}

// handleShare renders the public result page. It is playable too: the head
// carries the landing frame and the page links back to "/".
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	v, ok := s.shareView(r)
	status := http.StatusOK
	if !ok {
		v = render.View{Status: frame.StatusInitial, Message: frame.MsgInvalidRequest}
		status = http.StatusBadRequest
	}
	v.PlayURL = s.links.Base()
	if v.Rating != nil {
		v.ShareText = render.ShareText(v.Rating.Stars, s.links.Base())
	}
	if f, err := s.landingFrame(); err != nil {
		log.Error().Err(err).Msg("build landing frame")
	} else {
		v.Frame = &f
	}
	s.writeView(w, s.views.Share, v, status, ok)
}

// handleGeoJSON exports the round as a FeatureCollection.
func (s *Server) handleGeoJSON(w http.ResponseWriter, r *http.Request) {
	st, ok := s.verifiedState(r, false)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	pair, rating, err := s.machine.Replay(st)
	if err != nil {
		s.logReplayError(r, err)
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	data, err := roundGeoJSON(pair, st, rating).MarshalJSON()
	if err != nil {
		log.Error().Err(err).Msg("marshal geojson")
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// roundGeoJSON builds the features of a round: both places, the great-circle
// path between them and, once guessed, the point the guess describes.
func roundGeoJSON(pair game.Pair, st frame.State, rating *game.Rating) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	src := geojson.NewFeature(pair.Source.Coordinate().Point())
	src.Properties["role"] = "source"
	src.Properties["key"] = pair.Source.Key
	src.Properties["name"] = pair.Source.Name
	fc.Append(src)

	dst := geojson.NewFeature(pair.Destination.Coordinate().Point())
	dst.Properties["role"] = "destination"
	dst.Properties["key"] = pair.Destination.Key
	dst.Properties["name"] = pair.Destination.Name
	fc.Append(dst)

	line := make(orb.LineString, 0, pathSegments+1)
	for i := 0; i <= pathSegments; i++ {
		km := float64(pair.DistanceKm) * float64(i) / pathSegments
		line = append(line, geo.Project(pair.Source.Coordinate(), pair.Bearing, km).Point())
	}
	path := geojson.NewFeature(line)
	path.Properties["role"] = "path"
	path.Properties["distanceKm"] = pair.DistanceKm
	path.Properties["direction"] = pair.Direction.Key()
	fc.Append(path)

	if rating != nil {
		guess := geojson.NewFeature(game.ProjectGuess(pair, st.GuessKm, st.GuessDir).Point())
		guess.Properties["role"] = "guess"
		guess.Properties["distanceKm"] = st.GuessKm
		guess.Properties["direction"] = st.GuessDir.Key()
		guess.Properties["differenceKm"] = rating.DifferenceKm
		guess.Properties["percentage"] = rating.Percentage
		guess.Properties["stars"] = rating.Stars
		fc.Append(guess)
	}
	return fc
}

// stateView replays st into a View.
func (s *Server) stateView(r *http.Request, st frame.State) (render.View, bool) {
	v := render.View{Status: st.Status, Mode: st.Mode}
	if st.Status == frame.StatusInitial {
		return v, true
	}
	pair, rating, err := s.machine.Replay(st)
	if err != nil {
		s.logReplayError(r, err)
		return render.View{}, false
	}
	v.Pair, v.Rating = &pair, rating
	return v, true
}

// shareView builds the share page for either form of signed share URL: a
// round state, or a permalink naming the places.
func (s *Server) shareView(r *http.Request) (render.View, bool) {
	q, ok := s.verifiedQuery(r)
	if !ok {
		return render.View{}, false
	}
	if frame.IsSharedGuess(q) {
		return s.permalinkView(r, q)
	}
	st, ok := s.decodeState(r, q)
	if !ok {
		return render.View{}, false
	}
	v, ok := s.stateView(r, st)
	if !ok {
		return v, false
	}

	var err error
	if v.ImageURL, err = s.links.Image(st, ""); err != nil {
		log.Error().Err(err).Msg("sign image url")
	}
	if v.Rating != nil {
		if v.GeoJSONURL, err = s.links.GeoJSON(st); err != nil {
			log.Error().Err(err).Msg("sign geojson url")
		}
		if v.PermalinkURL, err = s.links.Permalink(frame.NewSharedGuess(*v.Pair, st)); err != nil {
			log.Error().Err(err).Msg("sign permalink")
		}
	}
	return v, true
}

func (s *Server) permalinkView(r *http.Request, q url.Values) (render.View, bool) {
	g, err := frame.DecodeSharedGuess(q)
	if err != nil {
		log.Warn().
			Err(err).
			Str("path", r.URL.Path).
			Str("request_id", requestID(r)).
			Msg("rejected permalink")
		return render.View{}, false
	}
	pair, rating, err := s.machine.ReplayShared(g)
	if err != nil {
		s.logReplayError(r, err)
		return render.View{}, false
	}
	return render.View{Status: frame.StatusGuessed, Pair: &pair, Rating: &rating}, true
}

// landingFrame is the INITIAL frame with its signed URLs.
func (s *Server) landingFrame() (frame.Frame, error) {
	next, d := s.machine.Initial("")
	return frame.Build(next, d, s.links)
}

// writeView renders into a buffer first so a template error becomes a 500
// rather than a truncated body.
func (s *Server) writeView(w http.ResponseWriter, rd render.Renderer, v render.View, status int, cacheable bool) {
	var buf bytes.Buffer
	if err := rd.Render(&buf, v); err != nil {
		log.Error().Err(err).Msg("render view")
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	w.Header().Set("Content-Type", rd.ContentType())
	if cacheable {
		w.Header().Set("Cache-Control", "public, max-age=86400")
	} else {
		w.Header().Set("Cache-Control", "no-store")
	}
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// verifiedState checks the signature on r and decodes its state. With
// allowEmpty, a request carrying no query at all is a first visit.
func (s *Server) verifiedState(r *http.Request, allowEmpty bool) (frame.State, bool) {
	if r.URL.RawQuery == "" && allowEmpty {
		return frame.State{}, true
	}
	q, ok := s.verifiedQuery(r)
	if !ok {
		return frame.State{}, false
	}
	return s.decodeState(r, q)
}

// verifiedQuery checks the signature on r and returns the parameters it covers.
func (s *Server) verifiedQuery(r *http.Request) (url.Values, bool) {
	q, err := s.verifier.VerifyQuery(r.URL.EscapedPath(), r.URL.RawQuery)
	if err != nil {
		log.Warn().
			Err(err).
			Str("path", r.URL.Path).
			Str("request_id", requestID(r)).
			Msg("rejected signed url")
		return nil, false
	}
	return q, true
}

func (s *Server) decodeState(r *http.Request, q url.Values) (frame.State, bool) {
	st, err := frame.DecodeState(q)
	if err != nil {
		log.Warn().
			Err(err).
			Str("path", r.URL.Path).
			Str("request_id", requestID(r)).
			Msg("rejected signed state")
		return frame.State{}, false
	}
	return st, true
}

func (s *Server) logReplayError(r *http.Request, err error) {
	level := log.Warn
	if errors.Is(err, game.ErrDataIntegrity) {
		level = log.Error
	}
	level().Err(err).Str("path", r.URL.Path).Str("request_id", requestID(r)).Msg("replay state")
}

func requestID(r *http.Request) string { return chimw.GetReqID(r.Context()) }
