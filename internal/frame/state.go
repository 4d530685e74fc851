// Package frame implements the stateless round protocol.
//
// The whole session is a State that travels in signed query parameters.
// Each request carries the previous State plus the player's input; the
// Machine computes the next State and a Directive describing what to show,
// and Build turns that into a Frame with freshly signed continuation URLs.
package frame

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/robalobadob/farguessr/internal/daily"
	"github.com/robalobadob/farguessr/internal/game"
)

// Status is the step of a round.
type Status string

const (
	StatusInitial Status = "INITIAL"
	StatusStarted Status = "STARTED"
	StatusInvalid Status = "INVALID"
	StatusGuessed Status = "GUESSED"
)

// Mode says whether a round is shared by everyone today or freshly randomised.
type Mode string

const (
	ModeDaily  Mode = "DAILY"
	ModeRandom Mode = "RANDOM"
)

// Query parameter names shared by every signed URL.
const (
	ParamStatus  = "status"
	ParamMode    = "mode"
	ParamSeed    = "rk"
	ParamDist    = "dist"
	ParamDir     = "dir"
	ParamMessage = "msg"
)

// ErrMalformedState is returned when signed parameters do not describe a
// valid State. Since they were signed by us, this means a format mismatch
// between deployments.
var ErrMalformedState = errors.New("malformed state")

// State is everything the server knows about a round between two requests.
// GuessKm and GuessDir are meaningful only when Status is StatusGuessed.
type State struct {
	Status   Status
	Mode     Mode
	SeedKey  string
	GuessKm  int
	GuessDir game.Direction
}

// Values encodes s as query parameters.
func (s State) Values() url.Values {
	q := url.Values{}
	if s.Status == "" {
		return q
	}
	q.Set(ParamStatus, string(s.Status))
	if s.Mode != "" {
		q.Set(ParamMode, string(s.Mode))
	}
	if s.SeedKey != "" {
		q.Set(ParamSeed, s.SeedKey)
	}
	if s.Status == StatusGuessed {
		q.Set(ParamDist, strconv.Itoa(s.GuessKm))
		q.Set(ParamDir, s.GuessDir.Key())
	}
	return q
}

// DecodeState parses query parameters produced by State.Values. A missing
// status decodes to the zero State, which the Machine treats as a first visit.
func DecodeState(q url.Values) (State, error) {
	status := Status(q.Get(ParamStatus))
	if status == "" {
		return State{}, nil
	}
	s := State{Status: status, SeedKey: q.Get(ParamSeed)}

	switch status {
	case StatusInitial:
		return State{Status: StatusInitial}, nil
	case StatusStarted, StatusInvalid, StatusGuessed:
	default:
		return State{}, fmt.Errorf("%w: unknown status %q", ErrMalformedState, status)
	}

	if s.SeedKey == "" {
		return State{}, fmt.Errorf("%w: %s without seed", ErrMalformedState, status)
	}

	switch mode := Mode(q.Get(ParamMode)); mode {
	case ModeDaily, ModeRandom:
		s.Mode = mode
	case "":
		s.Mode = inferMode(s.SeedKey)
	default:
		return State{}, fmt.Errorf("%w: unknown mode %q", ErrMalformedState, mode)
	}

	if status == StatusGuessed {
		km, err := strconv.Atoi(q.Get(ParamDist))
		if err != nil || km < 0 {
			return State{}, fmt.Errorf("%w: bad distance %q", ErrMalformedState, q.Get(ParamDist))
		}
		dir, ok := game.DirectionByKey(q.Get(ParamDir))
		if !ok {
			return State{}, fmt.Errorf("%w: bad direction %q", ErrMalformedState, q.Get(ParamDir))
		}
		s.GuessKm, s.GuessDir = km, dir
	}
	return s, nil
}

func inferMode(seed string) Mode {
	if daily.IsDateKey(seed) {
		return ModeDaily
	}
	return ModeRandom
}
