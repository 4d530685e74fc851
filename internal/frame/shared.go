package frame

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/robalobadob/farguessr/internal/game"
)

// Parameters of a permalink share URL.
const (
	ParamFrom = "f"
	ParamTo   = "t"
)

// SharedGuess is a finished round named by its place keys instead of a seed.
// It still resolves after the seed salt or the corpus order changes.
type SharedGuess struct {
	FromKey  string
	ToKey    string
	GuessKm  int
	GuessDir game.Direction
}

// NewSharedGuess names the round of a GUESSED state s, whose pair is pair.
func NewSharedGuess(pair game.Pair, s State) SharedGuess {
	return SharedGuess{
		FromKey:  pair.Source.Key,
		ToKey:    pair.Destination.Key,
		GuessKm:  s.GuessKm,
		GuessDir: s.GuessDir,
	}
}

// Values encodes g as query parameters.
func (g SharedGuess) Values() url.Values {
	q := url.Values{}
	q.Set(ParamFrom, g.FromKey)
	q.Set(ParamTo, g.ToKey)
	q.Set(ParamDist, strconv.Itoa(g.GuessKm))
	q.Set(ParamDir, g.GuessDir.Key())
	return q
}

// IsSharedGuess reports whether q names a round by place keys.
func IsSharedGuess(q url.Values) bool { return q.Has(ParamFrom) }

// DecodeSharedGuess parses query parameters produced by SharedGuess.Values.
func DecodeSharedGuess(q url.Values) (SharedGuess, error) {
	g := SharedGuess{FromKey: q.Get(ParamFrom), ToKey: q.Get(ParamTo)}
	if g.FromKey == "" || g.ToKey == "" {
		return SharedGuess{}, fmt.Errorf("%w: shared guess needs both place keys", ErrMalformedState)
	}
	km, err := strconv.Atoi(q.Get(ParamDist))
	if err != nil || km < 0 {
		return SharedGuess{}, fmt.Errorf("%w: bad distance %q", ErrMalformedState, q.Get(ParamDist))
	}
	dir, ok := game.DirectionByKey(q.Get(ParamDir))
	if !ok {
		return SharedGuess{}, fmt.Errorf("%w: bad direction %q", ErrMalformedState, q.Get(ParamDir))
	}
	g.GuessKm, g.GuessDir = km, dir
	return g, nil
}

// ReplayShared rebuilds the pair and rating of g. Keys the corpus does not
// know, or a direction the pair never offered, fail with game.ErrDataIntegrity.
func (m *Machine) ReplayShared(g SharedGuess) (game.Pair, game.Rating, error) {
	pair, err := m.gen.PairByKeys(g.FromKey, g.ToKey)
	if err != nil {
		return game.Pair{}, game.Rating{}, err
	}
	r, err := game.RateGuess(pair, game.Directions(pair), g.GuessKm, g.GuessDir)
	if err != nil {
		return pair, game.Rating{}, fmt.Errorf("%w: %v", game.ErrDataIntegrity, err)
	}
	return pair, r, nil
}

// Permalink is the share page for g.
func (l *Links) Permalink(g SharedGuess) (string, error) {
	return l.URL(PathShare, g.Values())
}
