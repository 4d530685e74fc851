// internal/game/pairs.go
//
// Deterministic pair generation.
//
// A round is identified only by its seed key. The generator expands
// salt + "/" + seed into a ChaCha8 stream, draws a source place and a
// different destination place, and computes the true distance, bearing
// and octant between them. The same (salt, seed, corpus) always yields
// the same Pair, which is what lets a stateless server rebuild the round
// on every request.

package game

import (
	"crypto/sha256"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/robalobadob/farguessr/internal/daily"
	"github.com/robalobadob/farguessr/internal/geo"
	"github.com/robalobadob/farguessr/internal/places"
)

// Generator derives Pairs from seed keys. It is read-only after construction
// and safe for concurrent use.
type Generator struct {
	corpus *places.Corpus
	salt   string
}

// NewGenerator binds a generator to a corpus and a secret salt.
func NewGenerator(corpus *places.Corpus, salt string) *Generator {
	return &Generator{corpus: corpus, salt: salt}
}

// Corpus returns the corpus the generator draws from.
func (g *Generator) Corpus() *places.Corpus { return g.corpus }

// Pair returns the round for seedKey.
func (g *Generator) Pair(seedKey string) Pair {
	rng := rand.New(rand.NewChaCha8(sha256.Sum256([]byte(g.salt + "/" + seedKey))))

	n := g.corpus.Len()
	src := rng.IntN(n)
	// Draw over the remaining n-1 places and skip past src so src != dst.
	dst := rng.IntN(n - 1)
	if dst >= src {
		dst++
	}
	return NewPair(g.corpus.At(src), g.corpus.At(dst))
}

// PairForToday returns the round every player shares on now's UTC date.
func (g *Generator) PairForToday(now time.Time) Pair {
	return g.Pair(daily.DateKey(now))
}

// PairByKeys rebuilds a round from explicit corpus keys.
func (g *Generator) PairByKeys(srcKey, dstKey string) (Pair, error) {
	src, ok := g.corpus.Lookup(srcKey)
	if !ok {
		return Pair{}, fmt.Errorf("%w: unknown place %q", ErrDataIntegrity, srcKey)
	}
	dst, ok := g.corpus.Lookup(dstKey)
	if !ok {
		return Pair{}, fmt.Errorf("%w: unknown place %q", ErrDataIntegrity, dstKey)
	}
	if src.Key == dst.Key {
		return Pair{}, fmt.Errorf("%w: source and destination are both %q", ErrDataIntegrity, src.Key)
	}
	return NewPair(src, dst), nil
}

// NewPair computes distance, bearing and octant between two places.
func NewPair(src, dst places.Place) Pair {
	from, to := src.Coordinate(), dst.Coordinate()
	bearing := geo.BearingDeg(from, to)
	return Pair{
		Source:      src,
		Destination: dst,
		DistanceKm:  int(math.Round(geo.DistanceKm(from, to))),
		Bearing:     bearing,
		Direction:   DirectionFromBearing(bearing),
	}
}
