// internal/game/engine.go
//
// Scoring engine for a single Farguessr guess.
// Responsibilities:
//   - Parse the free-text distance a player typed.
//   - Score a (distance, direction) guess against the true Pair.
//   - Map the score to a percentage and a half-star rating.
//
// Scoring model:
//   - The direction error is the number of 45° octant steps between the
//     guessed and the correct direction (shortest way round, 0..4).
//   - A hypothetical guessed point is projected from the source along
//     (true bearing + steps*45°) at the guessed distance. The error is the
//     great-circle distance from that point to the true destination, so one
//     number captures both the distance and the direction mistake.
//   - The projection stops at the antipode, so a guess never wraps around
//     the globe. The error is never less than |guessed - true|, capped at
//     half the circumference.
//   - A flat 50 km tolerance is forgiven, the rest is compared to 120% of
//     the true distance to get the difference ratio.

package game

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/robalobadob/farguessr/internal/geo"
)

const (
	toleranceKm     = 50
	ratioScale      = 1.2
	maxStars        = 10
)

// starThresholds are upper bounds on 100*differenceRatio; index i earns maxStars-i.
var starThresholds = []float64{5, 10, 20, 30, 40, 50, 60, 70, 80, 90}

// Scorer rates a guess against a pair.
type Scorer interface {
	Rate(pair Pair, offered []Direction, guessedKm int, guessed Direction) (Rating, error)
}

// GeodesicScorer is the projection-based scoring model described above.
type GeodesicScorer struct{}

// RateGuess scores a guess with the GeodesicScorer.
func RateGuess(pair Pair, offered []Direction, guessedKm int, guessed Direction) (Rating, error) {
	return GeodesicScorer{}.Rate(pair, offered, guessedKm, guessed)
}

// Rate validates the guess and scores it. The guessed direction must be one
// of the offered buttons and the distance must be non-negative.
func (GeodesicScorer) Rate(pair Pair, offered []Direction, guessedKm int, guessed Direction) (Rating, error) {
	if guessedKm < 0 {
		return Rating{}, fmt.Errorf("%w: negative distance %d", ErrInvalidGuess, guessedKm)
	}
	if !slices.Contains(offered, guessed) {
		return Rating{}, fmt.Errorf("%w: direction %s not offered", ErrInvalidGuess, guessed)
	}

	steps := guessed.Steps(pair.Direction)
	projected := ProjectGuess(pair, guessedKm, guessed)
	errKm := errorKm(geo.DistanceKm(projected, pair.Destination.Coordinate()), guessedKm, pair.DistanceKm)

	ratio := differenceRatio(errKm, pair.DistanceKm)
	return Rating{
		Percentage:        100 * (1 - ratio),
		Stars:             starsFor(ratio),
		CorrectDistanceKm: pair.DistanceKm,
		GuessedDistanceKm: guessedKm,
		DifferenceKm:      int(math.Round(errKm)),
		DirectionSteps:    steps,
		CorrectDirection:  pair.Direction,
		GuessedDirection:  guessed,
	}, nil
}

// ProjectGuess is the point the guess describes: guessedKm from the source,
// turned off the true bearing by as many octants as guessed is off.
func ProjectGuess(pair Pair, guessedKm int, guessed Direction) geo.Coordinate {
	steps := guessed.Steps(pair.Direction)
	km := math.Min(float64(guessedKm), geo.HalfCircumferenceKm)
	return geo.Project(pair.Source.Coordinate(), pair.Bearing+float64(steps*45), km)
}

// errorKm combines the projected error with the plain distance gap, which
// keeps growing after the projection has stopped at the antipode.
func errorKm(projectedKm float64, guessedKm, trueKm int) float64 {
	gap := math.Abs(float64(guessedKm - trueKm))
	return math.Min(math.Max(projectedKm, gap), geo.HalfCircumferenceKm)
}

func differenceRatio(errKm float64, trueKm int) float64 {
	denom := ratioScale * float64(max(trueKm, 1))
	r := math.Max(0, errKm-toleranceKm) / denom
	return math.Min(1, math.Max(0, r))
}

func starsFor(ratio float64) int {
	pct := 100 * ratio
	for i, limit := range starThresholds {
		if pct < limit {
			return maxStars - i
		}
	}
	return 0
}

// ParseDistance turns free-form text such as " 4,100 " or "4.100" into a
// whole number of kilometres. Whitespace, commas and periods are removed
// before parsing; anything else non-numeric, or a negative value, is
// rejected with ErrInvalidGuess.
func ParseDistance(text string) (int, error) {
	clean := strings.Map(func(r rune) rune {
		if r == ',' || r == '.' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
	if clean == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidGuess)
	}
	n, err := strconv.Atoi(clean)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidGuess, text)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative distance", ErrInvalidGuess)
	}
	return n, nil
}

// StarsString renders a 0..10 half-star score as five glyphs.
func StarsString(stars int) string {
	stars = min(max(stars, 0), maxStars)
	var b strings.Builder
	for i := 0; i < maxStars/2; i++ {
		switch {
		case stars >= 2*(i+1):
			b.WriteString("★")
		case stars == 2*i+1:
			b.WriteString("⯪")
		default:
			b.WriteString("☆")
		}
	}
	return b.String()
}
