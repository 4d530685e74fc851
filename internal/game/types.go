// internal/game/types.go
//
// Core type definitions for the Farguessr game engine.
// Defines:
//   - Direction: one of the eight compass octants a player can guess.
//   - Pair:      the source/destination round derived from a seed key.
//   - Rating:    the scored outcome of a single guess.

package game

import (
	"github.com/robalobadob/farguessr/internal/places"
)

// Direction is a compass octant, numbered clockwise from north.
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// octants is the number of compass buckets; each spans 45 degrees.
const octants = 8

var directionInfo = [octants]struct {
	key, name, emoji string
}{
	North:     {"N", "North", "🔼"},
	NorthEast: {"NE", "North East", "↗️"},
	East:      {"E", "East", "▶️"},
	SouthEast: {"SE", "South East", "↘️"},
	South:     {"S", "South", "🔽"},
	SouthWest: {"SW", "South West", "↙️"},
	West:      {"W", "West", "◀️"},
	NorthWest: {"NW", "North West", "↖️"},
}

// Pair is one round: guess the distance and direction from Source to Destination.
// It is never stored; the generator rebuilds it from the seed on every request.
type Pair struct {
	Source      places.Place `json:"source"`
	Destination places.Place `json:"destination"`
	DistanceKm  int          `json:"distanceKm"` // great-circle, rounded
	Bearing     float64      `json:"bearing"`    // initial bearing, [0,360)
	Direction   Direction    `json:"direction"`
}

// Rating is the outcome of one guess against a Pair.
type Rating struct {
	Percentage        float64   `json:"percentage"` // 0..100
	Stars             int       `json:"stars"`      // 0..10 half-star units
	CorrectDistanceKm int       `json:"correctDistanceKm"`
	GuessedDistanceKm int       `json:"guessedDistanceKm"`
	DifferenceKm      int       `json:"differenceKm"`
	DirectionSteps    int       `json:"directionSteps"` // 0..4 octants off
	CorrectDirection  Direction `json:"correctDirection"`
	GuessedDirection  Direction `json:"guessedDirection"`
}
