package game

import (
	"fmt"
	"math"
	"strings"
)

// Button order for each offered set. Frames allow at most four buttons, so a
// round offers either the four cardinals or the four diagonals, picked by
// the kind of the correct octant.
var (
	cardinalSet = []Direction{West, North, South, East}
	diagonalSet = []Direction{SouthWest, NorthWest, NorthEast, SouthEast}
)

// Key returns the short code ("N", "SW", ...).
func (d Direction) Key() string {
	if !d.Valid() {
		return ""
	}
	return directionInfo[d].key
}

// Name returns the display label ("North", "South West", ...).
func (d Direction) Name() string {
	if !d.Valid() {
		return ""
	}
	return directionInfo[d].name
}

// Emoji returns the arrow glyph shown on buttons.
func (d Direction) Emoji() string {
	if !d.Valid() {
		return ""
	}
	return directionInfo[d].emoji
}

func (d Direction) String() string { return d.Key() }

// Valid reports whether d is one of the eight octants.
func (d Direction) Valid() bool { return d >= North && d <= NorthWest }

// Cardinal reports whether d is N, E, S or W.
func (d Direction) Cardinal() bool { return d%2 == 0 }

// Steps returns the shortest circular distance between two octants, 0..4.
func (d Direction) Steps(other Direction) int {
	diff := int(d) - int(other)
	if diff < 0 {
		diff = -diff
	}
	diff %= octants
	if diff > octants/2 {
		diff = octants - diff
	}
	return diff
}

// MarshalText encodes a direction as its key.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(d.Key()), nil
}

// UnmarshalText decodes a direction key.
func (d *Direction) UnmarshalText(b []byte) error {
	v, ok := DirectionByKey(string(b))
	if !ok {
		return fmt.Errorf("unknown direction %q", b)
	}
	*d = v
	return nil
}

// DirectionByKey looks up an octant by its key, case-insensitively.
func DirectionByKey(key string) (Direction, bool) {
	key = strings.ToUpper(strings.TrimSpace(key))
	for d := North; d <= NorthWest; d++ {
		if directionInfo[d].key == key {
			return d, true
		}
	}
	return 0, false
}

// DirectionFromBearing buckets a bearing into an octant. Buckets are 45°
// wide and centred on each compass point, so boundaries sit at odd
// multiples of 22.5° and a bearing exactly on one belongs to the higher bucket.
func DirectionFromBearing(bearing float64) Direction {
	b := math.Mod(bearing+22.5, 360)
	if b < 0 {
		b += 360
	}
	return Direction(int(math.Floor(b/45)) % octants)
}

// Directions returns the buttons offered for pair, in display order.
func Directions(pair Pair) []Direction {
	if pair.Direction.Cardinal() {
		return append([]Direction(nil), cardinalSet...)
	}
	return append([]Direction(nil), diagonalSet...)
}
