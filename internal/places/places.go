// internal/places/places.go
//
// Provides the place corpus the pair generator draws from.
//
// Responsibilities:
//   - Load the corpus from a TOML file or fall back to the embedded default.
//   - Validate it once at startup (at least two places, unique keys, sane coordinates).
//   - Expose read-only, index-stable access for seeded draws and key lookups.
//
// File format (TOML):
//
//	[[place]]
//	key  = "FR"
//	name = "France"
//	lat  = 46.23
//	lng  = 2.21
//
// Constraints:
//   • Order is significant: the same seed only reproduces the same pair
//     against the same corpus, so every instance must ship the same file.
//   • A Corpus is never mutated after construction.

package places

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/robalobadob/farguessr/internal/geo"
)

//go:embed places.toml
var embeddedPlaces []byte

var (
	defaultOnce   sync.Once
	defaultCorpus *Corpus
	defaultErr    error
)

// Place is a single named location.
type Place struct {
	Key  string  `toml:"key" json:"key"`
	Name string  `toml:"name" json:"name"`
	Lat  float64 `toml:"lat" json:"lat"`
	Lng  float64 `toml:"lng" json:"lng"`
}

// Coordinate returns the place position.
func (p Place) Coordinate() geo.Coordinate { return geo.Coordinate{Lat: p.Lat, Lng: p.Lng} }

// Corpus is an immutable, ordered set of places.
type Corpus struct {
	places []Place
	byKey  map[string]int
}

type corpusFile struct {
	Place []Place `toml:"place"`
}

// Default returns the embedded corpus, parsed exactly once.
func Default() (*Corpus, error) {
	defaultOnce.Do(func() {
		defaultCorpus, defaultErr = Parse(embeddedPlaces)
	})
	return defaultCorpus, defaultErr
}

// Load reads a corpus from path, or returns the embedded default when path is empty.
func Load(path string) (*Corpus, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read places file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a TOML corpus.
func Parse(data []byte) (*Corpus, error) {
	var f corpusFile
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("decode places: %w", err)
	}
	return New(f.Place)
}

// New validates list and builds a Corpus from a private copy of it.
func New(list []Place) (*Corpus, error) {
	if len(list) < 2 {
		return nil, errors.New("places: corpus needs at least two places")
	}
	c := &Corpus{
		places: make([]Place, 0, len(list)),
		byKey:  make(map[string]int, len(list)),
	}
	for i, p := range list {
		p.Key = strings.ToUpper(strings.TrimSpace(p.Key))
		p.Name = strings.TrimSpace(p.Name)
		if p.Key == "" || p.Name == "" {
			return nil, fmt.Errorf("places: entry %d: key and name are required", i)
		}
		if !p.Coordinate().Valid() {
			return nil, fmt.Errorf("places: %s: coordinate out of range", p.Key)
		}
		if _, dup := c.byKey[p.Key]; dup {
			return nil, fmt.Errorf("places: duplicate key %s", p.Key)
		}
		c.byKey[p.Key] = len(c.places)
		c.places = append(c.places, p)
	}
	return c, nil
}

// Len returns the number of places.
func (c *Corpus) Len() int { return len(c.places) }

// At returns the place at index i. It panics when i is out of range,
// like a slice index; callers draw i from [0, Len()).
func (c *Corpus) At(i int) Place { return c.places[i] }

// Lookup finds a place by key (case-insensitive).
func (c *Corpus) Lookup(key string) (Place, bool) {
	i, ok := c.byKey[strings.ToUpper(strings.TrimSpace(key))]
	if !ok {
		return Place{}, false
	}
	return c.places[i], true
}

// All returns a copy of the places in corpus order.
func (c *Corpus) All() []Place {
	return append([]Place(nil), c.places...)
}
