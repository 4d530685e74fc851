package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/farguessr/internal/config"
	"github.com/robalobadob/farguessr/internal/game"
	"github.com/robalobadob/farguessr/internal/places"
	"github.com/robalobadob/farguessr/internal/signer"
)

// core is what every subcommand derives from configuration.
type core struct {
	corpus *places.Corpus
	gen    *game.Generator
	signer *signer.Signer
}

func newCore(c *config.Config) (*core, error) {
	corpus, err := places.Load(c.PlacesFile)
	if err != nil {
		return nil, fmt.Errorf("loading places: %w", err)
	}
	sg, err := signer.New(c.SigningSecret)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("places", corpus.Len()).Str("file", c.PlacesFile).Msg("corpus loaded")
	return &core{
		corpus: corpus,
		gen:    game.NewGenerator(corpus, c.SeedSalt),
		signer: sg,
	}, nil
}
