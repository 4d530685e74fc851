package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/farguessr/internal/daily"
	"github.com/robalobadob/farguessr/internal/game"
)

var pairJSON bool

var pairCmd = &cobra.Command{
	Use:   "pair [seed]",
	Short: "Print the pair a seed key maps to (today's daily pair when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCore(cfg)
		if err != nil {
			return err
		}
		now := time.Now()
		seed, p := daily.DateKey(now), c.gen.PairForToday(now)
		if len(args) == 1 {
			seed, p = args[0], c.gen.Pair(args[0])
		}

		out := cmd.OutOrStdout()
		if pairJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Seed    string           `json:"seed"`
				Pair    game.Pair        `json:"pair"`
				Offered []game.Direction `json:"offered"`
			}{seed, p, game.Directions(p)})
		}
		fmt.Fprintf(out, "seed:        %s\n", seed)
		fmt.Fprintf(out, "source:      %s (%s)\n", p.Source.Name, p.Source.Key)
		fmt.Fprintf(out, "destination: %s (%s)\n", p.Destination.Name, p.Destination.Key)
		fmt.Fprintf(out, "distance:    %d km\n", p.DistanceKm)
		fmt.Fprintf(out, "direction:   %s %s (bearing %.1f°)\n", p.Direction.Name(), p.Direction.Emoji(), p.Bearing)
		return nil
	},
}

func init() {
	pairCmd.Flags().BoolVar(&pairJSON, "json", false, "Print JSON instead of text")
	rootCmd.AddCommand(pairCmd)
}
