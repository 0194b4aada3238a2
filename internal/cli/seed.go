package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/playerregistry/internal/dependencies/clock"
	"github.com/mcoot/playerregistry/internal/seed"
)

func newPlayersSeedCmd() *cobra.Command {
	var (
		count     int
		seedValue uint64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create randomly generated players",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 0 {
				return errors.New("--count must not be negative")
			}

			gen := seed.New(clock.New(), seedValue)
			created, err := seed.Populate(cmd.Context(), client, gen, count)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage(fmt.Sprintf("Created %d players (seed %d)", created, gen.Seed()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 10, "Number of players to create")
	cmd.Flags().Uint64Var(&seedValue, "seed", 0, "Random seed (0 picks one)")

	return cmd
}
