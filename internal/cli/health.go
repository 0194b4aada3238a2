package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the server is up",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			result, err := client.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s: %w", cfg.ServerURL, err)
			}

			if cfg.Verbose {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s answered in %s\n", cfg.ServerURL, time.Since(start).Round(time.Millisecond))
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
