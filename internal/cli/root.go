package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	v := newViper()
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "playerctl",
		Short: "CLI tool for the player registry API",
		Long: `playerctl is a CLI tool for interacting with the player registry JSON API.

It supports listing, counting and filtering players, single-player CRUD,
bulk import from YAML and seeding a server with generated players.

Settings are read from flags, PLAYERCTL_* environment variables and
~/.playerctl.yaml, in that order of precedence.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfig(v, configFile)
			if err != nil {
				return err
			}
			cfg = loaded
			client = NewClient(cfg.ServerURL, cfg.Token)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file (default ~/.playerctl.yaml)")
	flags.String("server", DefaultServerURL, "Server URL (env: PLAYERCTL_SERVER)")
	flags.String("token", "", "Admin token for mutating requests (env: PLAYERCTL_TOKEN)")
	flags.StringP("output", "o", "text", "Output format: text, json")
	flags.BoolP("verbose", "v", false, "Verbose output")
	for _, name := range []string{"server", "token", "output", "verbose"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	// Add subcommands
	rootCmd.AddCommand(newPlayersCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newHashTokenCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
