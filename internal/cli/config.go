package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config defaults
const (
	DefaultServerURL = "http://localhost:8080"
	envPrefix        = "PLAYERCTL"
	configFileName   = ".playerctl.yaml"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Token     string
	Output    string
	Verbose   bool
}

// newViper creates the viper instance that merges flags, PLAYERCTL_*
// environment variables and the optional config file
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("server", DefaultServerURL)
	v.SetDefault("output", "text")
	return v
}

// loadConfig reads the config file (explicit path, or ~/.playerctl.yaml
// when present) and resolves the final settings
func loadConfig(v *viper.Viper, configFile string) (*Config, error) {
	if configFile == "" {
		if path := defaultConfigFile(); path != "" {
			if _, err := os.Stat(path); err == nil {
				configFile = path
			}
		}
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	c := &Config{
		ServerURL: v.GetString("server"),
		Token:     strings.TrimSpace(v.GetString("token")),
		Output:    v.GetString("output"),
		Verbose:   v.GetBool("verbose"),
	}
	if c.Output != "text" && c.Output != "json" {
		return nil, fmt.Errorf("unknown output format %q: must be text or json", c.Output)
	}
	return c, nil
}

func defaultConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configFileName)
}
