package appconfig

import (
	"os"
	"path/filepath"
)

// Config is the top-level viewer configuration.
type Config struct {
	ConfigVersion int            `mapstructure:"config_version" yaml:"config_version"`
	Viewer        ViewerConfig   `mapstructure:"viewer" yaml:"viewer"`
	Terminal      TerminalConfig `mapstructure:"terminal" yaml:"terminal"`
	Logging       LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// ViewerConfig controls buffer loading and the empty-screen banner.
type ViewerConfig struct {
	TabStop int    `mapstructure:"tab_stop" yaml:"tab_stop"`
	Welcome string `mapstructure:"welcome" yaml:"welcome"`
}

// TerminalConfig controls raw-mode input.
type TerminalConfig struct {
	ReadTimeout int `mapstructure:"read_timeout_deciseconds" yaml:"read_timeout_deciseconds"`
}

// LoggingConfig controls the session log. An empty File discards logs since
// the terminal is owned by the viewer while it runs.
type LoggingConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ConfigVersion: CurrentConfigVersion,
		Viewer: ViewerConfig{
			TabStop: 4,
			Welcome: "",
		},
		Terminal: TerminalConfig{
			ReadTimeout: 1,
		},
		Logging: LoggingConfig{
			File:  "",
			Level: "info",
		},
	}
}

// DefaultConfigPath returns the standard config path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".termview", "config.yaml"), nil
}
