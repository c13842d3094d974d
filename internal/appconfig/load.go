package appconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var logLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"error": true,
}

// Load reads configuration from the provided path. If path is empty, uses
// DefaultConfigPath. A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("viewer.tab_stop", cfg.Viewer.TabStop)
	v.SetDefault("viewer.welcome", cfg.Viewer.Welcome)
	v.SetDefault("terminal.read_timeout_deciseconds", cfg.Terminal.ReadTimeout)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)

	configLoaded := false
	if err := v.ReadInConfig(); err != nil {
		if !isNotFound(err) {
			return Config{}, err
		}
	} else {
		configLoaded = true
	}

	if configLoaded {
		if !v.IsSet("config_version") {
			return Config{}, fmt.Errorf("config_version is required; expected %d", CurrentConfigVersion)
		}
		if v.GetInt("config_version") != CurrentConfigVersion {
			return Config{}, fmt.Errorf("unsupported config_version %d; expected %d", v.GetInt("config_version"), CurrentConfigVersion)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Logging.File = expandEnv(cfg.Logging.File)
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func isNotFound(err error) bool {
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return true
	}
	// SetConfigFile reports a missing explicit path as a plain fs error.
	return os.IsNotExist(err)
}

// Validate reports the first out-of-range setting.
func Validate(cfg Config) error {
	if cfg.Viewer.TabStop < 1 || cfg.Viewer.TabStop > 16 {
		return fmt.Errorf("viewer.tab_stop must be between 1 and 16, got %d", cfg.Viewer.TabStop)
	}
	if cfg.Terminal.ReadTimeout < 1 || cfg.Terminal.ReadTimeout > 255 {
		return fmt.Errorf("terminal.read_timeout_deciseconds must be between 1 and 255, got %d", cfg.Terminal.ReadTimeout)
	}
	if !logLevels[cfg.Logging.Level] {
		return fmt.Errorf("unsupported logging.level %q", cfg.Logging.Level)
	}
	return nil
}

func expandEnv(value string) string {
	if value == "" {
		return value
	}
	value = os.Expand(value, func(key string) string {
		if val, ok := os.LookupEnv(key); ok {
			return val
		}
		return "$" + key
	})
	if value == "~" || strings.HasPrefix(value, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			value = filepath.Join(home, strings.TrimPrefix(value, "~"))
		}
	}
	return value
}

// WriteDefault writes the default config to the target path.
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s", path)
		}
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
