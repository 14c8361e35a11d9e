package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	appName   = "authordir"
	envPrefix = "AUTHORDIR_"

	// DefaultBaseURL is the public placeholder API.
	DefaultBaseURL = "https://jsonplaceholder.typicode.com"
	DefaultTimeout = 10 * time.Second
)

// Config holds application-level configuration.
type Config struct {
	BaseURL     string        `yaml:"base_url" koanf:"base_url"`
	Timeout     time.Duration `yaml:"timeout" koanf:"timeout"`
	LogFile     string        `yaml:"log_file" koanf:"log_file"`
	LogLevel    string        `yaml:"log_level" koanf:"log_level"`
	UIStatePath string        `yaml:"ui_state_path" koanf:"ui_state_path"`
}

// Default returns the configuration used when nothing overrides it.
// Log and UI state files live under $XDG_STATE_HOME/authordir.
func Default() Config {
	dir := stateDir()
	return Config{
		BaseURL:     DefaultBaseURL,
		Timeout:     DefaultTimeout,
		LogFile:     filepath.Join(dir, appName+".log"),
		LogLevel:    "info",
		UIStatePath: filepath.Join(dir, "ui_state.yaml"),
	}
}

// DefaultPath returns ~/.config/authordir/config.yaml, honoring
// XDG_CONFIG_HOME.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName, "config.yaml")
}

func stateDir() string {
	if d := os.Getenv("XDG_STATE_HOME"); d != "" {
		return filepath.Join(d, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".local", "state", appName)
}

// Load reads configuration from the YAML file at path, if it exists, then
// overlays environment variable overrides.
//
//	AUTHORDIR_BASE_URL       placeholder API root (default: jsonplaceholder)
//	AUTHORDIR_TIMEOUT        per-request timeout, e.g. "5s"
//	AUTHORDIR_LOG_FILE       log destination
//	AUTHORDIR_LOG_LEVEL      debug, info, warn or error
//	AUTHORDIR_UI_STATE_PATH  where the last selected author is kept
func Load(path string) (Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration and normalizes the base URL.
func (c *Config) Validate() error {
	parsed, err := url.Parse(strings.TrimSpace(c.BaseURL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid base_url %q: must be an absolute URL", c.BaseURL)
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return fmt.Errorf("invalid base_url %q: only http and https are allowed", c.BaseURL)
	}
	c.BaseURL = strings.TrimRight(parsed.String(), "/")

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel. An empty level means info.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
