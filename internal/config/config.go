package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/raphi011/courses/internal/remote"
	"github.com/raphi011/courses/internal/store"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "COURSES"

// Defaults for an empty configuration.
const (
	DefaultBaseURL      = "https://mc-dev-5.herokuapp.com"
	DefaultDataDir      = "~/.courses"
	DefaultDrainTimeout = 5 * time.Second
)

// StoreConfig selects the local cache backend.
type StoreConfig struct {
	Backend string `toml:"backend" envconfig:"BACKEND" validate:"oneof=json sqlite memory"`
	DataDir string `toml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
}

// ValidThemeNames lists the accepted theme.name values.
var ValidThemeNames = []string{"none", "default", "dracula", "nord"}

// ThemeConfig selects UI colors and symbols.
type ThemeConfig struct {
	Name  string `toml:"name,omitempty" envconfig:"NAME" validate:"omitempty,oneof=none default dracula nord"`
	Mode  string `toml:"mode,omitempty" envconfig:"MODE" validate:"omitempty,oneof=auto light dark"`
	ASCII bool   `toml:"ascii,omitempty" envconfig:"ASCII"` // plain * instead of stars
}

// Config holds the courses configuration
type Config struct {
	BaseURL      string        `toml:"base_url" envconfig:"BASE_URL" validate:"required,url"`
	Email        string        `toml:"email" envconfig:"EMAIL" validate:"omitempty,email"`
	Timeout      time.Duration `toml:"timeout" envconfig:"TIMEOUT" validate:"gt=0"`
	DrainTimeout time.Duration `toml:"drain_timeout" envconfig:"DRAIN_TIMEOUT" validate:"gte=0"` // 0 waits without bound
	CoursesPath  string        `toml:"courses_path,omitempty" envconfig:"COURSES_PATH" validate:"omitempty,startswith=/"`
	FavoritePath string        `toml:"favorite_path,omitempty" envconfig:"FAVORITE_PATH" validate:"omitempty,startswith=/"`
	Store        StoreConfig   `toml:"store" envconfig:"STORE"`
	Theme        ThemeConfig   `toml:"theme" envconfig:"THEME"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		BaseURL:      DefaultBaseURL,
		Timeout:      remote.DefaultTimeout,
		DrainTimeout: DefaultDrainTimeout,
		Store: StoreConfig{
			Backend: store.BackendJSON,
			DataDir: DefaultDataDir,
		},
	}
}

// Remote returns the remote client configuration.
func (c *Config) Remote() remote.Config {
	return remote.Config{
		BaseURL:      c.BaseURL,
		Email:        c.Email,
		Timeout:      c.Timeout,
		CoursesPath:  c.CoursesPath,
		FavoritePath: c.FavoritePath,
	}
}

// RequireIdentity returns an error if no caller identity is configured.
func (c *Config) RequireIdentity() error {
	if c.Email == "" {
		return fmt.Errorf("email not configured: set email in %s or %s_EMAIL", displayPath(), EnvPrefix)
	}
	return nil
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Path returns the path to the config file
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "courses", "config.toml"), nil
}

func displayPath() string {
	if p, err := Path(); err == nil {
		return p
	}
	return "config.toml"
}

// Load reads config from ~/.config/courses/config.toml, .env and COURSES_*
// variables. Returns Default() if nothing is configured (no error).
// Returns an error only if a source exists but is invalid.
func Load() (Config, error) {
	// A missing .env is the common case.
	_ = godotenv.Load()

	path, err := Path()
	if err != nil {
		return LoadFile("")
	}
	return LoadFile(path)
}

// LoadFile reads config from path (skipped when empty or missing), applies
// environment overrides, validates and expands paths.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Default(), fmt.Errorf("failed to read config file: %w", err)
		default:
			if _, err := toml.Decode(string(data), &cfg); err != nil {
				return Default(), fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to read environment: %w", err)
	}

	// Use defaults for values cleared by the file
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = store.BackendJSON
	}
	if cfg.Store.DataDir == "" {
		cfg.Store.DataDir = DefaultDataDir
	}

	if err := ValidatePath(cfg.Store.DataDir, "store.data_dir"); err != nil {
		return Default(), err
	}
	if err := Validate(&cfg); err != nil {
		return Default(), err
	}

	expanded, err := expandPath(cfg.Store.DataDir)
	if err != nil {
		return Default(), fmt.Errorf("expand store.data_dir: %w", err)
	}
	cfg.Store.DataDir = expanded

	return cfg, nil
}

// Write encodes cfg as TOML.
func Write(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}
