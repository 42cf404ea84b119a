// Package tampcli holds the tampctl command's configuration loading, kept
// separate from cmd/tampctl so it can be unit tested without a main
// package in the way.
package tampcli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config is tampctl's on-disk configuration.
type Config struct {
	Codec struct {
		WindowBits          int  `toml:"window_bits"`
		LiteralBits         int  `toml:"literal_bits"`
		UseCustomDictionary bool `toml:"use_custom_dictionary"`
	} `toml:"codec"`

	Stream struct {
		BufferSize int  `toml:"buffer_size"`
		Verbose    bool `toml:"verbose"`
	} `toml:"stream"`
}

// DefaultConfig returns tampctl's built-in defaults, matching tamp.DefaultConf.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Codec.WindowBits = 10
	cfg.Codec.LiteralBits = 8
	cfg.Codec.UseCustomDictionary = false
	cfg.Stream.BufferSize = 4096
	cfg.Stream.Verbose = false
	return cfg
}

// ConfigPath returns the platform-specific config file path.
func ConfigPath() string {
	var dir string
	switch runtime.GOOS {
	case "windows":
		dir = os.Getenv("APPDATA")
		if dir == "" {
			dir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		dir = filepath.Join(dir, "tampctl")
	case "darwin", "linux":
		home, err := os.UserHomeDir()
		if err != nil {
			return "tampctl.toml"
		}
		dir = filepath.Join(home, ".config", "tampctl")
	default:
		return "tampctl.toml"
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "tampctl.toml"
	}
	return filepath.Join(dir, "tampctl.toml")
}

// Load reads configuration from path, falling back to DefaultConfig if the
// file doesn't exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}
