// Package config loads client configuration: defaults, then the
// optional YAML config file, then QUIZARENA_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the client needs to reach the platform.
type Config struct {
	API struct {
		// BaseURL is the HTTP API root, including the /api prefix.
		BaseURL string `yaml:"base_url"`
		// Timeout is the per-request HTTP timeout.
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"api"`

	Socket struct {
		// URL is the websocket endpoint for multiplayer rooms.
		URL string `yaml:"url"`
	} `yaml:"socket"`

	Player struct {
		Name   string `yaml:"name"`
		Avatar string `yaml:"avatar"`
	} `yaml:"player"`

	// ClientID is the per-install identifier minted by the local
	// store. It never comes from the config file.
	ClientID string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	var cfg Config
	cfg.API.BaseURL = "http://localhost:5000/api"
	cfg.API.Timeout = 15 * time.Second
	cfg.Socket.URL = "ws://localhost:5000/socket"
	cfg.Player.Name = "Player"
	return cfg
}

// Load builds the effective configuration. A missing config file is
// not an error; a malformed one is.
func Load() (Config, error) {
	cfg := Default()

	path, err := configPath()
	if err == nil {
		data, readErr := os.ReadFile(path)
		switch {
		case readErr == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		case !os.IsNotExist(readErr):
			return cfg, fmt.Errorf("read %s: %w", path, readErr)
		}
	}

	applyEnv(&cfg)

	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = Default().API.Timeout
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("QUIZARENA_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("QUIZARENA_SOCKET_URL"); v != "" {
		cfg.Socket.URL = v
	}
	if v := os.Getenv("QUIZARENA_PLAYER_NAME"); v != "" {
		cfg.Player.Name = v
	}
}

// configPath resolves $XDG_CONFIG_HOME/quizarena/config.yaml, falling
// back to ~/.config.
func configPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "quizarena", "config.yaml"), nil
}
