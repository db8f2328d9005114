package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/voicetodo/voicetodo/internal/client"
)

// cliConfig represents the ~/.config/voicetodo/config.toml file.
type cliConfig struct {
	// ServerURL is the base URL of the VoiceTodo server.
	ServerURL string `toml:"server-url"`

	// Token is the session token issued at login.
	Token string `toml:"token"`
}

func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "voicetodo", "config.toml"), nil
}

// loadConfig reads the config file. A missing file yields an empty config.
func loadConfig() (*cliConfig, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &cliConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg cliConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, nil
}

// newClient resolves the server URL and token from flags, environment
// and the config file, in that order of precedence.
func newClient() (*client.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	server := flagServer
	if server == "" {
		server = os.Getenv("VOICETODO_SERVER")
	}
	if server == "" {
		server = cfg.ServerURL
	}
	if server == "" {
		return nil, errors.New("no server configured: set server-url in the config file, VOICETODO_SERVER, or --server")
	}

	token := flagToken
	if token == "" {
		token = os.Getenv("VOICETODO_TOKEN")
	}
	if token == "" {
		token = cfg.Token
	}
	if token == "" {
		return nil, errors.New("no session token configured: log in via the server's /auth/login flow and store the token in the config file or VOICETODO_TOKEN")
	}

	return client.New(server, token), nil
}
