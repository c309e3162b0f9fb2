package userconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/labshare-dev/labshare/internal/api"
)

const (
	configDirName  = "labshare"
	configFileName = "config.json"
)

// UserConfig represents the user's local configuration stored in ~/.config/labshare/config.json
type UserConfig struct {
	SelectedServer string `json:"selected_server"`
	// Profiles caches the user block returned at login, keyed by server URL
	Profiles map[string]api.Profile `json:"profiles,omitempty"`
}

// GetConfigPath returns the path to the user config file
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", configDirName)
	return filepath.Join(configDir, configFileName), nil
}

// Load reads the user configuration file
func Load() (*UserConfig, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &UserConfig{}, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read user config file: %w", err)
	}

	var cfg UserConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse user config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the user configuration to a file
func Save(cfg *UserConfig) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	// Profiles carry personal data, keep the file private.
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write user config file: %w", err)
	}

	return nil
}

// SetSelectedServer updates the selected server URL and saves the config
func SetSelectedServer(serverURL string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	cfg.SelectedServer = serverURL
	return Save(cfg)
}

// GetSelectedServer returns the selected server URL, or empty string if not set
func GetSelectedServer() (string, error) {
	cfg, err := Load()
	if err != nil {
		return "", err
	}

	return cfg.SelectedServer, nil
}

// SaveProfile caches the logged-in user's profile for serverURL
func SaveProfile(serverURL string, profile api.Profile) error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]api.Profile)
	}
	cfg.Profiles[profileKey(serverURL)] = profile
	return Save(cfg)
}

// LoadProfile returns the cached profile for serverURL, or nil if none is cached
func LoadProfile(serverURL string) (*api.Profile, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	profile, ok := cfg.Profiles[profileKey(serverURL)]
	if !ok {
		return nil, nil
	}
	return &profile, nil
}

// ClearProfile forgets the cached profile for serverURL
func ClearProfile(serverURL string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	key := profileKey(serverURL)
	if _, ok := cfg.Profiles[key]; !ok {
		return nil
	}
	delete(cfg.Profiles, key)
	return Save(cfg)
}

func profileKey(serverURL string) string {
	return strings.TrimRight(serverURL, "/")
}
