package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

const ConfigFileName = "labshare.json"

// Server is one platform deployment the CLI can talk to
type Server struct {
	Alias string `json:"alias" validate:"required"`
	// URL is the API base including its prefix, e.g. http://host:8000/api/v1
	URL string `json:"url" validate:"required,url"`
	// Console is the web console address; derived from URL when empty
	Console string `json:"console,omitempty" validate:"omitempty,url"`
}

// ConsoleURL returns where the web console for this server lives
func (s *Server) ConsoleURL() string {
	if s.Console != "" {
		return strings.TrimRight(s.Console, "/")
	}
	base := strings.TrimRight(s.URL, "/")
	return strings.TrimSuffix(base, "/api/v1")
}

// Config represents the CLI configuration file
type Config struct {
	Servers []Server `json:"servers" validate:"dive"`
}

var validate = validator.New()

// Validate checks every server entry and rejects duplicate aliases
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid %s: failed '%s' check", fe.Namespace(), fe.Tag())
		}
		return err
	}

	seen := make(map[string]bool, len(c.Servers))
	for _, s := range c.Servers {
		if seen[s.Alias] {
			return fmt.Errorf("duplicate server alias '%s'", s.Alias)
		}
		seen[s.Alias] = true
	}
	return nil
}

// FindConfigFile searches for labshare.json in current directory and parent directories
func FindConfigFile() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	dir := currentDir
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%s not found in %s or any parent directory", ConfigFileName, currentDir)
}

// Load reads and validates the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &cfg, nil
}

// LoadFromCurrentDir loads config from current directory or parent directories
func LoadFromCurrentDir() (*Config, error) {
	configPath, err := FindConfigFile()
	if err != nil {
		return nil, err
	}

	return Load(configPath)
}

// Save writes the configuration to a file
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetServerByAlias returns a server by its alias
func (c *Config) GetServerByAlias(alias string) (*Server, error) {
	for i := range c.Servers {
		if c.Servers[i].Alias == alias {
			return &c.Servers[i], nil
		}
	}
	return nil, fmt.Errorf("server with alias '%s' not found", alias)
}

// GetServerByURL returns a server by its API base URL, ignoring a trailing slash
func (c *Config) GetServerByURL(url string) (*Server, error) {
	want := strings.TrimRight(url, "/")
	for i := range c.Servers {
		if strings.TrimRight(c.Servers[i].URL, "/") == want {
			return &c.Servers[i], nil
		}
	}
	return nil, fmt.Errorf("server with URL '%s' not found", url)
}

// GetDefaultServer returns the first server in the list
func (c *Config) GetDefaultServer() (*Server, error) {
	if len(c.Servers) == 0 {
		return nil, fmt.Errorf("no servers configured in %s", ConfigFileName)
	}
	return &c.Servers[0], nil
}
