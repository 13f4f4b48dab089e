package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Server      ServerConfig      `toml:"server"`
	Session     SessionConfig     `toml:"session"`
}

// CredentialsConfig contains provider-specific credentials.
type CredentialsConfig struct {
	LinkedIn LinkedInConfig `toml:"linkedin"`
	Gemini   GeminiConfig   `toml:"gemini"`
}

// LinkedInConfig contains LinkedIn OAuth application credentials.
type LinkedInConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
}

// Map returns the credential map the LinkedIn service constructor expects.
func (c LinkedInConfig) Map() map[string]string {
	return map[string]string{
		"client_id":     c.ClientID,
		"client_secret": c.ClientSecret,
		"redirect_uri":  c.RedirectURI,
	}
}

// GeminiConfig contains Gemini API settings. Drafting features are
// disabled when the API key is empty.
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// Map returns the credential map the Gemini service constructor expects.
func (c GeminiConfig) Map() map[string]string {
	return map[string]string{
		"api_key": c.APIKey,
		"model":   c.Model,
	}
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// SessionConfig contains session cookie and token store settings.
//
// Store selects the token store backend, either "memory" (default) or
// "sqlite". TTLHours bounds the lifetime of issued session cookies.
type SessionConfig struct {
	Secret   string `toml:"secret"`
	Store    string `toml:"store"`
	TTLHours int    `toml:"ttl_hours"`
}

// envOverrides mirrors the environment variables that take precedence
// over file values. Unset variables leave the file values untouched.
type envOverrides struct {
	LinkedInClientID     string `env:"LINKEDIN_CLIENT_ID"`
	LinkedInClientSecret string `env:"LINKEDIN_CLIENT_SECRET"`
	LinkedInRedirectURI  string `env:"LINKEDIN_REDIRECT_URI"`
	GeminiAPIKey         string `env:"GEMINI_API_KEY"`
	GeminiModel          string `env:"GEMINI_MODEL"`
	SessionSecret        string `env:"LIX_SESSION_SECRET"`
	ServerHost           string `env:"LIX_SERVER_HOST"`
	ServerPort           int    `env:"LIX_SERVER_PORT"`
	DatabasePath         string `env:"LIX_DATABASE_PATH"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// ResolveConfig loads configuration from path, or the embedded defaults when
// path is empty, then applies environment variable overrides on top.
func ResolveConfig(path string) (*Config, error) {
	var config *Config
	if path == "" {
		config = DefaultConfig()
	} else {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}

	return config, nil
}

// ApplyEnv overlays environment variables onto the config. Variables that are
// set win over file values.
func (c *Config) ApplyEnv() error {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if overrides.LinkedInClientID != "" {
		c.Credentials.LinkedIn.ClientID = overrides.LinkedInClientID
	}
	if overrides.LinkedInClientSecret != "" {
		c.Credentials.LinkedIn.ClientSecret = overrides.LinkedInClientSecret
	}
	if overrides.LinkedInRedirectURI != "" {
		c.Credentials.LinkedIn.RedirectURI = overrides.LinkedInRedirectURI
	}
	if overrides.GeminiAPIKey != "" {
		c.Credentials.Gemini.APIKey = overrides.GeminiAPIKey
	}
	if overrides.GeminiModel != "" {
		c.Credentials.Gemini.Model = overrides.GeminiModel
	}
	if overrides.SessionSecret != "" {
		c.Session.Secret = overrides.SessionSecret
	}
	if overrides.ServerHost != "" {
		c.Server.Host = overrides.ServerHost
	}
	if overrides.ServerPort != 0 {
		c.Server.Port = overrides.ServerPort
	}
	if overrides.DatabasePath != "" {
		c.Database.Path = overrides.DatabasePath
	}

	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
