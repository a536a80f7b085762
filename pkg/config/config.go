package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	// Origin is the address the chat page is served from. Endpoints are
	// derived from it unless ChatEndpoint is set.
	Origin          string        `json:"origin" env:"CPMONK_ORIGIN"`
	DevPort         int           `json:"dev_port" env:"CPMONK_DEV_PORT"`
	Legacy          bool          `json:"legacy" env:"CPMONK_LEGACY"`
	ChatEndpoint    string        `json:"chat_endpoint,omitempty" env:"CPMONK_CHAT_ENDPOINT"`
	ResetEndpoint   string        `json:"reset_endpoint,omitempty" env:"CPMONK_RESET_ENDPOINT"`
	SessionAffinity bool          `json:"session_affinity" env:"CPMONK_SESSION_AFFINITY"`
	TimeoutSeconds  int           `json:"timeout_seconds" env:"CPMONK_TIMEOUT_SECONDS"`
	Service         ServiceConfig `json:"service"`
	LogLevel        string        `json:"log_level" env:"CPMONK_LOG_LEVEL"`
	LogFormat       string        `json:"log_format" env:"CPMONK_LOG_FORMAT"`
	LogFile         string        `json:"log_file,omitempty" env:"CPMONK_LOG_FILE"`
}

// ServiceConfig holds the names and contact links shown in friendly error messages
type ServiceConfig struct {
	Name         string `json:"name" env:"CPMONK_SERVICE_NAME"`
	ContactURL   string `json:"contact_url" env:"CPMONK_CONTACT_URL"`
	ContactEmail string `json:"contact_email" env:"CPMONK_CONTACT_EMAIL"`
}

// Default returns a configuration with default values
func Default() Config {
	return Config{
		Origin:          "http://localhost",
		DevPort:         5000,
		Legacy:          false,
		SessionAffinity: true,
		TimeoutSeconds:  60,
		Service: ServiceConfig{
			Name:         "CP Monk",
			ContactURL:   "https://cyberpunkmonk.com/contact",
			ContactEmail: "hello@cyberpunkmonk.com",
		},
		LogLevel:  "info",
		LogFormat: "json",
	}
}

// Load loads configuration from the specified path.
// If the file doesn't exist, creates one with default values.
// Environment overrides (CPMONK_*, optionally from a .env file) are applied last.
func Load(configPath string) (Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return Config{}, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := Default()

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
		if err := Save(configPath, cfg); err != nil {
			return Config{}, fmt.Errorf("failed to create default config: %w", err)
		}
	case err != nil:
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	default:
		// Unmarshal over the defaults so keys missing from older files keep their default
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ApplyEnv overlays CPMONK_* environment variables onto cfg.
// A .env file in the working directory is read first when present.
func ApplyEnv(cfg *Config) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// Save saves the configuration to the specified path
func Save(configPath string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	if strings.TrimSpace(c.ChatEndpoint) == "" {
		if err := validateHTTPURL("origin", c.Origin); err != nil {
			return err
		}
	} else if err := validateHTTPURL("chat_endpoint", c.ChatEndpoint); err != nil {
		return err
	}

	if c.ResetEndpoint != "" {
		if err := validateHTTPURL("reset_endpoint", c.ResetEndpoint); err != nil {
			return err
		}
	}

	if c.DevPort <= 0 || c.DevPort > 65535 {
		return fmt.Errorf("dev_port must be between 1 and 65535, got: %d", c.DevPort)
	}

	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got: %d", c.TimeoutSeconds)
	}

	if strings.TrimSpace(c.Service.Name) == "" {
		return fmt.Errorf("service.name is required")
	}

	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}

	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "", "json", "text":
	default:
		return fmt.Errorf("invalid log_format: %s", c.LogFormat)
	}

	return nil
}

func validateHTTPURL(field, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got: %q", field, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s must include a host, got: %q", field, raw)
	}
	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".cpmonk/config.json"
	}
	return filepath.Join(homeDir, ".cpmonk", "config.json")
}
