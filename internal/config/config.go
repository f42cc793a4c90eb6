// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/legalia/legalia-tui/internal/model"
)

// Environment variable overrides. Applied after the file, before
// validation.
const (
	EnvServerURL    = "LEGALIA_SERVER_URL"
	EnvGroqAPIToken = "LEGALIA_GROQ_API_TOKEN"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete client configuration.
type Config struct {
	// Server is where the backend lives.
	Server ServerConfig `toml:"server"`

	// Model holds the language-model parameters that ride on every chat
	// and generation request.
	Model ModelConfig `toml:"model"`

	// Session configures the session guard.
	Session SessionConfig `toml:"session"`

	// UI holds presentation settings.
	UI UIConfig `toml:"ui"`
}

// ServerConfig points the client at a backend.
type ServerConfig struct {
	// URL is the backend base URL.
	URL string `toml:"url"`
}

// ModelConfig selects the model and its parameters.
type ModelConfig struct {
	// Provider is "local" or "groq". Groq requires an API token; the
	// backend routes on the token's presence.
	Provider string `toml:"provider"`

	// LocalModel and GroqModel are remembered independently so toggling
	// the provider restores the last pick on each side.
	LocalModel string `toml:"local_model"`
	GroqModel  string `toml:"groq_model"`

	// Temperature is clamped to [0, 1] by validation.
	Temperature float64 `toml:"temperature"`

	// GroqAPIToken is sent to the backend with Groq requests.
	GroqAPIToken string `toml:"groq_api_token"`
}

// SessionConfig configures the idle timeout.
type SessionConfig struct {
	// TimeoutMins is the idle timeout in minutes.
	TimeoutMins int `toml:"timeout_mins"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// Theme is "dark" or "light".
	Theme string `toml:"theme"`

	// ShowSources expands source documents under assistant replies.
	ShowSources bool `toml:"show_sources"`
}

// ActiveModel returns the model name for the configured provider.
func (c *Config) ActiveModel() string {
	if c.Model.Provider == string(model.ProviderGroq) {
		return c.Model.GroqModel
	}
	return c.Model.LocalModel
}

// GroqToken returns the token to send, nil for local requests. The
// backend treats a present token as "use Groq".
func (c *Config) GroqToken() *string {
	if c.Model.Provider != string(model.ProviderGroq) || c.Model.GroqAPIToken == "" {
		return nil
	}
	tok := c.Model.GroqAPIToken
	return &tok
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL: "http://localhost:5000",
		},
		Model: ModelConfig{
			Provider:    string(model.ProviderLocal),
			LocalModel:  model.DefaultLocalModel,
			GroqModel:   model.DefaultGroqModel,
			Temperature: model.DefaultTemperature,
		},
		Session: SessionConfig{
			TimeoutMins: 15,
		},
		UI: UIConfig{
			Theme:       "dark",
			ShowSources: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// Dir returns the LEGALIA configuration directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".legalia"), nil
}

// Path returns the path to the TOML config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureDir ensures the config directory exists.
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o700)
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads the config file, applies environment overrides, and
// validates. A missing file is not an error; defaults apply.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from an explicit path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvOverrides applies environment variables over the loaded file.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv(EnvServerURL); v != "" {
		c.Server.URL = v
	}
	if v := os.Getenv(EnvGroqAPIToken); v != "" {
		c.Model.GroqAPIToken = v
	}
}

// Save writes the configuration to the default path.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveToPath(cfg, path)
}

// SaveToPath writes the configuration as TOML.
// SECURITY: 0600 because the file can carry the Groq API token.
func SaveToPath(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	fmt.Fprintln(file, "# LEGALIA client configuration")
	fmt.Fprintln(file, "")

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError is one rejected configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// Validate checks the configuration, clamping what can be clamped and
// rejecting what cannot.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.Server.URL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "server.url",
			Message: fmt.Sprintf("%q is not an absolute URL", c.Server.URL),
		})
	}

	switch model.Provider(c.Model.Provider) {
	case model.ProviderLocal, model.ProviderGroq:
	default:
		errs = append(errs, ValidationError{
			Field:   "model.provider",
			Message: fmt.Sprintf("%q is not one of local, groq", c.Model.Provider),
		})
	}

	if !model.ValidModel(model.ProviderLocal, c.Model.LocalModel) {
		errs = append(errs, ValidationError{
			Field:   "model.local_model",
			Message: fmt.Sprintf("unknown local model %q", c.Model.LocalModel),
		})
	}
	if !model.ValidModel(model.ProviderGroq, c.Model.GroqModel) {
		errs = append(errs, ValidationError{
			Field:   "model.groq_model",
			Message: fmt.Sprintf("unknown Groq model %q", c.Model.GroqModel),
		})
	}

	// Temperature is clamped, not rejected; every value between the
	// bounds is meaningful.
	if c.Model.Temperature < 0 {
		c.Model.Temperature = 0
	}
	if c.Model.Temperature > 1 {
		c.Model.Temperature = 1
	}

	if c.Session.TimeoutMins <= 0 {
		c.Session.TimeoutMins = Default().Session.TimeoutMins
	}

	if c.UI.Theme != "dark" && c.UI.Theme != "light" {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("%q is not one of dark, light", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
