// Package config handles persistent user configuration for codellm.
// The API key itself is never written to disk; it comes from the
// GROQ_API_KEY environment variable or a command-line flag.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kss0704/codellm/internal/models"
)

// APIKeyEnvVar is the environment variable holding the Groq credential.
const APIKeyEnvVar = "GROQ_API_KEY"

// MarkdownConfig configures markdown rendering options.
type MarkdownConfig struct {
	Style            string `json:"style"`             // "dark", "light", or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji"`      // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"` // Preserve original line breaks
}

// Config represents the user configuration.
type Config struct {
	DefaultModel    string         `json:"default_model"`
	Temperature     float64        `json:"temperature"`
	MaxTokens       int            `json:"max_tokens"`
	CopyToClipboard bool           `json:"copy_to_clipboard"`
	Markdown        MarkdownConfig `json:"markdown,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration.
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		DefaultModel:    models.DefaultModel.ID,
		Temperature:     models.DefaultTemperature,
		MaxTokens:       models.DefaultMaxTokens,
		CopyToClipboard: false,
		Markdown:        DefaultMarkdownConfig(),
	}
}

// Normalize clamps parameters into their valid ranges and replaces
// unknown model names with the default.
func (c Config) Normalize() Config {
	c.Temperature = models.ClampTemperature(c.Temperature)
	c.MaxTokens = models.ClampMaxTokens(c.MaxTokens)
	if !models.IsKnownModel(c.DefaultModel) {
		c.DefaultModel = models.DefaultModel.ID
	}
	if c.Markdown.Style == "" {
		c.Markdown.Style = DefaultMarkdownConfig().Style
	}
	return c
}

// GetConfigDir returns the configuration directory path.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".codellm"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist.
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return configDir, nil
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// LoadConfig loads the configuration from disk, falling back to
// defaults when no config file exists.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg.Normalize(), nil
}

// SaveConfig saves the configuration to disk.
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg.Normalize(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := filepath.Join(configDir, "config.json")
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// APIKey resolves the credential: the flag value when set, else the
// environment variable.
func APIKey(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(APIKeyEnvVar)
}
