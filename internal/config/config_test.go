package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/kss0704/codellm/internal/models"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DefaultModel != models.DefaultModel.ID {
		t.Errorf("DefaultModel = %q, want %q", cfg.DefaultModel, models.DefaultModel.ID)
	}
	if cfg.Temperature != models.DefaultTemperature {
		t.Errorf("Temperature = %v, want %v", cfg.Temperature, models.DefaultTemperature)
	}
	if cfg.MaxTokens != models.DefaultMaxTokens {
		t.Errorf("MaxTokens = %d, want %d", cfg.MaxTokens, models.DefaultMaxTokens)
	}
	if cfg.CopyToClipboard {
		t.Error("CopyToClipboard default = true, want false")
	}
	if cfg.Markdown.Style != "dark" {
		t.Errorf("Markdown.Style = %q, want %q", cfg.Markdown.Style, "dark")
	}
}

func TestNormalize(t *testing.T) {
	cfg := Config{
		DefaultModel: "no-such-model",
		Temperature:  3.0,
		MaxTokens:    -5,
	}.Normalize()

	if cfg.DefaultModel != models.DefaultModel.ID {
		t.Errorf("DefaultModel = %q, want default", cfg.DefaultModel)
	}
	if cfg.Temperature != models.MaxTemperature {
		t.Errorf("Temperature = %v, want clamped %v", cfg.Temperature, models.MaxTemperature)
	}
	if cfg.MaxTokens != models.MinMaxTokens {
		t.Errorf("MaxTokens = %d, want clamped %d", cfg.MaxTokens, models.MinMaxTokens)
	}
	if cfg.Markdown.Style == "" {
		t.Error("Normalize() left Markdown.Style empty")
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if !filepath.IsAbs(path) {
		t.Errorf("GetConfigPath() = %q, want absolute path", path)
	}
	if filepath.Base(path) != "config.json" {
		t.Errorf("GetConfigPath() = %q, want config.json file", path)
	}
	if filepath.Base(filepath.Dir(path)) != ".codellm" {
		t.Errorf("GetConfigPath() = %q, want .codellm directory", path)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.DefaultModel != models.DefaultModel.ID {
		t.Errorf("missing file should yield defaults, got model %q", cfg.DefaultModel)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.DefaultModel = models.ModelMixtral.ID
	cfg.Temperature = 0.7
	cfg.CopyToClipboard = true

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if loaded.DefaultModel != models.ModelMixtral.ID {
		t.Errorf("DefaultModel = %q, want %q", loaded.DefaultModel, models.ModelMixtral.ID)
	}
	if loaded.Temperature != 0.7 {
		t.Errorf("Temperature = %v, want 0.7", loaded.Temperature)
	}
	if !loaded.CopyToClipboard {
		t.Error("CopyToClipboard = false, want true")
	}

	// Config file must not be world-readable.
	path, _ := GetConfigPath()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config file mode = %o, want 600", perm)
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".codellm")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Error("LoadConfig() with corrupt file returned no error")
	}
	// Corrupt files still yield usable defaults.
	if cfg.DefaultModel != models.DefaultModel.ID {
		t.Errorf("fallback DefaultModel = %q, want default", cfg.DefaultModel)
	}
}

func TestLoadConfig_NormalizesOnLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	raw := map[string]any{
		"default_model": "bogus",
		"temperature":   9.0,
		"max_tokens":    10,
	}
	data, _ := json.Marshal(raw)

	dir := filepath.Join(home, ".codellm")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.DefaultModel != models.DefaultModel.ID {
		t.Errorf("DefaultModel = %q, want default", cfg.DefaultModel)
	}
	if cfg.Temperature != models.MaxTemperature {
		t.Errorf("Temperature = %v, want clamped", cfg.Temperature)
	}
	if cfg.MaxTokens != models.MinMaxTokens {
		t.Errorf("MaxTokens = %d, want clamped", cfg.MaxTokens)
	}
}

func TestAPIKey(t *testing.T) {
	t.Setenv(APIKeyEnvVar, "env-key")

	if got := APIKey("flag-key"); got != "flag-key" {
		t.Errorf("APIKey(flag) = %q, want flag value", got)
	}
	if got := APIKey(""); got != "env-key" {
		t.Errorf("APIKey() = %q, want env value", got)
	}

	t.Setenv(APIKeyEnvVar, "")
	if got := APIKey(""); got != "" {
		t.Errorf("APIKey() with nothing set = %q, want empty", got)
	}
}
