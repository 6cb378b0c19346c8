package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigurationDefaults(t *testing.T) {
	conf, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.OpenRouter.Model != "deepseek/deepseek-chat" {
		t.Errorf("OpenRouter.Model = %q, expected default", conf.OpenRouter.Model)
	}
	if conf.Granite.Model != "ibm-granite/granite-3.1-8b-instruct" {
		t.Errorf("Granite.Model = %q, expected default", conf.Granite.Model)
	}
	if !conf.Granite.Enabled {
		t.Error("Granite.Enabled = false, expected enabled by default")
	}
	if conf.SystemPrompt != DefaultSystemPrompt {
		t.Errorf("SystemPrompt = %q, expected default", conf.SystemPrompt)
	}
	if conf.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, expected info", conf.Logging.Level)
	}
	if conf.Server.Address != ":8080" {
		t.Errorf("Server.Address = %q, expected :8080", conf.Server.Address)
	}
	if conf.Store.Dir != "assets" {
		t.Errorf("Store.Dir = %q, expected assets", conf.Store.Dir)
	}
}

func TestLoadConfigurationEnvironmentOverrides(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", " or-key ")
	t.Setenv("OPENROUTER_MODEL", "other/model")
	t.Setenv("HF_API_TOKEN", "hf-token")
	t.Setenv("USE_HF_GRANITE", "0")
	t.Setenv("SYS_PROMPT", "custom directive")
	t.Setenv("STORE_DIR", "/tmp/budgetbee-store")

	conf, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.OpenRouter.APIKey != "or-key" {
		t.Errorf("OpenRouter.APIKey = %q, expected trimmed key", conf.OpenRouter.APIKey)
	}
	if conf.OpenRouter.Model != "other/model" {
		t.Errorf("OpenRouter.Model = %q, expected override", conf.OpenRouter.Model)
	}
	if conf.Granite.APIToken != "hf-token" {
		t.Errorf("Granite.APIToken = %q, expected hf-token", conf.Granite.APIToken)
	}
	if conf.Granite.Enabled {
		t.Error("Granite.Enabled = true, expected disabled via USE_HF_GRANITE=0")
	}
	if conf.SystemPrompt != "custom directive" {
		t.Errorf("SystemPrompt = %q, expected override", conf.SystemPrompt)
	}
	if conf.Store.Dir != "/tmp/budgetbee-store" {
		t.Errorf("Store.Dir = %q, expected override", conf.Store.Dir)
	}
}

func TestLoadConfigurationFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "budgetbee.yaml")
	content := []byte(`
openrouter:
  model: file/model
server:
  address: ":9090"
  allowedOrigins:
    - "http://localhost:3000"
logging:
  level: debug
  format: console
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.OpenRouter.Model != "file/model" {
		t.Errorf("OpenRouter.Model = %q, expected file/model", conf.OpenRouter.Model)
	}
	if conf.Server.Address != ":9090" {
		t.Errorf("Server.Address = %q, expected :9090", conf.Server.Address)
	}
	if len(conf.Server.AllowedOrigins) != 1 || conf.Server.AllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("Server.AllowedOrigins = %v, expected one origin", conf.Server.AllowedOrigins)
	}
	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" {
		t.Errorf("Logging = %+v, expected debug/console", conf.Logging)
	}
}

func TestLoadConfigurationMissingFileTolerated(t *testing.T) {
	if _, err := LoadConfiguration(""); err != nil {
		t.Errorf("empty config path should be tolerated, got %v", err)
	}
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Errorf("missing config file should be tolerated, got %v", err)
	}
}

func TestParseToggle(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{" Yes ", true},
		{"0", false},
		{"false", false},
		{"no", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := parseToggle(tt.value); got != tt.expected {
			t.Errorf("parseToggle(%q) = %v, expected %v", tt.value, got, tt.expected)
		}
	}
}

func TestValidateConfiguration(t *testing.T) {
	conf := &Configuration{
		Granite: GraniteConfig{Enabled: true},
		Store:   StoreConfig{Dir: "assets"},
	}
	warnings := conf.ValidateConfiguration()
	if len(warnings) != 3 {
		t.Errorf("warnings = %v, expected 3 (missing token, missing model, no backend)", warnings)
	}

	conf = &Configuration{
		OpenRouter: OpenRouterConfig{APIKey: "key", Model: "m"},
		Store:      StoreConfig{Dir: "assets"},
	}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("warnings = %v, expected none with a configured primary", warnings)
	}
}
