// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config. Configuration is
// resolved once at process start and passed by reference into the backend
// dispatcher and the HTTP layer; absence of an API key is a valid state
// meaning "backend not configured", not an error.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/Sanjana-2906/BudgetBee-ChatBot/pkg/constants"
	"github.com/spf13/viper"
)

// DefaultSystemPrompt is the chat system directive used when SYS_PROMPT is
// not set.
const DefaultSystemPrompt = "You are BudgetBee, a concise India-focused personal finance assistant. " +
	"Answer the user's question directly in simple language. " +
	"If you need more details, ask one short follow-up."

// Configuration holds all configuration for BudgetBee.
type Configuration struct {
	OpenRouter   OpenRouterConfig
	Granite      GraniteConfig
	SystemPrompt string
	Logging      LoggingConfig
	Server       ServerConfig
	Store        StoreConfig
}

// OpenRouterConfig configures the primary chat-completion backend.
type OpenRouterConfig struct {
	APIKey string
	Model  string
}

// Configured reports whether the primary backend is usable.
func (c OpenRouterConfig) Configured() bool {
	return c.APIKey != ""
}

// GraniteConfig configures the Hugging Face fallback backend.
type GraniteConfig struct {
	APIToken string
	Model    string
	Enabled  bool
}

// Configured reports whether the fallback backend is usable.
func (c GraniteConfig) Configured() bool {
	return c.Enabled && c.APIToken != "" && c.Model != ""
}

// LoggingConfig holds logging configuration options.
type LoggingConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	OutputFile string // optional file output
}

// ServerConfig holds HTTP server configuration options.
type ServerConfig struct {
	Address        string
	AllowedOrigins []string
}

// StoreConfig holds flat-file store configuration options.
type StoreConfig struct {
	Dir string
}

// LoadConfiguration reads the optional YAML config file at configPath and
// overlays environment variables. An empty configPath or a missing file is
// fine; everything has an environment binding or a default.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("openrouter.model", "deepseek/deepseek-chat")
	v.SetDefault("granite.model", "ibm-granite/granite-3.1-8b-instruct")
	v.SetDefault("granite.enabled", "1")
	v.SetDefault("systemPrompt", DefaultSystemPrompt)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("server.address", constants.DefaultServerAddress)
	v.SetDefault("store.dir", "assets")

	bindings := map[string]string{
		"openrouter.apiKey": "OPENROUTER_API_KEY",
		"openrouter.model":  "OPENROUTER_MODEL",
		"granite.apiToken":  "HF_API_TOKEN",
		"granite.model":     "HF_TEXT_MODEL",
		"granite.enabled":   "USE_HF_GRANITE",
		"systemPrompt":      "SYS_PROMPT",
		"logging.level":     "LOG_LEVEL",
		"server.address":    "SERVER_ADDRESS",
		"store.dir":         "STORE_DIR",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("error binding environment variable %s, %s", env, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			// A missing file is fine; the environment bindings and defaults
			// cover everything. Only a present-but-unreadable file is fatal.
			_, notFound := err.(viper.ConfigFileNotFoundError)
			if !notFound && !os.IsNotExist(err) {
				return nil, fmt.Errorf("error reading config file, %s", err)
			}
		}
	}

	conf := &Configuration{
		OpenRouter: OpenRouterConfig{
			APIKey: strings.TrimSpace(v.GetString("openrouter.apiKey")),
			Model:  strings.TrimSpace(v.GetString("openrouter.model")),
		},
		Granite: GraniteConfig{
			APIToken: strings.TrimSpace(v.GetString("granite.apiToken")),
			Model:    strings.TrimSpace(v.GetString("granite.model")),
			Enabled:  parseToggle(v.GetString("granite.enabled")),
		},
		SystemPrompt: v.GetString("systemPrompt"),
		Logging: LoggingConfig{
			Level:      v.GetString("logging.level"),
			Format:     v.GetString("logging.format"),
			OutputFile: v.GetString("logging.outputFile"),
		},
		Server: ServerConfig{
			Address:        v.GetString("server.address"),
			AllowedOrigins: v.GetStringSlice("server.allowedOrigins"),
		},
		Store: StoreConfig{
			Dir: v.GetString("store.dir"),
		},
	}

	return conf, nil
}

// parseToggle interprets the feature-toggle values accepted for
// USE_HF_GRANITE: "1", "true", and "yes" (case-insensitive) enable it.
func parseToggle(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Warnings never prevent startup; an unconfigured backend
// pair simply degrades chat to the static tips.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Granite.Enabled && c.Granite.APIToken == "" {
		warnings = append(warnings, "Granite fallback is enabled but HF_API_TOKEN is not set; the fallback will be skipped")
	}
	if c.Granite.Enabled && c.Granite.Model == "" {
		warnings = append(warnings, "Granite fallback is enabled but HF_TEXT_MODEL is empty; the fallback will be skipped")
	}
	if !c.OpenRouter.Configured() && !c.Granite.Configured() {
		warnings = append(warnings, "no AI backend is configured; chat and AI summaries will return the static tips")
	}
	if c.Store.Dir == "" {
		warnings = append(warnings, "store directory is empty; user accounts and sessions will not persist")
	}

	return warnings
}
