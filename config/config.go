// Package config loads process configuration for modelkit.
//
// Settings are read once at startup from environment variables, optionally
// merged with a .env file, and are immutable afterwards. There is no hot
// reload: resolution reads a value-copy and later environment changes have
// no effect on handles that were already resolved.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Settings is the resolved process configuration.
type Settings struct {
	// Provider selects the backend: "ollama" (default) or "google".
	Provider string `mapstructure:"llm_provider"`

	// OllamaHost is the base URL of the local model server.
	OllamaHost string `mapstructure:"ollama_host"`
	// OllamaModel is an explicit general-model override. Empty means
	// auto-detect from the installed inventory.
	OllamaModel string `mapstructure:"ollama_model"`
	// OllamaThinkingModel names the local model that supports reasoning
	// traces. Traces are only emitted when the resolved model equals this.
	OllamaThinkingModel string `mapstructure:"ollama_thinking_model"`

	// GoogleModel is an explicit hosted-model override.
	GoogleModel string `mapstructure:"google_model"`
	// GoogleThinkingModel names the hosted model that supports reasoning
	// traces, under the same equality rule as OllamaThinkingModel.
	GoogleThinkingModel string `mapstructure:"google_thinking_model"`
	// GoogleAPIKey is required when Provider is "google".
	GoogleAPIKey string `mapstructure:"google_api_key"`
}

var keys = []string{
	"llm_provider",
	"ollama_host",
	"ollama_model",
	"ollama_thinking_model",
	"google_model",
	"google_thinking_model",
	"google_api_key",
}

// Option configures Load.
type Option func(*viper.Viper) error

// WithEnvFile merges a dotenv-style file before environment variables are
// applied. A missing file is not an error; callers rely on plain environment
// variables in that case.
func WithEnvFile(path string) Option {
	return func(v *viper.Viper) error {
		if _, err := os.Stat(path); err != nil {
			return nil
		}
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
		return nil
	}
}

// Load builds an immutable Settings value from the environment.
func Load(opts ...Option) (Settings, error) {
	v := viper.New()
	v.SetDefault("llm_provider", "ollama")
	v.SetDefault("ollama_host", "http://localhost:11434")
	for _, k := range keys {
		// Binds each key to its uppercased environment variable,
		// e.g. llm_provider -> LLM_PROVIDER.
		if err := v.BindEnv(k); err != nil {
			return Settings{}, fmt.Errorf("config: bind %s: %w", k, err)
		}
	}

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return Settings{}, err
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	s.Provider = strings.ToLower(strings.TrimSpace(s.Provider))
	s.OllamaThinkingModel = strings.TrimSpace(s.OllamaThinkingModel)
	s.GoogleThinkingModel = strings.TrimSpace(s.GoogleThinkingModel)
	return s, nil
}
