package agent

import (
	"fmt"
	"os"
)

const (
	defaultBaseURL   = "https://api.openai.com/v1/chat/completions"
	defaultModel     = "gpt-3.5-turbo"
	defaultAPIKeyEnv = "OPENAI_API_KEY"
)

// Config holds model gateway initialization parameters.
type Config struct {
	// BaseURL is the chat completions endpoint. Any OpenAI-compatible
	// server works.
	BaseURL string `json:"base_url,omitempty"`
	// Model is the model identifier sent with each request.
	Model string `json:"model,omitempty"`
	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string `json:"api_key_env,omitempty"`
}

// DefaultConfig returns the default model gateway configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:   defaultBaseURL,
		Model:     defaultModel,
		APIKeyEnv: defaultAPIKeyEnv,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.BaseURL != "" {
		c.BaseURL = source.BaseURL
	}
	if source.Model != "" {
		c.Model = source.Model
	}
	if source.APIKeyEnv != "" {
		c.APIKeyEnv = source.APIKeyEnv
	}
}

// New creates an Agent from configuration, reading the API key from the
// configured environment variable. Fails fast when the key is absent so a
// misconfigured deployment dies at startup rather than on the first turn.
func New(cfg *Config) (Agent, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key: set $%s", cfg.APIKeyEnv)
	}
	return NewClient(cfg.BaseURL, cfg.Model, key), nil
}
