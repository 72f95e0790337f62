package chat

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/medassist/fieldchat/agent"
	"github.com/medassist/fieldchat/conversation"
	"github.com/medassist/fieldchat/retrieval"
	"github.com/medassist/fieldchat/session"
)

const (
	defaultTemperature    = 0.2
	defaultMaxTokens      = 1000
	defaultTimeoutSeconds = 30
)

// Config holds initialization parameters for all chat subsystems.
// Each subsystem section delegates to that subsystem's config-driven
// constructor.
type Config struct {
	Agent        agent.Config        `json:"agent"`
	Session      session.Config      `json:"session"`
	Conversation conversation.Config `json:"conversation"`
	Retrieval    retrieval.Config    `json:"retrieval"`

	// Temperature and MaxTokens are the fixed decoding parameters for every
	// turn.
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	// TimeoutSeconds bounds the retrieval and model work of a single turn.
	TimeoutSeconds int `json:"timeout_seconds,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults for all subsystems.
func DefaultConfig() Config {
	return Config{
		Agent:          agent.DefaultConfig(),
		Session:        session.DefaultConfig(),
		Conversation:   conversation.DefaultConfig(),
		Retrieval:      retrieval.DefaultConfig(),
		Temperature:    defaultTemperature,
		MaxTokens:      defaultMaxTokens,
		TimeoutSeconds: defaultTimeoutSeconds,
	}
}

// Merge applies non-zero values from source into c, delegating to each
// subsystem's Merge method.
func (c *Config) Merge(source *Config) {
	c.Agent.Merge(&source.Agent)
	c.Session.Merge(&source.Session)
	c.Conversation.Merge(&source.Conversation)
	c.Retrieval.Merge(&source.Retrieval)

	if source.Temperature > 0 {
		c.Temperature = source.Temperature
	}
	if source.MaxTokens > 0 {
		c.MaxTokens = source.MaxTokens
	}
	if source.TimeoutSeconds > 0 {
		c.TimeoutSeconds = source.TimeoutSeconds
	}
}

// Timeout returns the per-turn timeout as a duration.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LoadConfig reads a JSON config file, merges it with defaults, and returns
// the resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
