package session

import "time"

const defaultRetentionMinutes = 24 * 60

// Config holds session store initialization parameters.
type Config struct {
	// SystemPrompt seeds the first message of every new session.
	SystemPrompt string `json:"system_prompt,omitempty"`
	// RetentionMinutes is the session retention window; sessions idle longer
	// than this are evicted. Defaults to 24 hours.
	RetentionMinutes int `json:"retention_minutes,omitempty"`
}

// DefaultConfig returns the default session store configuration.
func DefaultConfig() Config {
	return Config{RetentionMinutes: defaultRetentionMinutes}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.SystemPrompt != "" {
		c.SystemPrompt = source.SystemPrompt
	}
	if source.RetentionMinutes > 0 {
		c.RetentionMinutes = source.RetentionMinutes
	}
}

// Retention returns the retention window as a duration.
func (c *Config) Retention() time.Duration {
	if c.RetentionMinutes <= 0 {
		return defaultRetentionMinutes * time.Minute
	}
	return time.Duration(c.RetentionMinutes) * time.Minute
}
