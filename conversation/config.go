package conversation

// Policy selects how repeated context injections compose with the system
// message.
type Policy = string

const (
	// PolicyReplace swaps the previously injected block for the new one,
	// keeping the system message bounded. Default.
	PolicyReplace Policy = "replace"
	// PolicyAppend extends the system message on every injection. Matches
	// the historical behavior; unbounded on long sessions.
	PolicyAppend Policy = "append"
)

// Config holds assembler initialization parameters.
type Config struct {
	// InjectionPolicy is "replace" or "append". Empty means replace.
	InjectionPolicy Policy `json:"injection_policy,omitempty"`
	// MaxTurns caps the user/assistant exchanges included in the model
	// snapshot. 0 disables windowing; session eviction remains the only
	// bound on history.
	MaxTurns int `json:"max_turns,omitempty"`
}

// DefaultConfig returns the default assembler configuration.
func DefaultConfig() Config {
	return Config{InjectionPolicy: PolicyReplace}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.InjectionPolicy != "" {
		c.InjectionPolicy = source.InjectionPolicy
	}
	if source.MaxTurns > 0 {
		c.MaxTurns = source.MaxTurns
	}
}
