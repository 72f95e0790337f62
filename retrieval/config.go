package retrieval

const defaultTopK = 3

// Config holds retrieval initialization parameters.
type Config struct {
	// Path is the SQLite database file backing the knowledge base; empty
	// disables retrieval entirely.
	Path string `json:"path,omitempty"`
	// DocsDir is an optional directory of .txt/.md documents ingested into
	// the knowledge base at startup.
	DocsDir string `json:"docs_dir,omitempty"`
	// TopK is the number of snippets requested per query.
	TopK int `json:"top_k,omitempty"`
}

// DefaultConfig returns the default retrieval configuration (disabled).
func DefaultConfig() Config {
	return Config{TopK: defaultTopK}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Path != "" {
		c.Path = source.Path
	}
	if source.DocsDir != "" {
		c.DocsDir = source.DocsDir
	}
	if source.TopK > 0 {
		c.TopK = source.TopK
	}
}

// NewGateway creates a Gateway from configuration. Returns a nil Gateway when
// Path is empty, indicating retrieval is disabled.
func NewGateway(cfg *Config) (Gateway, error) {
	if cfg.Path == "" {
		return nil, nil
	}
	return Open(cfg.Path)
}
