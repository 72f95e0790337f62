package chat_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/medassist/fieldchat/chat"
	"github.com/medassist/fieldchat/conversation"
)

func TestDefaultConfig(t *testing.T) {
	cfg := chat.DefaultConfig()

	if cfg.Temperature != 0.2 {
		t.Errorf("got temperature %v, want 0.2", cfg.Temperature)
	}
	if cfg.MaxTokens != 1000 {
		t.Errorf("got max tokens %d, want 1000", cfg.MaxTokens)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("got timeout %v, want 30s", cfg.Timeout())
	}
	if cfg.Session.RetentionMinutes != 24*60 {
		t.Errorf("got retention %d, want %d", cfg.Session.RetentionMinutes, 24*60)
	}
	if cfg.Conversation.InjectionPolicy != conversation.PolicyReplace {
		t.Errorf("got policy %q, want replace", cfg.Conversation.InjectionPolicy)
	}
	if cfg.Retrieval.TopK != 3 {
		t.Errorf("got topK %d, want 3", cfg.Retrieval.TopK)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"agent": {"model": "gpt-4o-mini"},
		"session": {"system_prompt": "Eres Portero.", "retention_minutes": 60},
		"conversation": {"injection_policy": "append"},
		"retrieval": {"path": "kb.db", "top_k": 5},
		"max_tokens": 500
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := chat.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Agent.Model != "gpt-4o-mini" {
		t.Errorf("got model %q, want gpt-4o-mini", cfg.Agent.Model)
	}
	if cfg.Session.SystemPrompt != "Eres Portero." {
		t.Errorf("got prompt %q", cfg.Session.SystemPrompt)
	}
	if cfg.Session.RetentionMinutes != 60 {
		t.Errorf("got retention %d, want 60", cfg.Session.RetentionMinutes)
	}
	if cfg.Conversation.InjectionPolicy != conversation.PolicyAppend {
		t.Errorf("got policy %q, want append", cfg.Conversation.InjectionPolicy)
	}
	if cfg.Retrieval.Path != "kb.db" || cfg.Retrieval.TopK != 5 {
		t.Errorf("got retrieval %+v", cfg.Retrieval)
	}
	if cfg.MaxTokens != 500 {
		t.Errorf("got max tokens %d, want 500", cfg.MaxTokens)
	}

	// Defaults survive a partial file.
	if cfg.Temperature != 0.2 {
		t.Errorf("got temperature %v, want default 0.2", cfg.Temperature)
	}
	if cfg.Agent.BaseURL == "" {
		t.Error("default base URL lost in merge")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := chat.LoadConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if _, err := chat.LoadConfig(path); err == nil {
		t.Error("expected error for malformed config file")
	}
}
