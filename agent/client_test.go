package agent_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/medassist/fieldchat/agent"
	"github.com/medassist/fieldchat/core/protocol"
)

func TestClient_Complete(t *testing.T) {
	var gotAuth string
	var gotPayload map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"model": "gpt-3.5-turbo",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Llame al 911."}}]
		}`))
	}))
	defer srv.Close()

	client := agent.NewClient(srv.URL, "gpt-3.5-turbo", "test-key")
	resp, err := client.Complete(context.Background(),
		protocol.InitMessages(protocol.RoleUser, "Pasos RCP adulto"),
		map[string]any{"temperature": 0.2, "max_tokens": 1000},
	)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if got := resp.Content(); got != "Llame al 911." {
		t.Errorf("got content %q, want %q", got, "Llame al 911.")
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("got auth header %q, want %q", gotAuth, "Bearer test-key")
	}
	if gotPayload["model"] != "gpt-3.5-turbo" {
		t.Errorf("got model %v, want gpt-3.5-turbo", gotPayload["model"])
	}
	if gotPayload["temperature"] != 0.2 {
		t.Errorf("got temperature %v, want 0.2", gotPayload["temperature"])
	}
	if gotPayload["max_tokens"] != float64(1000) {
		t.Errorf("got max_tokens %v, want 1000", gotPayload["max_tokens"])
	}

	msgs, ok := gotPayload["messages"].([]any)
	if !ok || len(msgs) != 1 {
		t.Fatalf("got messages %v, want 1 entry", gotPayload["messages"])
	}
}

func TestClient_Complete_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "quota exceeded"}}`))
	}))
	defer srv.Close()

	client := agent.NewClient(srv.URL, "gpt-3.5-turbo", "test-key")
	_, err := client.Complete(context.Background(), protocol.InitMessages(protocol.RoleUser, "Hola"))

	if err == nil {
		t.Fatal("expected error for 429 response")
	}
}

func TestClient_Complete_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	client := agent.NewClient(srv.URL, "gpt-3.5-turbo", "test-key")
	_, err := client.Complete(context.Background(), protocol.InitMessages(protocol.RoleUser, "Hola"))

	if err == nil {
		t.Fatal("expected error for malformed response body")
	}
}

func TestClient_Complete_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := agent.NewClient(srv.URL, "gpt-3.5-turbo", "test-key")
	_, err := client.Complete(ctx, protocol.InitMessages(protocol.RoleUser, "Hola"))

	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestNew_MissingKey(t *testing.T) {
	cfg := agent.DefaultConfig()
	cfg.APIKeyEnv = "FIELDCHAT_TEST_ABSENT_KEY"
	os.Unsetenv(cfg.APIKeyEnv)

	if _, err := agent.New(&cfg); err == nil {
		t.Error("expected error when API key env is unset")
	}
}

func TestNew_WithKey(t *testing.T) {
	cfg := agent.DefaultConfig()
	cfg.APIKeyEnv = "FIELDCHAT_TEST_KEY"
	t.Setenv(cfg.APIKeyEnv, "sk-test")

	a, err := agent.New(&cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if a == nil {
		t.Error("expected non-nil agent")
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := agent.DefaultConfig()
	cfg.Merge(&agent.Config{Model: "gpt-4o-mini"})

	if cfg.Model != "gpt-4o-mini" {
		t.Errorf("got model %q, want %q", cfg.Model, "gpt-4o-mini")
	}
	if cfg.BaseURL == "" {
		t.Error("merge should keep default base URL")
	}
}
