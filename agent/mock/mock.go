// Package mock provides a configurable Agent double for tests.
package mock

import (
	"context"
	"sync"

	"github.com/medassist/fieldchat/core/protocol"
	"github.com/medassist/fieldchat/core/response"
)

// Agent implements agent.Agent with canned behavior and records every call.
type Agent struct {
	mu    sync.Mutex
	calls [][]protocol.Message

	resp *response.ChatResponse
	err  error
}

// Option configures a mock Agent.
type Option func(*Agent)

// WithContent makes the mock reply with a single-choice response carrying the
// given text.
func WithContent(content string) Option {
	return func(a *Agent) { a.resp = makeResponse(content) }
}

// WithError makes every Complete call fail with err.
func WithError(err error) Option {
	return func(a *Agent) { a.err = err }
}

// New creates a mock Agent. Without options it replies with an empty response.
func New(opts ...Option) *Agent {
	a := &Agent{resp: makeResponse("")}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Agent) Complete(ctx context.Context, messages []protocol.Message, opts ...map[string]any) (*response.ChatResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	copied := append([]protocol.Message(nil), messages...)
	a.calls = append(a.calls, copied)

	if a.err != nil {
		return nil, a.err
	}
	return a.resp, nil
}

// Calls returns the message sequences of every Complete invocation so far.
func (a *Agent) Calls() [][]protocol.Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([][]protocol.Message(nil), a.calls...)
}

// LastCall returns the message sequence of the most recent Complete
// invocation, or nil when none happened.
func (a *Agent) LastCall() []protocol.Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.calls) == 0 {
		return nil
	}
	return a.calls[len(a.calls)-1]
}

func makeResponse(content string) *response.ChatResponse {
	resp := &response.ChatResponse{Model: "mock"}
	resp.Choices = append(resp.Choices, struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason,omitempty"`
	}{
		Index: 0,
		Message: struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		}{
			Role:    "assistant",
			Content: content,
		},
	})
	return resp
}
