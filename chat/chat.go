// Package chat implements the turn orchestrator that composes the session
// store, conversation assembler, retrieval gateway, and model gateway into
// the load → retrieve → inject → complete → persist cycle.
//
// The runtime initializes from configuration via New, creating all subsystems
// internally. Functional options allow overriding any subsystem.
//
//	c, err := chat.New(&cfg)
//	result, err := c.Turn(ctx, chat.Request{Message: "Pasos RCP adulto"})
package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/medassist/fieldchat/agent"
	"github.com/medassist/fieldchat/conversation"
	"github.com/medassist/fieldchat/observability"
	"github.com/medassist/fieldchat/retrieval"
	"github.com/medassist/fieldchat/session"
)

// Request is one incoming turn: the user's text plus an optional session
// identifier. An empty SessionID mints a new session.
type Request struct {
	SessionID string
	Message   string
}

// Result holds the outcome of a completed turn.
type Result struct {
	Response  string // Assistant reply text.
	SessionID string // Session the turn was recorded under.
	RAGUsed   bool   // Whether retrieved context grounded the reply.
}

// Option configures a Chat before config-driven initialization fills the
// remaining subsystems.
type Option func(*Chat)

// WithAgent overrides the config-created model gateway.
func WithAgent(a agent.Agent) Option {
	return func(c *Chat) { c.agent = a }
}

// WithStore overrides the config-created session store.
func WithStore(s session.Store) Option {
	return func(c *Chat) { c.store = s }
}

// WithGateway overrides the config-created retrieval gateway.
func WithGateway(g retrieval.Gateway) Option {
	return func(c *Chat) { c.gateway = g }
}

// WithObserver overrides the default SlogObserver.
func WithObserver(o observability.Observer) Option {
	return func(c *Chat) { c.observer = o }
}

// Chat is the runtime that executes turns against shared session state.
type Chat struct {
	agent     agent.Agent
	store     session.Store
	assembler *conversation.Assembler
	gateway   retrieval.Gateway // nil when retrieval is disabled
	observer  observability.Observer

	temperature float64
	maxTokens   int
	topK        int
	timeout     time.Duration
}

// New creates a Chat from configuration. Options are applied first; any
// subsystem they leave unset is then initialized from its config section.
func New(cfg *Config, opts ...Option) (*Chat, error) {
	c := &Chat{
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		topK:        cfg.Retrieval.TopK,
		timeout:     cfg.Timeout(),
	}

	for _, opt := range opts {
		opt(c)
	}

	asm, err := conversation.New(&cfg.Conversation)
	if err != nil {
		return nil, err
	}
	c.assembler = asm

	if c.store == nil {
		c.store = session.NewMemoryStore(&cfg.Session)
	}

	if c.gateway == nil {
		gw, err := retrieval.NewGateway(&cfg.Retrieval)
		if err != nil {
			return nil, err
		}
		c.gateway = gw
	}

	if c.agent == nil {
		a, err := agent.New(&cfg.Agent)
		if err != nil {
			return nil, err
		}
		c.agent = a
	}

	if c.observer == nil {
		c.observer = observability.NewSlogObserver(slog.Default())
	}

	return c, nil
}

// Turn executes one request/response exchange. On model gateway failure the
// turn aborts with an UpstreamError and the stored session is untouched: the
// orchestrator works on a private copy and only persists after the model
// call succeeds, so the user message of a failed turn is rolled back.
func (c *Chat) Turn(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrEmptyMessage
	}

	id := req.SessionID
	if id == "" {
		id = c.store.NewID()
	}

	sess := c.store.GetOrCreate(id)

	c.observer.OnEvent(ctx, observability.Event{
		Type:      EventTurnStart,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "chat.Turn",
		Data: map[string]any{
			"session_id":     id,
			"message_length": len(req.Message),
			"history_length": len(sess.Messages),
		},
	})

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.assembler.AppendUser(sess, req.Message)

	results := c.retrieve(ctx, req.Message)
	if len(results) > 0 {
		c.assembler.InjectContext(sess, results)
		c.observer.OnEvent(ctx, observability.Event{
			Type:      EventContextInjected,
			Level:     observability.LevelVerbose,
			Timestamp: time.Now(),
			Source:    "chat.Turn",
			Data: map[string]any{
				"session_id": id,
				"documents":  len(results),
			},
		})
	}

	resp, err := c.agent.Complete(ctx, c.assembler.Snapshot(sess), map[string]any{
		"temperature": c.temperature,
		"max_tokens":  c.maxTokens,
	})
	if err == nil && len(resp.Choices) == 0 {
		err = errors.New("model returned no choices")
	}
	if err != nil {
		c.observer.OnEvent(ctx, observability.Event{
			Type:      EventError,
			Level:     observability.LevelError,
			Timestamp: time.Now(),
			Source:    "chat.Turn",
			Data: map[string]any{
				"session_id": id,
				"error":      err.Error(),
			},
		})
		return nil, &UpstreamError{Err: err}
	}

	reply := resp.Content()
	c.assembler.AppendAssistant(sess, reply)
	c.store.Save(id, sess)

	c.observer.OnEvent(ctx, observability.Event{
		Type:      EventTurnComplete,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "chat.Turn",
		Data: map[string]any{
			"session_id":      id,
			"rag_used":        len(results) > 0,
			"response_length": len(reply),
		},
	})

	return &Result{
		Response:  reply,
		SessionID: id,
		RAGUsed:   len(results) > 0,
	}, nil
}

// retrieve looks up context for the query. Retrieval is best-effort: a
// missing gateway, an empty index, or a search failure all degrade to an
// ungrounded turn rather than failing it.
func (c *Chat) retrieve(ctx context.Context, query string) []retrieval.Result {
	if c.gateway == nil || c.gateway.ChunkCount() == 0 {
		return nil
	}

	results, err := c.gateway.Search(ctx, query, c.topK)
	if err != nil {
		c.observer.OnEvent(ctx, observability.Event{
			Type:      EventRetrievalDegraded,
			Level:     observability.LevelWarning,
			Timestamp: time.Now(),
			Source:    "chat.retrieve",
			Data:      map[string]any{"error": err.Error()},
		})
		return nil
	}
	return results
}
