// Package conversation builds the ordered message sequence for a turn:
// appending user and assistant messages, folding retrieved context into the
// system instruction, and producing the snapshot handed to the model gateway.
package conversation

import (
	"fmt"
	"strings"

	"github.com/medassist/fieldchat/core/protocol"
	"github.com/medassist/fieldchat/retrieval"
	"github.com/medassist/fieldchat/session"
)

// Context block composition. The header and per-document layout are part of
// the external contract and must stay byte-identical.
const (
	contextHeader = "Información relevante de nuestra base de conocimiento médico:\n\n"

	contextInstruction = "IMPORTANTE: Utiliza específicamente la información proporcionada " +
		"en los documentos anteriores para responder a la consulta del usuario. " +
		"Cita la fuente de la información. Si la información no es suficiente para " +
		"responder completamente, indica qué información falta y sugiere consultar " +
		"con un supervisor médico."
)

// Assembler mutates a session's message sequence for one turn. It holds no
// per-session state; a single Assembler serves all concurrent turns.
type Assembler struct {
	policy   Policy
	maxTurns int
}

// New creates an Assembler from configuration.
func New(cfg *Config) (*Assembler, error) {
	policy := cfg.InjectionPolicy
	if policy == "" {
		policy = PolicyReplace
	}
	if policy != PolicyReplace && policy != PolicyAppend {
		return nil, fmt.Errorf("unknown injection policy: %q", policy)
	}
	return &Assembler{policy: policy, maxTurns: cfg.MaxTurns}, nil
}

// AppendUser appends a user message to the session. Content length is not
// validated; the route layer rejects empty messages before a turn starts.
func (a *Assembler) AppendUser(s *session.Session, text string) {
	s.Append(protocol.NewMessage(protocol.RoleUser, text))
}

// AppendAssistant appends an assistant message to the session.
func (a *Assembler) AppendAssistant(s *session.Session, text string) {
	s.Append(protocol.NewMessage(protocol.RoleAssistant, text))
}

// InjectContext folds retrieved context into the session's system message.
// A no-op when results is empty or the first message is not the system
// instruction. Under PolicyReplace the new block replaces any previously
// injected one; under PolicyAppend each injection extends the system message
// further, which grows without bound on long sessions.
func (a *Assembler) InjectContext(s *session.Session, results []retrieval.Result) {
	if len(results) == 0 {
		return
	}
	if len(s.Messages) == 0 || s.Messages[0].Role != protocol.RoleSystem {
		return
	}

	block := formatContext(results)

	base := s.Messages[0].Content
	if a.policy == PolicyReplace {
		base = s.BasePrompt
	}
	s.Messages[0].Content = base + "\n\n" + block + "\n\n" + contextInstruction
}

// Snapshot returns the full in-order message list to hand verbatim to the
// model gateway. When MaxTurns is set, older user/assistant exchanges beyond
// the window are dropped; the system message is always retained.
func (a *Assembler) Snapshot(s *session.Session) []protocol.Message {
	msgs := s.Messages
	if a.maxTurns <= 0 || len(msgs) <= 1 {
		return append([]protocol.Message(nil), msgs...)
	}

	history := msgs[1:]
	keep := a.maxTurns * 2
	if len(history) > keep {
		history = history[len(history)-keep:]
	}

	out := make([]protocol.Message, 0, 1+len(history))
	out = append(out, msgs[0])
	out = append(out, history...)
	return out
}

// formatContext renders the 1-indexed document block for a result set.
func formatContext(results []retrieval.Result) string {
	var b strings.Builder
	b.WriteString(contextHeader)
	for i, r := range results {
		fmt.Fprintf(&b, "DOCUMENTO %d: %s\n", i+1, r.Title)
		fmt.Fprintf(&b, "FUENTE: %s\n", r.Source)
		fmt.Fprintf(&b, "CONTENIDO: %s\n\n", r.Text)
	}
	return b.String()
}
