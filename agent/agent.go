// Package agent provides the model gateway: the Agent contract consumed by
// the turn orchestrator and an OpenAI-compatible chat completions client.
package agent

import (
	"context"

	"github.com/medassist/fieldchat/core/protocol"
	"github.com/medassist/fieldchat/core/response"
)

// Agent executes chat completion requests against a model provider.
type Agent interface {
	// Complete sends the ordered message sequence to the model. Optional
	// opts maps are merged into the request payload (temperature,
	// max_tokens, ...), later maps winning on key conflicts.
	Complete(ctx context.Context, messages []protocol.Message, opts ...map[string]any) (*response.ChatResponse, error)
}
