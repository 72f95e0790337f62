package chat

import "github.com/medassist/fieldchat/observability"

// Chat event types emitted during a turn.
const (
	EventTurnStart         observability.EventType = "chat.turn.start"
	EventTurnComplete      observability.EventType = "chat.turn.complete"
	EventContextInjected   observability.EventType = "chat.context.injected"
	EventRetrievalDegraded observability.EventType = "chat.retrieval.degraded"
	EventError             observability.EventType = "chat.error"
)
