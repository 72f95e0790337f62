// Package protocol defines the conversation data model shared by the
// session store, the assembler, and the model gateway.
package protocol

// Role identifies the sender of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation. Messages are
// immutable once appended; the only exception is a session's leading system
// message, whose Content is recomposed when retrieved context is injected.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NewMessage creates a Message with the given role and content.
//
// Example:
//
//	msg := protocol.NewMessage(protocol.RoleUser, "Pasos RCP adulto")
func NewMessage(role Role, content string) Message {
	return Message{Role: role, Content: content}
}

// InitMessages creates a single-element message slice from a role and content
// string. Convenience wrapper for the common pattern of initializing a
// conversation from a system prompt.
func InitMessages(role Role, content string) []Message {
	return []Message{NewMessage(role, content)}
}
