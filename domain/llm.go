package domain

import "context"

// Llm abstracts the chat-completion provider.
type Llm interface {
	// Complete sends the full ordered conversation history and returns
	// the assistant's reply message.
	Complete(ctx context.Context, history []ChatMessage) (ChatMessage, error)
}

type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	SystemRole    Role = "system"
	UserRole      Role = "user"
	AssistantRole Role = "assistant"
)
