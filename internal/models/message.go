package models

import "time"

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message represents a chat message held in session history.
// Timestamp is a wall-clock display string (HH:MM:SS), not part of
// the wire format.
type Message struct {
	Role      string
	Content   string
	Timestamp string
}

// NewMessage creates a Message stamped with the current wall-clock time.
func NewMessage(role, content string) Message {
	return Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().Format("15:04:05"),
	}
}

// ChatMessage is the role/content pair sent on the wire.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Wire converts a history message to its wire form, dropping the timestamp.
func (m Message) Wire() ChatMessage {
	return ChatMessage{Role: m.Role, Content: m.Content}
}
