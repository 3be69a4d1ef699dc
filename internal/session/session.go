// Package session holds the in-memory chat state for a single run:
// the append-only message history and the outbound request window.
package session

import (
	"github.com/kss0704/codellm/internal/models"
)

// ContextWindow is the number of trailing history entries included in an
// outbound request. The full history is retained for display.
const ContextWindow = 10

// Session is the explicit state object for one chat run. It replaces
// ambient global state: handlers receive a *Session and mutate it
// through its methods. Not safe for concurrent writers; the
// request/response cycle guarantees a single active mutator.
type Session struct {
	messages []models.Message
}

// New creates an empty session.
func New() *Session {
	return &Session{}
}

// Append adds a message to the history, stamped with the current time.
func (s *Session) Append(role, content string) models.Message {
	msg := models.NewMessage(role, content)
	s.messages = append(s.messages, msg)
	return msg
}

// Messages returns the full history in order.
func (s *Session) Messages() []models.Message {
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages in the history.
func (s *Session) Len() int {
	return len(s.messages)
}

// Last returns the most recent message with the given role, or false.
func (s *Session) Last(role string) (models.Message, bool) {
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Role == role {
			return s.messages[i], true
		}
	}
	return models.Message{}, false
}

// Clear empties the history.
func (s *Session) Clear() {
	s.messages = nil
}

// Stats summarizes the history for display.
type Stats struct {
	Messages   int
	Characters int
}

// Stats returns message and character counts over the full history.
func (s *Session) Stats() Stats {
	st := Stats{Messages: len(s.messages)}
	for _, m := range s.messages {
		st.Characters += len(m.Content)
	}
	return st
}

// Outbound builds the wire message list for a completion request: the
// system prompt followed by the last ContextWindow history entries in
// original order.
func (s *Session) Outbound() []models.ChatMessage {
	window := s.messages
	if len(window) > ContextWindow {
		window = window[len(window)-ContextWindow:]
	}

	out := make([]models.ChatMessage, 0, len(window)+1)
	out = append(out, models.ChatMessage{
		Role:    models.RoleSystem,
		Content: SystemPrompt,
	})
	for _, m := range window {
		out = append(out, m.Wire())
	}
	return out
}
