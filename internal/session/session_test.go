package session

import (
	"fmt"
	"strings"
	"testing"

	"github.com/kss0704/codellm/internal/models"
)

func TestAppendAndMessages(t *testing.T) {
	s := New()

	s.Append(models.RoleUser, "hello")
	s.Append(models.RoleAssistant, "hi there")

	msgs := s.Messages()
	if len(msgs) != 2 {
		t.Fatalf("Messages() returned %d entries, want 2", len(msgs))
	}
	if msgs[0].Role != models.RoleUser || msgs[0].Content != "hello" {
		t.Errorf("msgs[0] = %+v, want user/hello", msgs[0])
	}
	if msgs[1].Role != models.RoleAssistant || msgs[1].Content != "hi there" {
		t.Errorf("msgs[1] = %+v, want assistant/hi there", msgs[1])
	}
	if msgs[0].Timestamp == "" {
		t.Error("Append() did not stamp the message")
	}
}

func TestMessagesReturnsCopy(t *testing.T) {
	s := New()
	s.Append(models.RoleUser, "original")

	msgs := s.Messages()
	msgs[0].Content = "mutated"

	if got := s.Messages()[0].Content; got != "original" {
		t.Errorf("history mutated through returned slice: %q", got)
	}
}

func TestLast(t *testing.T) {
	s := New()

	if _, ok := s.Last(models.RoleAssistant); ok {
		t.Error("Last() on empty session reported a message")
	}

	s.Append(models.RoleUser, "q1")
	s.Append(models.RoleAssistant, "a1")
	s.Append(models.RoleUser, "q2")
	s.Append(models.RoleAssistant, "a2")

	last, ok := s.Last(models.RoleAssistant)
	if !ok {
		t.Fatal("Last() found no assistant message")
	}
	if last.Content != "a2" {
		t.Errorf("Last() = %q, want %q", last.Content, "a2")
	}
}

func TestClear(t *testing.T) {
	s := New()
	s.Append(models.RoleUser, "hello")
	s.Clear()

	if s.Len() != 0 {
		t.Errorf("Len() after Clear() = %d, want 0", s.Len())
	}
}

func TestStats(t *testing.T) {
	s := New()
	s.Append(models.RoleUser, "abcd")
	s.Append(models.RoleAssistant, "xy")

	st := s.Stats()
	if st.Messages != 2 {
		t.Errorf("Stats().Messages = %d, want 2", st.Messages)
	}
	if st.Characters != 6 {
		t.Errorf("Stats().Characters = %d, want 6", st.Characters)
	}
}

func TestOutbound_StartsWithSystemPrompt(t *testing.T) {
	s := New()
	s.Append(models.RoleUser, "hello")

	out := s.Outbound()
	if len(out) != 2 {
		t.Fatalf("Outbound() returned %d messages, want 2", len(out))
	}
	if out[0].Role != models.RoleSystem {
		t.Errorf("out[0].Role = %q, want %q", out[0].Role, models.RoleSystem)
	}
	if !strings.Contains(out[0].Content, "CodeMaster") {
		t.Error("system prompt missing from outbound request")
	}
	if out[1].Role != models.RoleUser || out[1].Content != "hello" {
		t.Errorf("out[1] = %+v, want user/hello", out[1])
	}
}

func TestOutbound_TruncatesToWindow(t *testing.T) {
	s := New()
	for i := 0; i < 15; i++ {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleAssistant
		}
		s.Append(role, fmt.Sprintf("msg-%d", i))
	}

	out := s.Outbound()
	if len(out) != ContextWindow+1 {
		t.Fatalf("Outbound() returned %d messages, want %d", len(out), ContextWindow+1)
	}

	// The window must be the most recent entries in original order.
	for i := 0; i < ContextWindow; i++ {
		want := fmt.Sprintf("msg-%d", 15-ContextWindow+i)
		if out[i+1].Content != want {
			t.Errorf("out[%d].Content = %q, want %q", i+1, out[i+1].Content, want)
		}
	}

	// Full history stays intact for display.
	if s.Len() != 15 {
		t.Errorf("Len() = %d, want 15", s.Len())
	}
}
