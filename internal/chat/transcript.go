// Package chat implements the support chat widget: an append-only transcript
// per page load, round-tripped to the backend chatbot.
package chat

import (
	"time"

	"github.com/google/uuid"

	"github.com/wolfman30/elitecuts-web/internal/backend"
)

const (
	Greeting = "Hello! I'm your Elite Cuts AI assistant. How can I help you today?"
	Fallback = "Sorry, an error occurred. Please try again."

	// HistoryWindow is how many prior entries are sent as context.
	HistoryWindow = 5
)

// Sender is the author of a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Role maps the sender onto the chatbot API role.
func (s Sender) Role() string {
	if s == SenderUser {
		return "user"
	}
	return "assistant"
}

// Message is one transcript entry.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

func newMessage(text string, sender Sender, now time.Time) Message {
	return Message{ID: uuid.NewString(), Text: text, Sender: sender, Timestamp: now}
}

// greeting is the fixed first entry of every transcript.
func greeting(now time.Time) Message {
	return Message{ID: "1", Text: Greeting, Sender: SenderBot, Timestamp: now}
}

// History converts the last HistoryWindow entries of prior into chatbot turns.
func History(prior []Message) []backend.ChatTurn {
	start := 0
	if len(prior) > HistoryWindow {
		start = len(prior) - HistoryWindow
	}
	turns := make([]backend.ChatTurn, 0, len(prior)-start)
	for _, m := range prior[start:] {
		turns = append(turns, backend.ChatTurn{Role: m.Sender.Role(), Content: m.Text})
	}
	return turns
}
