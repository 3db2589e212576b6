package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/wolfman30/elitecuts-web/internal/backend"
	"github.com/wolfman30/elitecuts-web/internal/observability/metrics"
	"github.com/wolfman30/elitecuts-web/pkg/logging"
)

var (
	ErrEmptyMessage = errors.New("chat: message is empty")
	// ErrBusy is returned while a previous turn is still waiting for its reply.
	ErrBusy = errors.New("chat: a reply is still pending")
)

// Chatbot is the backend completion call.
type Chatbot interface {
	Chat(ctx context.Context, req backend.ChatRequest) (*backend.ChatResponse, error)
}

// Widget is one page load's chat transcript.
type Widget struct {
	id      string
	bot     Chatbot
	now     func() time.Time
	logger  *logging.Logger
	metrics *metrics.FrontendMetrics

	mu       sync.Mutex
	messages []Message
	pending  bool
}

func newWidget(id string, bot Chatbot, now func() time.Time, logger *logging.Logger, m *metrics.FrontendMetrics) *Widget {
	return &Widget{
		id:       id,
		bot:      bot,
		now:      now,
		logger:   logger,
		metrics:  m,
		messages: []Message{greeting(now())},
	}
}

func (w *Widget) ID() string { return w.id }

// Messages returns a copy of the transcript.
func (w *Widget) Messages() []Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Message(nil), w.messages...)
}

// Pending reports whether a reply is outstanding.
func (w *Widget) Pending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending
}

// Send appends text as a user message, asks the chatbot and appends its reply
// or the fallback message. The user message is recorded before the call.
// onUser, when set, is invoked with the user message before the backend call.
func (w *Widget) Send(ctx context.Context, text string, onUser func(Message)) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, ErrEmptyMessage
	}

	w.mu.Lock()
	if w.pending {
		w.mu.Unlock()
		return Message{}, ErrBusy
	}
	history := History(w.messages)
	user := newMessage(text, SenderUser, w.now())
	w.messages = append(w.messages, user)
	w.pending = true
	w.mu.Unlock()

	if onUser != nil {
		onUser(user)
	}

	reply := Fallback
	outcome := "reply"
	resp, err := w.bot.Chat(ctx, backend.ChatRequest{Message: text, ConversationHistory: history})
	if err != nil {
		outcome = "fallback"
		w.logger.Warn("chatbot call failed", "session_id", w.id, "error", err)
	} else {
		reply = resp.Response
	}
	w.metrics.ObserveChatTurn(outcome)

	w.mu.Lock()
	defer w.mu.Unlock()
	bot := newMessage(reply, SenderBot, w.now())
	w.messages = append(w.messages, bot)
	w.pending = false
	return bot, nil
}
