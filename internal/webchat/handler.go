// Package webchat serves the floating chat widget: its script, a JSON API and
// a WebSocket channel over the in-memory chat sessions.
package webchat

import (
	_ "embed"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/websocket"

	"github.com/wolfman30/elitecuts-web/internal/chat"
	"github.com/wolfman30/elitecuts-web/pkg/logging"
)

//go:embed widget.js
var defaultWidgetJS []byte

const busyText = "Please wait for the previous reply."

// Handler manages web chat connections and messages.
type Handler struct {
	sessions *chat.Sessions
	logger   *logging.Logger
	widgetJS []byte
}

// InboundMessage is what the widget sends over the socket.
type InboundMessage struct {
	Type string `json:"type"` // "message", "ping"
	Text string `json:"text"`
}

// OutboundMessage is what we send to the widget.
type OutboundMessage struct {
	Type      string           `json:"type"` // "message", "typing", "history", "session", "error", "pong"
	ID        string           `json:"id,omitempty"`
	Text      string           `json:"text,omitempty"`
	Role      string           `json:"role,omitempty"` // "assistant" or "user"
	SessionID string           `json:"session_id,omitempty"`
	Timestamp string           `json:"timestamp,omitempty"`
	Messages  []HistoryMessage `json:"messages,omitempty"`
}

// HistoryMessage is a simplified message for history responses.
type HistoryMessage struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// NewHandler creates a web chat handler. A nil widgetJS serves the bundled widget.
func NewHandler(sessions *chat.Sessions, widgetJS []byte, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if widgetJS == nil {
		widgetJS = defaultWidgetJS
	}
	return &Handler{
		sessions: sessions,
		logger:   logger.Component("webchat"),
		widgetJS: widgetJS,
	}
}

func toHistory(msgs []chat.Message) []HistoryMessage {
	out := make([]HistoryMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, historyMessage(m))
	}
	return out
}

func historyMessage(m chat.Message) HistoryMessage {
	return HistoryMessage{
		ID:        m.ID,
		Role:      m.Sender.Role(),
		Text:      m.Text,
		Timestamp: m.Timestamp.UTC().Format(time.RFC3339),
	}
}

func outbound(m chat.Message) OutboundMessage {
	return OutboundMessage{
		Type:      "message",
		ID:        m.ID,
		Role:      m.Sender.Role(),
		Text:      m.Text,
		Timestamp: m.Timestamp.UTC().Format(time.RFC3339),
	}
}

// widgetFor returns the session for id, or a fresh one when id is empty,
// unknown or evicted.
func (h *Handler) widgetFor(id string) *chat.Widget {
	if w, ok := h.sessions.Get(id); ok {
		return w
	}
	return h.sessions.Create()
}

// HandleCreateSession starts a new transcript holding only the greeting. The
// widget calls it on every page load.
func (h *Handler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	widget := h.sessions.Create()
	writeJSON(w, http.StatusCreated, map[string]any{
		"session_id": widget.ID(),
		"messages":   toHistory(widget.Messages()),
	})
}

// HandleWebSocket upgrades to WebSocket and handles real-time messaging.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	// Hijacked connections keep the server's read/write deadlines.
	_ = conn.SetDeadline(time.Time{})

	widget := h.widgetFor(r.URL.Query().Get("session"))
	sessionID := widget.ID()

	_ = websocket.JSON.Send(conn, OutboundMessage{Type: "session", SessionID: sessionID})
	_ = websocket.JSON.Send(conn, OutboundMessage{Type: "history", Messages: toHistory(widget.Messages())})

	h.logger.Info("webchat: connection opened", "session_id", sessionID)

	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("webchat: connection closed", "session_id", sessionID, "error", err)
			return
		}

		if msg.Type == "ping" {
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "pong"})
			continue
		}

		if msg.Type != "message" || strings.TrimSpace(msg.Text) == "" {
			continue
		}

		reply, err := widget.Send(r.Context(), msg.Text, func(user chat.Message) {
			_ = websocket.JSON.Send(conn, outbound(user))
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "typing"})
		})
		if err != nil {
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "error", Text: busyText})
			continue
		}
		_ = websocket.JSON.Send(conn, outbound(reply))
	}
}

// HandleMessage is the HTTP fallback for sending messages. It blocks until the
// chatbot replies or the fallback message is recorded.
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"session_id"`
		Text      string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}

	widget := h.widgetFor(req.SessionID)
	reply, err := widget.Send(r.Context(), req.Text, nil)
	switch {
	case errors.Is(err, chat.ErrBusy):
		writeJSON(w, http.StatusConflict, map[string]string{"error": busyText, "session_id": widget.ID()})
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": widget.ID(),
		"reply":      historyMessage(reply),
		"messages":   toHistory(widget.Messages()),
	})
}

// HandleHistory returns chat history for a session.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}
	widget, ok := h.sessions.Get(sessionID)
	if !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"messages": toHistory(widget.Messages()),
		"pending":  widget.Pending(),
	})
}

// HandleWidgetJS serves the embeddable widget JavaScript.
func (h *Handler) HandleWidgetJS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	_, _ = w.Write(h.widgetJS)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
