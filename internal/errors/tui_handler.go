package errors

import (
	"sync"
	"time"
)

// TUIHandler keeps the latest message for display in the TUI status line.
type TUIHandler struct {
	mu      sync.RWMutex
	latest  *Message
	onEvent func(msg Message)
	now     func() time.Time
}

var _ ErrorHandler = (*TUIHandler)(nil)

// Message is a timestamped status line entry.
type Message struct {
	Text      string
	Type      MessageType
	Timestamp time.Time
}

// MessageType selects the styling of a message.
type MessageType int

const (
	MessageTypeError MessageType = iota
	MessageTypeWarning
	MessageTypeInfo
	MessageTypeSuccess
)

// String returns the lower-case name of the message type.
func (t MessageType) String() string {
	switch t {
	case MessageTypeError:
		return "error"
	case MessageTypeWarning:
		return "warning"
	case MessageTypeInfo:
		return "info"
	case MessageTypeSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// NewTUIHandler creates a handler. onEvent, if set, is called for every message.
func NewTUIHandler(onEvent func(msg Message)) *TUIHandler {
	return &TUIHandler{onEvent: onEvent, now: time.Now}
}

func (h *TUIHandler) Error(msg string) {
	h.addMessage(msg, MessageTypeError)
}

func (h *TUIHandler) Warning(msg string) {
	h.addMessage(msg, MessageTypeWarning)
}

func (h *TUIHandler) Info(msg string) {
	h.addMessage(msg, MessageTypeInfo)
}

func (h *TUIHandler) Success(msg string) {
	h.addMessage(msg, MessageTypeSuccess)
}

func (h *TUIHandler) addMessage(text string, msgType MessageType) {
	message := Message{Text: text, Type: msgType, Timestamp: h.now()}

	h.mu.Lock()
	h.latest = &message
	onEvent := h.onEvent
	h.mu.Unlock()

	if onEvent != nil {
		onEvent(message)
	}
}

// Latest returns the most recent message.
func (h *TUIHandler) Latest() (Message, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.latest == nil {
		return Message{}, false
	}
	return *h.latest, true
}

// ClearIfOlder drops the latest message if it was recorded before cutoff.
// A newer message survives.
func (h *TUIHandler) ClearIfOlder(cutoff time.Time) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.latest == nil || !h.latest.Timestamp.Before(cutoff) {
		return false
	}
	h.latest = nil
	return true
}

// Clear drops the latest message.
func (h *TUIHandler) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = nil
}
