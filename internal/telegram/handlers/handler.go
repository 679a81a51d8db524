package handlers

import (
	"context"

	"github.com/oselik/nutriplan-backend/internal/entity"
	"github.com/oselik/nutriplan-backend/internal/telegram/keyboard"
)

// Handler state constants. Message handlers are keyed by the intake
// session status; callbacks have their own pseudo-state.
const (
	HandlerStateCallback       = "CALLBACK"
	HandlerStateAwaitingAnswer = string(entity.SessionStatusAwaitingAnswer)
)

// Message represents a normalized Telegram message
type Message struct {
	ChatID       int64
	UserID       int64
	MessageID    int
	Text         string
	CallbackData string
	CallbackID   string
}

// Handler defines the interface for state-specific handlers
type Handler interface {
	// Handle processes a message for this state
	Handle(ctx context.Context, msg *Message) error

	// GetState returns the state this handler manages
	GetState() string
}

// BaseHandler provides common functionality for all handlers
type BaseHandler struct {
	stateName     string
	messageSender *MessageSender
	keyboard      *keyboard.Builder
}

// GetState implements Handler
func (h *BaseHandler) GetState() string {
	return h.stateName
}

// sendMessage is a convenience wrapper for messageSender.Send
func (h *BaseHandler) sendMessage(chatID int64, text string, markup interface{}) {
	if h.messageSender != nil {
		h.messageSender.Send(chatID, text, markup)
	}
}

// sendPrompt sends the latest system message of the conversation, with
// option buttons when the current question declares options.
func (h *BaseHandler) sendPrompt(chatID int64, session *entity.SessionDTO) {
	if len(session.Transcript) == 0 {
		return
	}

	last := session.Transcript[len(session.Transcript)-1]

	switch {
	case session.Status == entity.SessionStatusReviewPending:
		h.sendMessage(chatID, last.Text, h.keyboard.ReviewKeyboard())
	case last.IsQuestion && len(last.Options) > 0:
		h.sendMessage(chatID, last.Text, h.keyboard.OptionsKeyboard(last.Options))
	default:
		h.sendMessage(chatID, last.Text, nil)
	}
}
