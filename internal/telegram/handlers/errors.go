package handlers

import (
	"context"
	"errors"
	"net"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/oselik/nutriplan-backend/internal/entity"
	"github.com/oselik/nutriplan-backend/internal/telegram/render"
)

// HandlerError carries a user-facing message alongside the original error
type HandlerError struct {
	Err         error
	UserMessage string
	LogMessage  string
	Warning     bool
}

// classifyHandlerError maps an error to user-facing text and log severity
func classifyHandlerError(err error) *HandlerError {
	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		return &HandlerError{err, render.MsgNoSession, "session not found", true}
	case errors.Is(err, entity.ErrEmptyAnswer), errors.Is(err, entity.ErrMissingField):
		return &HandlerError{err, render.ErrAnswerMissing, "empty answer", true}
	case errors.Is(err, entity.ErrNotNumeric):
		return &HandlerError{err, render.ErrNumberNeeded, "non-numeric answer", true}
	case errors.Is(err, entity.ErrUnknownOption):
		return &HandlerError{err, render.ErrPickAnOption, "unknown option", true}
	case errors.Is(err, entity.ErrGenerationInFlight):
		return &HandlerError{err, "⏳ Already working on it, one moment...", "generation in flight", true}
	case errors.Is(err, entity.ErrConversationOngoing):
		return &HandlerError{err, "Please answer the remaining questions first.", "intake not finished", true}
	case errors.Is(err, entity.ErrConversationDone), errors.Is(err, entity.ErrNoSuchQuestion):
		return &HandlerError{err, render.ErrInvalidState, "no question awaiting an answer", true}
	case errors.Is(err, entity.ErrResultNotReady):
		return &HandlerError{err, "The plan is not ready yet. Press Generate first.", "result not ready", true}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return &HandlerError{err, render.ErrTimeout, "operation timed out", false}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return &HandlerError{err, render.ErrNetworkIssue, "network error", false}
	}

	return &HandlerError{err, render.ErrGeneric, "handler error", false}
}

// HandleError logs the error and sends a user-friendly message
func (h *BaseHandler) HandleError(ctx context.Context, chatID int64, err error) {
	if err == nil {
		return
	}

	handlerErr := classifyHandlerError(err)

	if handlerErr.Warning {
		ctxzap.Warn(ctx, handlerErr.LogMessage,
			zap.Error(handlerErr.Err),
			zap.Int64("chat_id", chatID),
		)
	} else {
		ctxzap.Error(ctx, handlerErr.LogMessage,
			zap.Error(handlerErr.Err),
			zap.Int64("chat_id", chatID),
		)
	}

	if h.messageSender != nil {
		h.messageSender.Send(chatID, handlerErr.UserMessage, nil)
	}
}
