package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/oselik/nutriplan-backend/internal/entity"
	"github.com/oselik/nutriplan-backend/internal/telegram/keyboard"
	"github.com/oselik/nutriplan-backend/internal/telegram/render"
	"github.com/oselik/nutriplan-backend/internal/telegram/state"
)

// CallbackHandler handles all inline button clicks
type CallbackHandler struct {
	BaseHandler
	api          *tgbotapi.BotAPI
	stateManager *state.Manager
	sessionUC    SessionUsecase
}

// NewCallbackHandler creates the callback handler
func NewCallbackHandler(
	api *tgbotapi.BotAPI,
	stateManager *state.Manager,
	sessionUC SessionUsecase,
	kb *keyboard.Builder,
	logger *zap.Logger,
) *CallbackHandler {
	return &CallbackHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateCallback,
			messageSender: NewMessageSender(api, logger),
			keyboard:      kb,
		},
		api:          api,
		stateManager: stateManager,
		sessionUC:    sessionUC,
	}
}

// Handle routes the callback to the matching action
func (h *CallbackHandler) Handle(ctx context.Context, msg *Message) error {
	// Acknowledge the button press so the client stops its spinner
	if msg.CallbackID != "" {
		if _, err := h.api.Request(tgbotapi.NewCallback(msg.CallbackID, "")); err != nil {
			ctxzap.Warn(ctx, "failed to answer callback query", zap.Error(err))
		}
	}

	data, err := keyboard.ParseCallback(msg.CallbackData)
	if err != nil {
		ctxzap.Warn(ctx, "invalid callback data",
			zap.String("data", msg.CallbackData),
			zap.Error(err),
		)
		return nil
	}

	switch data.Action {
	case "action":
		return h.handleAction(ctx, msg, data.Value)
	case "opt":
		return h.handleOptionSelection(ctx, msg, data.Value)
	case "dl":
		return h.handleDownload(ctx, msg, data.Value)
	default:
		ctxzap.Warn(ctx, "unknown callback action", zap.String("action", data.Action))
		return nil
	}
}

func (h *CallbackHandler) handleAction(ctx context.Context, msg *Message, value string) error {
	switch value {
	case "start":
		return h.handleStart(ctx, msg)
	case "generate":
		return h.handleGenerate(ctx, msg)
	case "restart":
		return h.handleRestart(ctx, msg)
	default:
		ctxzap.Warn(ctx, "unknown action value", zap.String("value", value))
		return nil
	}
}

func (h *CallbackHandler) handleStart(ctx context.Context, msg *Message) error {
	session, err := h.sessionUC.StartSession(ctx)
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	if err := h.stateManager.Bind(ctx, msg.UserID, msg.ChatID, session.ID); err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	ctxzap.Info(ctx, "intake started via telegram",
		zap.String("session_id", session.ID),
		zap.Int64("user_id", msg.UserID),
	)

	h.sendPrompt(msg.ChatID, session)
	return nil
}

func (h *CallbackHandler) handleOptionSelection(ctx context.Context, msg *Message, option string) error {
	chatSession, err := h.stateManager.GetSession(ctx, msg.UserID)
	if err != nil || chatSession.SessionID == "" {
		h.sendMessage(msg.ChatID, render.MsgNoSession, nil)
		return nil
	}

	session, err := h.sessionUC.SelectOption(ctx, chatSession.SessionID, option)
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	// Echo the pick so the chat reads as a conversation
	h.sendMessage(msg.ChatID, fmt.Sprintf("▸ %s", option), nil)
	h.sendPrompt(msg.ChatID, session)
	return nil
}

func (h *CallbackHandler) handleGenerate(ctx context.Context, msg *Message) error {
	chatSession, err := h.stateManager.GetSession(ctx, msg.UserID)
	if err != nil || chatSession.SessionID == "" {
		h.sendMessage(msg.ChatID, render.MsgNoSession, nil)
		return nil
	}

	h.sendMessage(msg.ChatID, render.MsgGenerating, nil)

	session, err := h.sessionUC.Generate(ctx, chatSession.SessionID)
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	switch session.Status {
	case entity.SessionStatusReady:
		result, err := h.sessionUC.GetResult(ctx, chatSession.SessionID)
		if err != nil {
			h.HandleError(ctx, msg.ChatID, err)
			return nil
		}
		h.sendMessage(msg.ChatID, render.DocumentSummary(result.Document), h.keyboard.ResultKeyboard())
	case entity.SessionStatusFailed:
		failure := entity.FailureServiceUnavailable
		if session.LastFailure != nil {
			failure = *session.LastFailure
		}
		h.sendMessage(msg.ChatID, render.FailureMessage(failure), h.keyboard.RetryKeyboard())
	default:
		// A restart raced the generation; show where the conversation is now.
		h.sendPrompt(msg.ChatID, session)
	}
	return nil
}

func (h *CallbackHandler) handleRestart(ctx context.Context, msg *Message) error {
	chatSession, err := h.stateManager.GetSession(ctx, msg.UserID)
	if err != nil || chatSession.SessionID == "" {
		h.sendMessage(msg.ChatID, render.MsgNoSession, nil)
		return nil
	}

	session, err := h.sessionUC.Restart(ctx, chatSession.SessionID)
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	h.sendMessage(msg.ChatID, render.MsgRestarted, nil)
	h.sendPrompt(msg.ChatID, session)
	return nil
}

func (h *CallbackHandler) handleDownload(ctx context.Context, msg *Message, format string) error {
	chatSession, err := h.stateManager.GetSession(ctx, msg.UserID)
	if err != nil || chatSession.SessionID == "" {
		h.sendMessage(msg.ChatID, render.MsgNoSession, nil)
		return nil
	}

	data, fileName, _, err := h.sessionUC.ExportResult(ctx, chatSession.SessionID, format)
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	ctxzap.Info(ctx, "document exported via telegram",
		zap.String("session_id", chatSession.SessionID),
		zap.String("format", format),
		zap.Int("size_bytes", len(data)),
	)

	if err := h.messageSender.SendDocument(msg.ChatID, fileName, data); err != nil {
		h.sendMessage(msg.ChatID, render.ErrGeneric, nil)
	}
	return nil
}
