package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/oselik/nutriplan-backend/internal/entity"
	"github.com/oselik/nutriplan-backend/internal/telegram/keyboard"
	"github.com/oselik/nutriplan-backend/internal/telegram/render"
	"github.com/oselik/nutriplan-backend/internal/telegram/state"
)

// AnswerHandler processes typed answers while the intake is running
type AnswerHandler struct {
	BaseHandler
	stateManager *state.Manager
	sessionUC    SessionUsecase
}

// NewAnswerHandler creates the handler for the question loop
func NewAnswerHandler(
	api *tgbotapi.BotAPI,
	stateManager *state.Manager,
	sessionUC SessionUsecase,
	kb *keyboard.Builder,
	logger *zap.Logger,
) *AnswerHandler {
	return &AnswerHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateAwaitingAnswer,
			messageSender: NewMessageSender(api, logger),
			keyboard:      kb,
		},
		stateManager: stateManager,
		sessionUC:    sessionUC,
	}
}

// Handle submits the typed text as the answer to the current question
func (h *AnswerHandler) Handle(ctx context.Context, msg *Message) error {
	chatSession, err := h.stateManager.GetSession(ctx, msg.UserID)
	if err != nil || chatSession.SessionID == "" {
		h.sendMessage(msg.ChatID, render.MsgNoSession, nil)
		return nil
	}

	session, err := h.sessionUC.SubmitAnswer(ctx, chatSession.SessionID, &entity.SubmitAnswerRequest{
		Answer: msg.Text,
	})
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	ctxzap.Info(ctx, "answer accepted via telegram",
		zap.String("session_id", chatSession.SessionID),
		zap.Int("question_index", session.QuestionIndex),
	)

	h.sendPrompt(msg.ChatID, session)
	return nil
}
