package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/oselik/nutriplan-backend/internal/entity"
	"github.com/oselik/nutriplan-backend/internal/pkg/logger"
	"github.com/oselik/nutriplan-backend/internal/pkg/response"
)

type Handler struct {
	usecase SessionUsecase
}

func NewHandler(usecase SessionUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// StartSession handles POST /conversation - start a new intake session
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartSession")

	session, err := h.usecase.StartSession(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "session created", zap.String("session_id", session.ID))
	response.Created(w, session)
}

// GetSession handles GET /conversation/{id} - current conversation state
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.WithSession(r.Context(), sessionID, "GetSession")

	session, err := h.usecase.GetSession(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, session)
}

// SubmitAnswer handles POST /conversation/{id}/answer - answer the current question
func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.WithSession(r.Context(), sessionID, "SubmitAnswer")

	var req entity.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.usecase.SubmitAnswer(ctx, sessionID, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, session)
}

// SelectOption handles POST /conversation/{id}/option - pick a declared option
func (h *Handler) SelectOption(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.WithSession(r.Context(), sessionID, "SelectOption")

	var req entity.SelectOptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.usecase.SelectOption(ctx, sessionID, req.Option)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, session)
}

// Generate handles POST /conversation/{id}/generate - run one generation attempt.
// The call is synchronous: the reply carries READY or FAILED with the
// failure classification in the session body.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.WithSession(r.Context(), sessionID, "Generate")

	session, err := h.usecase.Generate(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, session)
}

// GetResult handles GET /conversation/{id}/result - the validated document
func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.WithSession(r.Context(), sessionID, "GetResult")

	result, err := h.usecase.GetResult(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, result)
}

// ExportResult handles GET /conversation/{id}/result/export?format=pdf
func (h *Handler) ExportResult(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.WithSession(r.Context(), sessionID, "ExportResult")

	format := r.URL.Query().Get("format")
	if format == "" {
		format = string(entity.FormatPDF)
	}

	data, fileName, contentType, err := h.usecase.ExportResult(ctx, sessionID, format)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Restart handles POST /conversation/{id}/restart - reset to the first question
func (h *Handler) Restart(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.WithSession(r.Context(), sessionID, "Restart")

	session, err := h.usecase.Restart(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, session)
}

// DeleteSession handles DELETE /conversation/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.WithSession(r.Context(), sessionID, "DeleteSession")

	if err := h.usecase.DeleteSession(ctx, sessionID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.NoContent(w)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "session not found", err)
	case errors.Is(err, entity.ErrEmptyAnswer),
		errors.Is(err, entity.ErrNotNumeric),
		errors.Is(err, entity.ErrUnknownOption):
		h.respondError(ctx, w, http.StatusUnprocessableEntity, "answer rejected", err)
	case errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrAnswerTooLong),
		errors.Is(err, entity.ErrInvalidParameter),
		errors.Is(err, entity.ErrInvalidFormat):
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	case errors.Is(err, entity.ErrConversationDone),
		errors.Is(err, entity.ErrConversationOngoing),
		errors.Is(err, entity.ErrGenerationInFlight),
		errors.Is(err, entity.ErrResultNotReady),
		errors.Is(err, entity.ErrNoSuchQuestion):
		h.respondError(ctx, w, http.StatusConflict, "invalid session state", err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	response.JSON(w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
