package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/oselik/nutriplan-backend/internal/conversation"
	"github.com/oselik/nutriplan-backend/internal/entity"
	"github.com/oselik/nutriplan-backend/internal/generation"
	"github.com/oselik/nutriplan-backend/internal/pkg/formatter"
	"github.com/oselik/nutriplan-backend/internal/pkg/validator"
	"github.com/oselik/nutriplan-backend/internal/repository"
)

// SessionUsecase implements the intake conversation business logic.
// The store hands out shared session pointers, so every access, reads
// included, goes through the per-session lock. The engine below never
// sees concurrent access to one session.
type SessionUsecase struct {
	store     repository.SessionStorage
	engine    *conversation.Engine
	prompts   *generation.Builder
	generator DocumentGenerator
	formats   *formatter.Factory
	validator *validator.Validator
	logger    *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewUsecase creates a new session use case
func NewUsecase(
	store repository.SessionStorage,
	engine *conversation.Engine,
	prompts *generation.Builder,
	generator DocumentGenerator,
	formats *formatter.Factory,
	validator *validator.Validator,
	logger *zap.Logger,
) *SessionUsecase {
	return &SessionUsecase{
		store:     store,
		engine:    engine,
		prompts:   prompts,
		generator: generator,
		formats:   formats,
		validator: validator,
		logger:    logger,
		locks:     make(map[string]*sync.Mutex),
	}
}

func (uc *SessionUsecase) sessionLock(id string) *sync.Mutex {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	lock, ok := uc.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		uc.locks[id] = lock
	}
	return lock
}

// StartSession creates a session with the first question already asked.
func (uc *SessionUsecase) StartSession(ctx context.Context) (*entity.SessionDTO, error) {
	session := uc.engine.NewSession(uuid.New().String())

	if err := uc.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	ctxzap.Info(ctx, "session started", zap.String("session_id", session.ID))
	return uc.toDTO(session), nil
}

// GetSession returns the current conversation state.
func (uc *SessionUsecase) GetSession(ctx context.Context, sessionID string) (*entity.SessionDTO, error) {
	lock := uc.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := uc.store.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return uc.toDTO(session), nil
}

// SubmitAnswer records the answer to the current question and advances
// the conversation. Rejected input leaves the session unchanged.
func (uc *SessionUsecase) SubmitAnswer(ctx context.Context, sessionID string, req *entity.SubmitAnswerRequest) (*entity.SessionDTO, error) {
	if err := uc.validator.ValidateSubmitAnswer(req); err != nil {
		return nil, err
	}

	lock := uc.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := uc.store.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if err := uc.engine.SubmitAnswer(session, req.Answer); err != nil {
		return nil, err
	}

	if err := uc.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	ctxzap.Info(ctx, "answer accepted",
		zap.String("session_id", sessionID),
		zap.Int("question_index", session.Cursor),
		zap.String("session_status", string(session.Status)),
	)
	return uc.toDTO(session), nil
}

// SelectOption submits one of the declared options for the current
// single-choice question.
func (uc *SessionUsecase) SelectOption(ctx context.Context, sessionID, option string) (*entity.SessionDTO, error) {
	lock := uc.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := uc.store.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if err := uc.engine.SelectOption(session, option); err != nil {
		return nil, err
	}

	if err := uc.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	return uc.toDTO(session), nil
}

// Generate runs one synchronous generation attempt for a finished intake.
// Only one attempt per session may be in flight; a second call while one
// is running returns ErrGenerationInFlight. The attempt is never retried
// automatically, a failed session stays retryable by calling Generate
// again.
func (uc *SessionUsecase) Generate(ctx context.Context, sessionID string) (*entity.SessionDTO, error) {
	lock := uc.sessionLock(sessionID)
	lock.Lock()

	session, err := uc.store.GetByID(ctx, sessionID)
	if err != nil {
		lock.Unlock()
		return nil, fmt.Errorf("get session: %w", err)
	}

	switch session.Status {
	case entity.SessionStatusGenerating:
		lock.Unlock()
		return nil, entity.ErrGenerationInFlight
	case entity.SessionStatusReviewPending, entity.SessionStatusFailed, entity.SessionStatusReady:
		// Fresh generation, retry after failure, or regeneration.
	default:
		lock.Unlock()
		return nil, fmt.Errorf("%w: session is %s", entity.ErrConversationOngoing, session.Status)
	}

	req, err := uc.prompts.BuildRequest(session.Answers)
	if err != nil {
		lock.Unlock()
		return nil, fmt.Errorf("build generation request: %w", err)
	}

	epoch := session.Generation
	session.Status = entity.SessionStatusGenerating
	if err := uc.store.Save(ctx, session); err != nil {
		lock.Unlock()
		return nil, fmt.Errorf("save session: %w", err)
	}

	// The lock is released for the duration of the model call so that
	// reads and restarts stay responsive while generation runs.
	lock.Unlock()

	ctxzap.Info(ctx, "generation started",
		zap.String("session_id", sessionID),
		zap.Int("generation", epoch),
	)
	document, genErr := uc.generator.Generate(ctx, req)

	lock.Lock()
	defer lock.Unlock()

	session, err = uc.store.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session after generation: %w", err)
	}

	if session.Generation != epoch {
		// The session was restarted while the attempt was in flight.
		// The outcome belongs to the old conversation and is dropped.
		ctxzap.Info(ctx, "stale generation discarded",
			zap.String("session_id", sessionID),
			zap.Int("stale_generation", epoch),
			zap.Int("current_generation", session.Generation),
		)
		return uc.toDTO(session), nil
	}

	if genErr != nil {
		kind := entity.FailureKindOf(genErr)
		session.Status = entity.SessionStatusFailed
		session.LastFailure = &kind
		session.Result = nil
		ctxzap.Warn(ctx, "generation failed",
			zap.String("session_id", sessionID),
			zap.String("failure_kind", string(kind)),
			zap.Error(genErr),
		)
	} else {
		session.Status = entity.SessionStatusReady
		session.Result = document
		session.LastFailure = nil
		ctxzap.Info(ctx, "generation succeeded",
			zap.String("session_id", sessionID),
			zap.Int("days", len(document.WeekPlan.Days)),
		)
	}

	if err := uc.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return uc.toDTO(session), nil
}

// GetResult returns the validated document of a Ready session. The
// returned document pointer is safe to hand out: commits and restarts
// swap the session's result pointer, they never mutate a published
// document.
func (uc *SessionUsecase) GetResult(ctx context.Context, sessionID string) (*entity.ResultDTO, error) {
	lock := uc.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := uc.store.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.Status != entity.SessionStatusReady || session.Result == nil {
		return nil, fmt.Errorf("%w: session is %s", entity.ErrResultNotReady, session.Status)
	}

	return &entity.ResultDTO{
		SessionID: session.ID,
		Document:  session.Result,
	}, nil
}

// ExportResult renders the finished document in the requested format.
func (uc *SessionUsecase) ExportResult(ctx context.Context, sessionID, format string) ([]byte, string, string, error) {
	resultFormat, err := entity.ParseResultFormat(format)
	if err != nil {
		return nil, "", "", err
	}

	lock := uc.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := uc.store.GetByID(ctx, sessionID)
	if err != nil {
		return nil, "", "", fmt.Errorf("get session: %w", err)
	}

	if session.Status != entity.SessionStatusReady || session.Result == nil {
		return nil, "", "", fmt.Errorf("%w: session is %s", entity.ErrResultNotReady, session.Status)
	}

	f, err := uc.formats.Create(resultFormat)
	if err != nil {
		return nil, "", "", err
	}

	data, err := f.Format(session.Result)
	if err != nil {
		return nil, "", "", fmt.Errorf("format result: %w", err)
	}

	fileName := fmt.Sprintf("nutrition-guide-%s%s", session.ID, f.FileExtension())
	ctxzap.Info(ctx, "result exported",
		zap.String("session_id", sessionID),
		zap.String("format", string(resultFormat)),
		zap.Int("size_bytes", len(data)),
	)
	return data, fileName, f.ContentType(), nil
}

// Restart resets the conversation to the first question. An in-flight
// generation keeps running but its outcome is discarded on completion.
func (uc *SessionUsecase) Restart(ctx context.Context, sessionID string) (*entity.SessionDTO, error) {
	lock := uc.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := uc.store.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	uc.engine.Restart(session)

	if err := uc.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	ctxzap.Info(ctx, "session restarted",
		zap.String("session_id", sessionID),
		zap.Int("generation", session.Generation),
	)
	return uc.toDTO(session), nil
}

// DeleteSession removes a session. The lock entry is retained: every
// goroutine that ever saw this ID, including a generation still in
// flight, must keep synchronizing on the same mutex.
func (uc *SessionUsecase) DeleteSession(ctx context.Context, sessionID string) error {
	lock := uc.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	if err := uc.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	ctxzap.Info(ctx, "session deleted", zap.String("session_id", sessionID))
	return nil
}
