package conversation

import (
	"context"

	"github.com/oselik/nutriplan-backend/internal/entity"
)

type SessionUsecase interface {
	StartSession(ctx context.Context) (*entity.SessionDTO, error)
	GetSession(ctx context.Context, sessionID string) (*entity.SessionDTO, error)
	SubmitAnswer(ctx context.Context, sessionID string, req *entity.SubmitAnswerRequest) (*entity.SessionDTO, error)
	SelectOption(ctx context.Context, sessionID, option string) (*entity.SessionDTO, error)
	Generate(ctx context.Context, sessionID string) (*entity.SessionDTO, error)
	GetResult(ctx context.Context, sessionID string) (*entity.ResultDTO, error)
	ExportResult(ctx context.Context, sessionID, format string) ([]byte, string, string, error)
	Restart(ctx context.Context, sessionID string) (*entity.SessionDTO, error)
	DeleteSession(ctx context.Context, sessionID string) error
}
