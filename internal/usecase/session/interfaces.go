package session

import (
	"context"

	"github.com/oselik/nutriplan-backend/internal/entity"
)

// DocumentGenerator produces a validated guide document for a finished
// intake. Implementations classify every failure as a GenerationError.
type DocumentGenerator interface {
	Generate(ctx context.Context, req *entity.GenerationRequest) (*entity.GuideDocument, error)
}
