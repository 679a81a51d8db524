package generation

import (
	"context"
	"encoding/json"

	"github.com/oselik/nutriplan-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// TextGenerator is the transport that exchanges one prompt for the raw
// response text of the generative service.
type TextGenerator interface {
	GenerateStructured(ctx context.Context, req *entity.GenerationRequest) (string, error)
}

// Client is the sole network boundary of the generation pipeline. It
// classifies every failure and never publishes a partially valid document.
type Client struct {
	llm    TextGenerator
	logger *zap.Logger
}

// NewClient creates a generation client on top of an LLM transport.
func NewClient(llm TextGenerator, logger *zap.Logger) *Client {
	return &Client{
		llm:    llm,
		logger: logger,
	}
}

// Generate performs one generation round trip. The call is never retried
// internally; callers re-invoke it on user request.
func (c *Client) Generate(ctx context.Context, req *entity.GenerationRequest) (*entity.GuideDocument, error) {
	raw, err := c.llm.GenerateStructured(ctx, req)
	if err != nil {
		ctxzap.Warn(ctx, "generation transport failed", zap.Error(err))
		return nil, entity.NewGenerationError(entity.FailureServiceUnavailable, err)
	}

	if !json.Valid([]byte(raw)) {
		ctxzap.Warn(ctx, "generation response is not valid JSON", zap.Int("length", len(raw)))
		return nil, entity.NewGenerationError(entity.FailureMalformedResponse, entity.ErrInvalidFormat)
	}

	var doc entity.GuideDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		// Well-formed JSON with the wrong element kinds somewhere.
		ctxzap.Warn(ctx, "generation response has wrong shape", zap.Error(err))
		return nil, entity.NewGenerationError(entity.FailureSchemaViolation, err)
	}

	if err := Validate(&doc); err != nil {
		ctxzap.Warn(ctx, "generation response violates schema", zap.Error(err))
		return nil, entity.NewGenerationError(entity.FailureSchemaViolation, err)
	}

	ctxzap.Info(ctx, "generation succeeded",
		zap.Int("days", len(doc.WeekPlan.Days)),
		zap.Int("findings", len(doc.Report.Findings)),
	)

	return &doc, nil
}
