package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/oselik/nutriplan-backend/internal/config"
	"github.com/oselik/nutriplan-backend/internal/entity"
	"github.com/oselik/nutriplan-backend/internal/integration/common"
	pkghttp "github.com/oselik/nutriplan-backend/pkg/http"
	"go.uber.org/zap"
)

// Connector talks to an OpenAI-compatible chat-completions service.
// The credential is injected through configuration; there is no ambient
// package-level client.
type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type       string      `json:"type"`
	JSONSchema *jsonSchema `json:"json_schema,omitempty"`
}

type jsonSchema struct {
	Name   string               `json:"name"`
	Strict bool                 `json:"strict"`
	Schema *entity.OutputSchema `json:"schema"`
}

type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type modelList struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// GenerateStructured sends one schema-constrained completion request and
// returns the raw response text. Transport and service failures are the
// only errors; response content is not interpreted here.
func (c *Connector) GenerateStructured(ctx context.Context, req *entity.GenerationRequest) (string, error) {
	ctxzap.Info(ctx, "requesting structured completion",
		zap.String("model", c.config.Model),
		zap.String("schema", req.SchemaName),
	)

	payload := &chatCompletionRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.Prompt},
		},
		Temperature: c.config.Temperature,
	}
	if req.Schema != nil {
		payload.ResponseFormat = &responseFormat{
			Type: "json_schema",
			JSONSchema: &jsonSchema{
				Name:   req.SchemaName,
				Strict: true,
				Schema: req.Schema,
			},
		}
	}

	var resp chatCompletionResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.ChatCompletionsEndpoint, payload, &resp)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		// Replied 2xx with nothing usable; let the caller classify the
		// empty text as malformed content.
		ctxzap.Warn(ctx, "completion response has no choices")
		return "", nil
	}

	content := resp.Choices[0].Message.Content
	ctxzap.Info(ctx, "structured completion received", zap.Int("content_length", len(content)))

	return content, nil
}

// Ping checks that the generative service is reachable. Used once at
// startup with bounded retries; failure is logged, not fatal.
func (c *Connector) Ping(ctx context.Context) error {
	opts := append(c.config.Probe.ToRetryOptions(), retry.Context(ctx))

	err := retry.Do(func() error {
		var models modelList
		return c.connector.DoRequest(ctx, http.MethodGet, c.config.ModelsEndpoint, nil, &models)
	}, opts...)
	if err != nil {
		return fmt.Errorf("probe generative service: %w", err)
	}

	return nil
}
