package generation

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/oselik/nutriplan-backend/internal/entity"
	"go.uber.org/zap"
)

type stubGenerator struct {
	text string
	err  error
}

func (s *stubGenerator) GenerateStructured(_ context.Context, _ *entity.GenerationRequest) (string, error) {
	return s.text, s.err
}

func testRequest() *entity.GenerationRequest {
	return &entity.GenerationRequest{
		System:     systemInstructions,
		Prompt:     "profile",
		SchemaName: SchemaName,
		Schema:     GuideSchema(),
	}
}

func TestGenerateSuccess(t *testing.T) {
	raw, err := json.Marshal(validDocument())
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	c := NewClient(&stubGenerator{text: string(raw)}, zap.NewNop())

	doc, err := c.Generate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(doc.WeekPlan.Days) != 2 {
		t.Errorf("days = %d, want 2", len(doc.WeekPlan.Days))
	}
	if len(doc.Report.Findings) != 2 {
		t.Errorf("findings = %d, want 2", len(doc.Report.Findings))
	}
}

func TestGenerateTransportFailure(t *testing.T) {
	c := NewClient(&stubGenerator{err: errors.New("connection refused")}, zap.NewNop())

	_, err := c.Generate(context.Background(), testRequest())
	if kind := entity.FailureKindOf(err); kind != entity.FailureServiceUnavailable {
		t.Errorf("kind = %s, want %s (err: %v)", kind, entity.FailureServiceUnavailable, err)
	}
}

func TestGenerateMalformedResponse(t *testing.T) {
	for _, text := range []string{"", "I cannot answer that.", `{"week_plan": `} {
		c := NewClient(&stubGenerator{text: text}, zap.NewNop())

		_, err := c.Generate(context.Background(), testRequest())
		if err == nil {
			t.Fatalf("Generate(%q) succeeded", text)
		}
		if kind := entity.FailureKindOf(err); kind != entity.FailureMalformedResponse {
			t.Errorf("Generate(%q): kind = %s, want %s", text, kind, entity.FailureMalformedResponse)
		}
	}
}

func TestGenerateSchemaViolations(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"wrong element kind", `{"week_plan": {"days": "Monday"}, "report": {}}`},
		{"missing report", `{"week_plan": {"days": [{"day": "Monday", "meals": []}]}}`},
		{"empty days", `{"week_plan": {"days": []}, "report": {"summary": "s", "findings": ["f"], "recommendations": [{"title": "t", "items": ["i"]}], "lifestyle": [{"title": "t", "items": ["i"]}]}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewClient(&stubGenerator{text: tc.text}, zap.NewNop())

			_, err := c.Generate(context.Background(), testRequest())
			if err == nil {
				t.Fatal("Generate accepted a schema-violating response")
			}
			if kind := entity.FailureKindOf(err); kind != entity.FailureSchemaViolation {
				t.Errorf("kind = %s, want %s (err: %v)", kind, entity.FailureSchemaViolation, err)
			}
		})
	}
}
