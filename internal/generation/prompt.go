package generation

import (
	"fmt"
	"strings"

	"github.com/oselik/nutriplan-backend/internal/catalog"
	"github.com/oselik/nutriplan-backend/internal/entity"
)

const systemInstructions = "You are a professional nutritionist providing evidence-based advice. " +
	"Keep recommendations practical and actionable. " +
	"Return ONLY the JSON structure defined in the schema, without markdown or preamble."

const structureInstruction = `Provide a personalized weekly meal plan and a nutrition report as JSON with this structure:
- "week_plan": ordered "days", each with a "day" label and ordered "meals"; every meal has "slot", "dish", "description", "nutrients", ordered "ingredients" and ordered "instructions".
- "report": a "summary", ordered "findings", titled "recommendations" groups and titled "lifestyle" groups, each group with a "title" and ordered "items".
Every text field must be non-empty and every list must contain at least one element.`

// Builder turns a complete answer record into a generation request. The
// rendered prompt is a pure, deterministic function of the record.
type Builder struct {
	catalog *catalog.Catalog
}

// NewBuilder creates a request builder over the intake catalog.
func NewBuilder(cat *catalog.Catalog) *Builder {
	return &Builder{catalog: cat}
}

// BuildRequest renders the generation prompt from the record and attaches
// the declared output schema. The record must contain every catalog field.
func (b *Builder) BuildRequest(record entity.AnswerRecord) (*entity.GenerationRequest, error) {
	var sb strings.Builder
	sb.WriteString("As a nutrition expert, create a personalized weekly meal plan and nutrition report for this profile:\n")

	for _, q := range b.catalog.Questions() {
		value, ok := record[q.FieldName]
		if !ok || value == "" {
			return nil, fmt.Errorf("%w: %s", entity.ErrMissingField, q.FieldName)
		}
		sb.WriteString(fmt.Sprintf("- %s: %s\n", fieldLabel(q.FieldName), value))

		if q.FieldName == "activity_level" {
			if level, err := entity.ParseActivityLevel(value); err == nil {
				sb.WriteString(fmt.Sprintf("  (%s; maintenance-energy multiplier %.3g)\n",
					level.Description(), level.Multiplier()))
			}
		}
	}

	sb.WriteString("\n")
	sb.WriteString(structureInstruction)

	return &entity.GenerationRequest{
		System:     systemInstructions,
		Prompt:     sb.String(),
		SchemaName: SchemaName,
		Schema:     GuideSchema(),
	}, nil
}

// fieldLabel renders a catalog field name for the prompt, e.g.
// "physiological_condition" -> "Physiological condition".
func fieldLabel(fieldName string) string {
	label := strings.ReplaceAll(fieldName, "_", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
