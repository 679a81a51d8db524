package catalog

import (
	"fmt"

	"github.com/oselik/nutriplan-backend/internal/entity"
)

// AnswerKind describes how a question's answer is entered and validated.
type AnswerKind string

const (
	KindFreeText     AnswerKind = "free_text"
	KindNumeric      AnswerKind = "numeric"
	KindSingleChoice AnswerKind = "single_choice"
)

// QuestionSpec is one immutable entry of the intake catalog.
type QuestionSpec struct {
	FieldName string     `json:"field_name"`
	Prompt    string     `json:"prompt"`
	Kind      AnswerKind `json:"kind"`
	Options   []string   `json:"options,omitempty"`
}

// Catalog is the fixed, ordered list of intake questions.
type Catalog struct {
	questions []QuestionSpec
}

// New validates the question list and wraps it into a catalog.
func New(questions []QuestionSpec) (*Catalog, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("catalog must contain at least one question")
	}

	seen := make(map[string]struct{}, len(questions))
	for i, q := range questions {
		if q.FieldName == "" {
			return nil, fmt.Errorf("question %d: %w: field_name", i, entity.ErrMissingField)
		}
		if q.Prompt == "" {
			return nil, fmt.Errorf("question %q: %w: prompt", q.FieldName, entity.ErrMissingField)
		}
		if _, ok := seen[q.FieldName]; ok {
			return nil, fmt.Errorf("duplicate field name %q", q.FieldName)
		}
		seen[q.FieldName] = struct{}{}

		switch q.Kind {
		case KindFreeText, KindNumeric:
			if len(q.Options) != 0 {
				return nil, fmt.Errorf("question %q: options are only allowed for single-choice questions", q.FieldName)
			}
		case KindSingleChoice:
			if len(q.Options) == 0 {
				return nil, fmt.Errorf("question %q: single-choice question needs options", q.FieldName)
			}
		default:
			return nil, fmt.Errorf("question %q: unknown answer kind %q", q.FieldName, q.Kind)
		}
	}

	return &Catalog{questions: questions}, nil
}

// Len returns the number of questions.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// At returns the question at index i.
func (c *Catalog) At(i int) (QuestionSpec, error) {
	if i < 0 || i >= len(c.questions) {
		return QuestionSpec{}, fmt.Errorf("question index %d out of range [0,%d)", i, len(c.questions))
	}
	return c.questions[i], nil
}

// Questions returns the ordered question list.
func (c *Catalog) Questions() []QuestionSpec {
	return c.questions
}

// FieldNames returns the declared field names in catalog order.
func (c *Catalog) FieldNames() []string {
	names := make([]string, 0, len(c.questions))
	for _, q := range c.questions {
		names = append(names, q.FieldName)
	}
	return names
}

func activityOptions() []string {
	levels := entity.ActivityLevels()
	options := make([]string, 0, len(levels))
	for _, l := range levels {
		options = append(options, string(l))
	}
	return options
}

// Default returns the built-in intake catalog.
func Default() *Catalog {
	c, err := New([]QuestionSpec{
		{
			FieldName: "age",
			Prompt:    "Hello! I'm your nutrition assistant. I'll help you create a personalized meal plan. Let's start with your age. How old are you?",
			Kind:      KindNumeric,
		},
		{
			FieldName: "physiological_condition",
			Prompt:    "Great! Now, what's your current physiological condition?",
			Kind:      KindSingleChoice,
			Options: []string{
				"Regular Menstruation",
				"Pregnancy",
				"Postpartum",
				"Perimenopause",
				"Menopause",
				"Post-menopause",
				"Other",
			},
		},
		{
			FieldName: "dietary_preferences",
			Prompt:    "Do you have any dietary preferences or restrictions?",
			Kind:      KindSingleChoice,
			Options: []string{
				"No Restrictions",
				"Vegetarian",
				"Vegan",
				"Gluten-Free",
				"Dairy-Free",
				"Keto",
				"Paleo",
				"Other",
			},
		},
		{
			FieldName: "health_goals",
			Prompt:    "What are your main health goals?",
			Kind:      KindSingleChoice,
			Options: []string{
				"Weight Loss",
				"Weight Gain",
				"Maintenance",
				"Energy Boost",
				"Gut Health",
				"Hormone Balance",
				"Other",
			},
		},
		{
			FieldName: "activity_level",
			Prompt:    "How active are you on a typical week?",
			Kind:      KindSingleChoice,
			Options:   activityOptions(),
		},
		{
			FieldName: "weight",
			Prompt:    "What's your current weight in kg?",
			Kind:      KindNumeric,
		},
		{
			FieldName: "height",
			Prompt:    "And your height in cm?",
			Kind:      KindNumeric,
		},
		{
			FieldName: "medical_conditions",
			Prompt:    "Do you have any medical conditions we should consider when creating your meal plan? (Type 'none' if not applicable)",
			Kind:      KindFreeText,
		},
	})
	if err != nil {
		panic(fmt.Sprintf("default catalog is invalid: %v", err))
	}
	return c
}
