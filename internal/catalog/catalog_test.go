package catalog

import "testing"

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	if c.Len() == 0 {
		t.Fatal("default catalog is empty")
	}

	seen := make(map[string]bool)
	for _, q := range c.Questions() {
		if seen[q.FieldName] {
			t.Errorf("duplicate field name %q", q.FieldName)
		}
		seen[q.FieldName] = true

		hasOptions := len(q.Options) > 0
		if (q.Kind == KindSingleChoice) != hasOptions {
			t.Errorf("question %q: kind %s with %d options", q.FieldName, q.Kind, len(q.Options))
		}
	}

	for _, field := range []string{"age", "physiological_condition", "dietary_preferences", "weight", "height"} {
		if !seen[field] {
			t.Errorf("default catalog is missing field %q", field)
		}
	}
}

func TestNewRejectsInvalidSpecs(t *testing.T) {
	cases := []struct {
		name      string
		questions []QuestionSpec
	}{
		{"empty", nil},
		{"duplicate fields", []QuestionSpec{
			{FieldName: "age", Prompt: "a", Kind: KindNumeric},
			{FieldName: "age", Prompt: "b", Kind: KindFreeText},
		}},
		{"choice without options", []QuestionSpec{
			{FieldName: "diet", Prompt: "a", Kind: KindSingleChoice},
		}},
		{"options on free text", []QuestionSpec{
			{FieldName: "notes", Prompt: "a", Kind: KindFreeText, Options: []string{"x"}},
		}},
		{"unknown kind", []QuestionSpec{
			{FieldName: "x", Prompt: "a", Kind: "multi_choice"},
		}},
		{"missing prompt", []QuestionSpec{
			{FieldName: "x", Kind: KindFreeText},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.questions); err == nil {
				t.Errorf("expected error for %s", tc.name)
			}
		})
	}
}

func TestAtBounds(t *testing.T) {
	c := Default()

	if _, err := c.At(-1); err == nil {
		t.Error("expected error for negative index")
	}
	if _, err := c.At(c.Len()); err == nil {
		t.Error("expected error for index past the end")
	}
	q, err := c.At(0)
	if err != nil {
		t.Fatalf("At(0): %v", err)
	}
	if q.FieldName != "age" {
		t.Errorf("first question field = %q, want age", q.FieldName)
	}
}
