package generation

import (
	"errors"
	"testing"

	"github.com/oselik/nutriplan-backend/internal/entity"
)

func validDocument() *entity.GuideDocument {
	meal := entity.Meal{
		Slot:         "Breakfast",
		Dish:         "Overnight Oats with Berries",
		Description:  "Fiber-rich oats with antioxidant-packed berries",
		Nutrients:    "Protein: 15g, Carbs: 45g, Fats: 8g",
		Ingredients:  []string{"rolled oats", "berries", "milk"},
		Instructions: []string{"combine ingredients", "refrigerate overnight"},
	}
	return &entity.GuideDocument{
		WeekPlan: entity.WeekPlan{
			Days: []entity.DayPlan{
				{Day: "Monday", Meals: []entity.Meal{meal}},
				{Day: "Tuesday", Meals: []entity.Meal{meal, meal}},
			},
		},
		Report: entity.NutritionReport{
			Summary:  "Balanced vegetarian profile with moderate activity.",
			Findings: []string{"Protein intake should increase", "Hydration is adequate"},
			Recommendations: []entity.TitledSection{
				{Title: "Dietary", Items: []string{"Add legumes to two meals per day"}},
			},
			Lifestyle: []entity.TitledSection{
				{Title: "Sleep", Items: []string{"Aim for 8 hours"}},
			},
		},
	}
}

func TestValidateAcceptsConformingDocument(t *testing.T) {
	if err := Validate(validDocument()); err != nil {
		t.Fatalf("Validate(valid document) = %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*entity.GuideDocument)
		sentinel error
	}{
		{"no days", func(d *entity.GuideDocument) { d.WeekPlan.Days = nil }, entity.ErrEmptySequence},
		{"day without meals", func(d *entity.GuideDocument) { d.WeekPlan.Days[0].Meals = nil }, entity.ErrEmptySequence},
		{"blank day label", func(d *entity.GuideDocument) { d.WeekPlan.Days[1].Day = "" }, entity.ErrMissingField},
		{"meal without dish", func(d *entity.GuideDocument) { d.WeekPlan.Days[0].Meals[0].Dish = "" }, entity.ErrMissingField},
		{"meal without nutrients", func(d *entity.GuideDocument) { d.WeekPlan.Days[0].Meals[0].Nutrients = "" }, entity.ErrMissingField},
		{"meal without ingredients", func(d *entity.GuideDocument) { d.WeekPlan.Days[0].Meals[0].Ingredients = nil }, entity.ErrEmptySequence},
		{"blank instruction", func(d *entity.GuideDocument) { d.WeekPlan.Days[0].Meals[0].Instructions = []string{""} }, entity.ErrMissingField},
		{"no summary", func(d *entity.GuideDocument) { d.Report.Summary = "" }, entity.ErrMissingField},
		{"no findings", func(d *entity.GuideDocument) { d.Report.Findings = nil }, entity.ErrEmptySequence},
		{"no recommendations", func(d *entity.GuideDocument) { d.Report.Recommendations = nil }, entity.ErrEmptySequence},
		{"untitled section", func(d *entity.GuideDocument) { d.Report.Lifestyle[0].Title = "" }, entity.ErrMissingField},
		{"section without items", func(d *entity.GuideDocument) { d.Report.Recommendations[0].Items = nil }, entity.ErrEmptySequence},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := validDocument()
			tc.mutate(doc)
			err := Validate(doc)
			if err == nil {
				t.Fatalf("Validate accepted document with %s", tc.name)
			}
			if !errors.Is(err, tc.sentinel) {
				t.Errorf("err = %v, want %v in chain", err, tc.sentinel)
			}
		})
	}
}

func TestValidateNilDocument(t *testing.T) {
	if err := Validate(nil); !errors.Is(err, entity.ErrMissingField) {
		t.Errorf("Validate(nil) = %v, want ErrMissingField", err)
	}
}
