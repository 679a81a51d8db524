package formatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/oselik/nutriplan-backend/internal/entity"
)

func sampleDocument(days int) *entity.GuideDocument {
	plan := entity.WeekPlan{}
	for i := 0; i < days; i++ {
		plan.Days = append(plan.Days, entity.DayPlan{
			Day: fmt.Sprintf("Day %d", i+1),
			Meals: []entity.Meal{
				{
					Slot:         "Breakfast",
					Dish:         "Oatmeal",
					Description:  "Slow oats with fruit",
					Nutrients:    "Protein: 12g, Carbs: 40g, Fats: 6g",
					Ingredients:  []string{"oats", "banana"},
					Instructions: []string{"Cook oats", "Slice banana on top"},
				},
				{
					Slot:         "Dinner",
					Dish:         "Lentil Stew",
					Description:  "Hearty stew with vegetables",
					Nutrients:    "Protein: 18g, Carbs: 50g, Fats: 8g",
					Ingredients:  []string{"lentils", "carrot", "onion"},
					Instructions: []string{"Saute vegetables", "Simmer lentils for 25 minutes"},
				},
			},
		})
	}

	return &entity.GuideDocument{
		WeekPlan: plan,
		Report: entity.NutritionReport{
			Summary:  "Balanced intake overall.",
			Findings: []string{"Low fiber intake", "Irregular meal times"},
			Recommendations: []entity.TitledSection{
				{Title: "Diet", Items: []string{"More vegetables", "Less refined sugar"}},
			},
			Lifestyle: []entity.TitledSection{
				{Title: "Movement", Items: []string{"Walk daily"}},
			},
		},
	}
}

func TestFactoryCreate(t *testing.T) {
	factory := NewFactory()

	cases := []struct {
		format      entity.ResultFormat
		contentType string
	}{
		{entity.FormatPDF, "application/pdf"},
		{entity.FormatDOCX, docxContentType},
		{entity.FormatMarkdown, "text/markdown; charset=utf-8"},
	}
	for _, tc := range cases {
		f, err := factory.Create(tc.format)
		if err != nil {
			t.Fatalf("Create(%s): %v", tc.format, err)
		}
		if f.ContentType() != tc.contentType {
			t.Errorf("Create(%s): content type %q", tc.format, f.ContentType())
		}
	}

	if _, err := factory.Create("xlsx"); !errors.Is(err, entity.ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestMarkdownFormat(t *testing.T) {
	out, err := NewMarkdownFormatter().Format(sampleDocument(2))
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	text := string(out)
	for _, want := range []string{
		"# " + baseTitle,
		"## Weekly Meal Plan",
		"### Day 1",
		"**Breakfast: Oatmeal**",
		"1. Cook oats",
		"## Nutrition Report",
		"- Low fiber intake",
		"**Diet**",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("markdown output missing %q", want)
		}
	}
}

func TestPDFFormatPaginates(t *testing.T) {
	formatter := NewPDFFormatter()

	small, err := formatter.Format(sampleDocument(1))
	if err != nil {
		t.Fatalf("Format small: %v", err)
	}
	if !bytes.HasPrefix(small, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
	if !bytes.Contains(small, []byte("/Count 1")) {
		t.Error("one-day document should fit a single page")
	}

	large, err := formatter.Format(sampleDocument(7))
	if err != nil {
		t.Fatalf("Format large: %v", err)
	}
	if bytes.Contains(large, []byte("/Count 1")) {
		t.Error("seven-day document should span multiple pages")
	}
}

func TestDOCXFormat(t *testing.T) {
	out, err := NewDOCXFormatter().Format(sampleDocument(1))
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("PK")) {
		t.Error("output is not a DOCX container")
	}
}
