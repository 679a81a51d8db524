package generation

import (
	"fmt"

	"github.com/oselik/nutriplan-backend/internal/entity"
)

// Validate checks a parsed document against the declared shape: every text
// field non-empty, every required sequence with at least one element.
func Validate(doc *entity.GuideDocument) error {
	if doc == nil {
		return fmt.Errorf("%w: document", entity.ErrMissingField)
	}

	if len(doc.WeekPlan.Days) == 0 {
		return fmt.Errorf("%w: week_plan.days", entity.ErrEmptySequence)
	}
	for i, day := range doc.WeekPlan.Days {
		if day.Day == "" {
			return fmt.Errorf("%w: week_plan.days[%d].day", entity.ErrMissingField, i)
		}
		if len(day.Meals) == 0 {
			return fmt.Errorf("%w: week_plan.days[%d].meals", entity.ErrEmptySequence, i)
		}
		for j, meal := range day.Meals {
			if err := validateMeal(meal); err != nil {
				return fmt.Errorf("week_plan.days[%d].meals[%d]: %w", i, j, err)
			}
		}
	}

	report := doc.Report
	if report.Summary == "" {
		return fmt.Errorf("%w: report.summary", entity.ErrMissingField)
	}
	if len(report.Findings) == 0 {
		return fmt.Errorf("%w: report.findings", entity.ErrEmptySequence)
	}
	for i, f := range report.Findings {
		if f == "" {
			return fmt.Errorf("%w: report.findings[%d]", entity.ErrMissingField, i)
		}
	}
	if err := validateSections("report.recommendations", report.Recommendations); err != nil {
		return err
	}
	if err := validateSections("report.lifestyle", report.Lifestyle); err != nil {
		return err
	}

	return nil
}

func validateMeal(meal entity.Meal) error {
	fields := map[string]string{
		"slot":        meal.Slot,
		"dish":        meal.Dish,
		"description": meal.Description,
		"nutrients":   meal.Nutrients,
	}
	for name, value := range fields {
		if value == "" {
			return fmt.Errorf("%w: %s", entity.ErrMissingField, name)
		}
	}
	if len(meal.Ingredients) == 0 {
		return fmt.Errorf("%w: ingredients", entity.ErrEmptySequence)
	}
	for i, ing := range meal.Ingredients {
		if ing == "" {
			return fmt.Errorf("%w: ingredients[%d]", entity.ErrMissingField, i)
		}
	}
	if len(meal.Instructions) == 0 {
		return fmt.Errorf("%w: instructions", entity.ErrEmptySequence)
	}
	for i, step := range meal.Instructions {
		if step == "" {
			return fmt.Errorf("%w: instructions[%d]", entity.ErrMissingField, i)
		}
	}
	return nil
}

func validateSections(path string, sections []entity.TitledSection) error {
	if len(sections) == 0 {
		return fmt.Errorf("%w: %s", entity.ErrEmptySequence, path)
	}
	for i, s := range sections {
		if s.Title == "" {
			return fmt.Errorf("%w: %s[%d].title", entity.ErrMissingField, path, i)
		}
		if len(s.Items) == 0 {
			return fmt.Errorf("%w: %s[%d].items", entity.ErrEmptySequence, path, i)
		}
		for j, item := range s.Items {
			if item == "" {
				return fmt.Errorf("%w: %s[%d].items[%d]", entity.ErrMissingField, path, i, j)
			}
		}
	}
	return nil
}
