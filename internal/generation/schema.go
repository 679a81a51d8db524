package generation

import "github.com/oselik/nutriplan-backend/internal/entity"

// SchemaName identifies the declared output shape to the generative service.
const SchemaName = "nutrition_guide"

// GuideSchema declares the exact structure the generative service must
// return. It is sent with the request for schema-constrained output and
// mirrored by Validate for post-hoc checking.
func GuideSchema() *entity.OutputSchema {
	nonEmptyString := func(desc string) *entity.OutputSchema {
		return &entity.OutputSchema{Type: "string", Description: desc}
	}
	stringList := func(desc string) *entity.OutputSchema {
		return &entity.OutputSchema{
			Type:        "array",
			Description: desc,
			MinItems:    1,
			Items:       &entity.OutputSchema{Type: "string"},
		}
	}

	meal := &entity.OutputSchema{
		Type: "object",
		Properties: map[string]*entity.OutputSchema{
			"slot":         nonEmptyString("Meal slot: Breakfast, Lunch, Dinner or Snack"),
			"dish":         nonEmptyString("Name of the dish"),
			"description":  nonEmptyString("One-sentence description of the dish and why it fits the profile"),
			"nutrients":    nonEmptyString("Nutrient summary, e.g. 'Protein: 20g, Carbs: 55g, Fats: 15g'"),
			"ingredients":  stringList("Ordered ingredient list"),
			"instructions": stringList("Ordered preparation steps"),
		},
		Required: []string{"slot", "dish", "description", "nutrients", "ingredients", "instructions"},
	}

	day := &entity.OutputSchema{
		Type: "object",
		Properties: map[string]*entity.OutputSchema{
			"day": nonEmptyString("Day label, e.g. 'Monday'"),
			"meals": {
				Type:     "array",
				MinItems: 1,
				Items:    meal,
			},
		},
		Required: []string{"day", "meals"},
	}

	section := &entity.OutputSchema{
		Type: "object",
		Properties: map[string]*entity.OutputSchema{
			"title": nonEmptyString("Section title"),
			"items": stringList("Ordered points in this section"),
		},
		Required: []string{"title", "items"},
	}

	return &entity.OutputSchema{
		Type:        "object",
		Description: "Personalized weekly meal plan with a nutrition report",
		Properties: map[string]*entity.OutputSchema{
			"week_plan": {
				Type: "object",
				Properties: map[string]*entity.OutputSchema{
					"days": {
						Type:        "array",
						Description: "Ordered days of the plan",
						MinItems:    1,
						Items:       day,
					},
				},
				Required: []string{"days"},
			},
			"report": {
				Type: "object",
				Properties: map[string]*entity.OutputSchema{
					"summary":         nonEmptyString("Short overall assessment of the profile"),
					"findings":        stringList("Key findings derived from the answers"),
					"recommendations": {Type: "array", MinItems: 1, Items: section, Description: "Titled recommendation groups"},
					"lifestyle":       {Type: "array", MinItems: 1, Items: section, Description: "Titled lifestyle-suggestion groups"},
				},
				Required: []string{"summary", "findings", "recommendations", "lifestyle"},
			},
		},
		Required: []string{"week_plan", "report"},
	}
}
