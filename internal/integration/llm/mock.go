package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/oselik/nutriplan-backend/internal/entity"
	"go.uber.org/zap"
)

// MockConnector returns a canned schema-valid document for local runs
// without a generative service.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) GenerateStructured(ctx context.Context, req *entity.GenerationRequest) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating structured completion", zap.String("schema", req.SchemaName))

	doc := mockDocument()
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal mock document: %w", err)
	}

	ctxzap.Info(ctx, "[MOCK] structured completion generated", zap.Int("content_length", len(raw)))
	return string(raw), nil
}

func (m *MockConnector) Ping(ctx context.Context) error {
	ctxzap.Info(ctx, "[MOCK] generative service probe")
	return nil
}

func mockDocument() *entity.GuideDocument {
	mealsFor := func(day string) []entity.Meal {
		return []entity.Meal{
			{
				Slot:         "Breakfast",
				Dish:         "Overnight Oats with Berries",
				Description:  "Fiber-rich oats with antioxidant-packed berries to start the day (" + day + ")",
				Nutrients:    "Protein: 15g, Carbs: 45g, Fats: 8g",
				Ingredients:  []string{"rolled oats", "mixed berries", "milk or plant milk", "chia seeds"},
				Instructions: []string{"Combine oats, milk and chia seeds in a jar", "Refrigerate overnight", "Top with berries before serving"},
			},
			{
				Slot:         "Lunch",
				Dish:         "Mediterranean Quinoa Bowl",
				Description:  "Protein-rich quinoa with vegetables and olive oil",
				Nutrients:    "Protein: 20g, Carbs: 55g, Fats: 15g",
				Ingredients:  []string{"quinoa", "cherry tomatoes", "cucumber", "feta", "olive oil"},
				Instructions: []string{"Cook quinoa and let it cool", "Chop the vegetables", "Toss everything with olive oil"},
			},
			{
				Slot:         "Dinner",
				Dish:         "Baked Salmon with Roasted Vegetables",
				Description:  "Omega-3 rich salmon with fiber-packed vegetables",
				Nutrients:    "Protein: 30g, Carbs: 25g, Fats: 18g",
				Ingredients:  []string{"salmon fillet", "broccoli", "carrots", "lemon"},
				Instructions: []string{"Season the salmon", "Roast vegetables at 200C for 20 minutes", "Bake salmon for 12 minutes"},
			},
			{
				Slot:         "Snack",
				Dish:         "Greek Yogurt with Honey and Nuts",
				Description:  "Protein-rich yogurt with healthy fats from nuts",
				Nutrients:    "Protein: 12g, Carbs: 15g, Fats: 10g",
				Ingredients:  []string{"greek yogurt", "honey", "walnuts"},
				Instructions: []string{"Spoon yogurt into a bowl", "Drizzle honey and add nuts"},
			},
		}
	}

	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	plan := entity.WeekPlan{Days: make([]entity.DayPlan, 0, len(days))}
	for _, d := range days {
		plan.Days = append(plan.Days, entity.DayPlan{Day: d, Meals: mealsFor(d)})
	}

	return &entity.GuideDocument{
		WeekPlan: plan,
		Report: entity.NutritionReport{
			Summary: "A balanced profile; the plan focuses on steady energy, adequate protein and micronutrient density.",
			Findings: []string{
				"Estimated energy needs are in the maintenance range for the stated activity level",
				"Protein distribution across meals can be improved",
				"Fiber intake below the recommended 25-30g per day",
			},
			Recommendations: []entity.TitledSection{
				{Title: "Dietary recommendations", Items: []string{
					"Include a protein source in every meal",
					"Prefer whole grains over refined carbohydrates",
					"Add two portions of vegetables to lunch and dinner",
				}},
				{Title: "Hydration", Items: []string{
					"Aim for 2.5 liters of water daily",
				}},
			},
			Lifestyle: []entity.TitledSection{
				{Title: "Daily habits", Items: []string{
					"Take a 15-minute walk after the largest meal",
					"Keep consistent meal times",
				}},
				{Title: "Sleep", Items: []string{
					"Aim for 7-9 hours per night",
				}},
			},
		},
	}
}
