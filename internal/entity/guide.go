package entity

// GuideDocument is the structured result of one successful generation:
// a multi-day meal plan plus a nutrition report. A document is only ever
// published whole, after schema validation.
type GuideDocument struct {
	WeekPlan WeekPlan        `json:"week_plan"`
	Report   NutritionReport `json:"report"`
}

type WeekPlan struct {
	Days []DayPlan `json:"days"`
}

type DayPlan struct {
	Day   string `json:"day"`
	Meals []Meal `json:"meals"`
}

type Meal struct {
	Slot         string   `json:"slot"` // Breakfast, Lunch, Dinner, Snack
	Dish         string   `json:"dish"`
	Description  string   `json:"description"`
	Nutrients    string   `json:"nutrients"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

type NutritionReport struct {
	Summary         string          `json:"summary"`
	Findings        []string        `json:"findings"`
	Recommendations []TitledSection `json:"recommendations"`
	Lifestyle       []TitledSection `json:"lifestyle"`
}

type TitledSection struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}
