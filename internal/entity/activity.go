package entity

import "fmt"

// ActivityLevel enumerates the supported activity levels exhaustively.
// Intake only accepts these values, so downstream lookups are total.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "Sedentary"
	ActivityLight      ActivityLevel = "Lightly Active"
	ActivityModerate   ActivityLevel = "Moderately Active"
	ActivityActive     ActivityLevel = "Active"
	ActivityVeryActive ActivityLevel = "Very Active"
)

// ActivityLevels lists all levels in intake display order.
func ActivityLevels() []ActivityLevel {
	return []ActivityLevel{
		ActivitySedentary,
		ActivityLight,
		ActivityModerate,
		ActivityActive,
		ActivityVeryActive,
	}
}

// ParseActivityLevel maps raw answer text to a level.
func ParseActivityLevel(s string) (ActivityLevel, error) {
	switch ActivityLevel(s) {
	case ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive:
		return ActivityLevel(s), nil
	default:
		return "", fmt.Errorf("%w: unknown activity level %q", ErrInvalidParameter, s)
	}
}

// Multiplier returns the maintenance-energy multiplier for the level.
// The switch is exhaustive over the declared constants.
func (l ActivityLevel) Multiplier() float64 {
	switch l {
	case ActivitySedentary:
		return 1.2
	case ActivityLight:
		return 1.375
	case ActivityModerate:
		return 1.55
	case ActivityActive:
		return 1.725
	case ActivityVeryActive:
		return 1.9
	default:
		return 1.2
	}
}

// Description is the hint included in the generation prompt.
func (l ActivityLevel) Description() string {
	switch l {
	case ActivitySedentary:
		return "little or no exercise"
	case ActivityLight:
		return "light exercise 1-3 days per week"
	case ActivityModerate:
		return "moderate exercise 3-5 days per week"
	case ActivityActive:
		return "hard exercise 6-7 days per week"
	case ActivityVeryActive:
		return "very hard exercise and a physical job"
	default:
		return ""
	}
}
