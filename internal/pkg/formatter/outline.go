package formatter

import (
	"fmt"

	"github.com/oselik/nutriplan-backend/internal/entity"
)

type lineKind int

const (
	lineTitle lineKind = iota
	lineHeading
	lineSubheading
	lineEmphasis
	lineBody
	lineItem
	lineSpacer
)

type line struct {
	kind lineKind
	text string
}

// outline flattens a document into an ordered list of render lines shared
// by every output format. Renderers decide styling and page geometry only.
func outline(doc *entity.GuideDocument) []line {
	out := []line{
		{kind: lineTitle, text: baseTitle},
		{kind: lineSpacer},
		{kind: lineHeading, text: "Weekly Meal Plan"},
	}

	for _, day := range doc.WeekPlan.Days {
		out = append(out,
			line{kind: lineSpacer},
			line{kind: lineSubheading, text: day.Day},
		)
		for _, meal := range day.Meals {
			out = append(out,
				line{kind: lineEmphasis, text: fmt.Sprintf("%s: %s", meal.Slot, meal.Dish)},
				line{kind: lineBody, text: meal.Description},
				line{kind: lineBody, text: "Nutrients: " + meal.Nutrients},
			)
			out = append(out, line{kind: lineBody, text: "Ingredients:"})
			for _, ing := range meal.Ingredients {
				out = append(out, line{kind: lineItem, text: "- " + ing})
			}
			out = append(out, line{kind: lineBody, text: "Instructions:"})
			for i, step := range meal.Instructions {
				out = append(out, line{kind: lineItem, text: fmt.Sprintf("%d. %s", i+1, step)})
			}
			out = append(out, line{kind: lineSpacer})
		}
	}

	report := doc.Report
	out = append(out,
		line{kind: lineSpacer},
		line{kind: lineHeading, text: "Nutrition Report"},
		line{kind: lineSpacer},
		line{kind: lineSubheading, text: "Summary"},
		line{kind: lineBody, text: report.Summary},
		line{kind: lineSpacer},
		line{kind: lineSubheading, text: "Findings"},
	)
	for _, finding := range report.Findings {
		out = append(out, line{kind: lineItem, text: "- " + finding})
	}

	out = append(out, sectionLines("Recommendations", report.Recommendations)...)
	out = append(out, sectionLines("Lifestyle", report.Lifestyle)...)

	return out
}

func sectionLines(heading string, sections []entity.TitledSection) []line {
	out := []line{
		{kind: lineSpacer},
		{kind: lineSubheading, text: heading},
	}
	for _, section := range sections {
		out = append(out, line{kind: lineEmphasis, text: section.Title})
		for _, item := range section.Items {
			out = append(out, line{kind: lineItem, text: "- " + item})
		}
	}
	return out
}
