package render

import (
	"strings"

	"github.com/goliatone/go-nutriform/pkg/model"
)

// Card is the display form of one NutrientComparison.
type Card struct {
	Nutrient       string  `json:"nutrient"`
	Status         string  `json:"status"`
	Class          string  `json:"class"`
	Color          string  `json:"color"`
	Consumed       float64 `json:"consumed"`
	Required       float64 `json:"required"`
	Percentage     float64 `json:"percentage"`
	Width          string  `json:"width"`
	PercentageText string  `json:"percentage_text"`
}

// Cards projects every comparison, in order, using palette for badge colors.
func Cards(result model.AnalysisResult, palette Palette) []Card {
	cards := make([]Card, 0, len(result.Comparison))
	for _, item := range result.Comparison {
		cards = append(cards, NewCard(item, palette))
	}
	return cards
}

// NewCard builds the card for a single comparison.
func NewCard(item model.NutrientComparison, palette Palette) Card {
	pct := Percentage(item.Consumed, item.Required)
	status := string(item.Status)
	return Card{
		Nutrient:       item.Nutrient,
		Status:         strings.ToUpper(status),
		Class:          strings.TrimSpace("nutrient-card " + strings.ToLower(status)),
		Color:          palette.Color(item.Status),
		Consumed:       item.Consumed,
		Required:       item.Required,
		Percentage:     pct,
		Width:          formatWidth(pct),
		PercentageText: FormatPercentage(pct),
	}
}
