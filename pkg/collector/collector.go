// Package collector projects the current form state into an AnalysisRequest.
// It performs no validation and has no side effects.
package collector

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-nutriform/pkg/model"
	"github.com/goliatone/go-nutriform/pkg/view"
)

// Entries exposes the raw text of every food-item entry in order.
// *foodlist.Manager satisfies it.
type Entries interface {
	Values() []string
}

// Collect builds a fresh AnalysisRequest from the entries and preference
// controls.
func Collect(entries Entries, controls view.Controls) model.AnalysisRequest {
	req := model.AnalysisRequest{
		FoodItems: []string{},
		UserPreferences: model.UserPreferences{
			Allergies: []string{},
		},
	}

	if entries != nil {
		req.FoodItems = FoodItems(entries.Values())
	}
	if controls == nil {
		return req
	}

	prefs := &req.UserPreferences
	prefs.Age = ParseInt(controls.Value(view.ControlAge))
	prefs.Gender = controls.Value(view.ControlGender)
	prefs.Goal = optionalText(controls.Value(view.ControlGoal))
	prefs.DietPreference = optionalText(controls.Value(view.ControlDietPreference))
	prefs.Allergies = ParseAllergies(controls.Value(view.ControlAllergies))
	if raw := controls.Value(view.ControlCalorieTarget); raw != "" {
		prefs.CalorieTarget = ParseInt(raw)
	}
	return req
}

// FoodItems trims every value and drops the empty ones, keeping order and
// duplicates.
func FoodItems(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ParseAllergies splits a comma-separated field into trimmed, non-empty
// segments in input order. Empty input yields an empty slice.
func ParseAllergies(raw string) []string {
	out := []string{}
	for _, segment := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(segment); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ParseInt reads the leading integer of raw: surrounding whitespace is
// ignored, an optional sign is accepted and parsing stops at the first
// non-digit. Input without leading digits is unset.
func ParseInt(raw string) model.Optional[int] {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return model.None[int]()
	}

	value, err := strconv.Atoi(s[:end])
	if err != nil {
		return model.None[int]()
	}
	return model.Some(value)
}

func optionalText(value string) model.Optional[string] {
	if value == "" {
		return model.None[string]()
	}
	return model.Some(value)
}
