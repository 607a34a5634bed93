package model

import "strings"

// Status classifies a nutrient relative to its requirement.
type Status string

const (
	StatusLow  Status = "low"
	StatusOK   Status = "ok"
	StatusHigh Status = "high"
)

// Normalize lowercases the status so comparisons are case-insensitive.
// Surrounding whitespace is kept, so " low " stays unknown.
func (s Status) Normalize() Status {
	return Status(strings.ToLower(string(s)))
}

// UserPreferences carries the fixed preference fields of the form.
type UserPreferences struct {
	Age            Optional[int]    `json:"age"`
	Gender         string           `json:"gender"`
	Goal           Optional[string] `json:"goal"`
	DietPreference Optional[string] `json:"diet_preference"`
	Allergies      []string         `json:"allergies"`
	CalorieTarget  Optional[int]    `json:"calorie_target"`
}

// AnalysisRequest is the POST /analyze payload. It is built fresh for every
// submission and should not be mutated afterwards; use Clone when a copy that
// can be changed is required.
type AnalysisRequest struct {
	FoodItems       []string        `json:"food_items"`
	UserPreferences UserPreferences `json:"user_preferences"`
}

// Clone returns a deep copy of the request.
func (r AnalysisRequest) Clone() AnalysisRequest {
	out := r
	out.FoodItems = append(make([]string, 0, len(r.FoodItems)), r.FoodItems...)
	out.UserPreferences.Allergies = append(make([]string, 0, len(r.UserPreferences.Allergies)), r.UserPreferences.Allergies...)
	return out
}

// NutrientComparison is one row of the server-computed comparison.
type NutrientComparison struct {
	Nutrient string  `json:"nutrient"`
	Consumed float64 `json:"consumed"`
	Required float64 `json:"required"`
	Status   Status  `json:"status"`
}

// AnalysisResult is the successful /analyze response body.
type AnalysisResult struct {
	Summary         string               `json:"summary"`
	Comparison      []NutrientComparison `json:"comparison"`
	Recommendations []string             `json:"recommendations"`
}

// ErrorResponse is the optional body of a non-success response. Detail is
// kept raw because validation failures on the service side report a list
// rather than a string.
type ErrorResponse struct {
	Detail any `json:"detail,omitempty"`
}

// DetailText returns the detail when it is a non-empty string.
func (e ErrorResponse) DetailText() (string, bool) {
	text, ok := e.Detail.(string)
	if !ok || strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}
