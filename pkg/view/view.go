// Package view describes the surface the form writes to and reads from: named
// regions whose content and visibility the core owns, and the preference
// controls it reads on every submission. Document is the in-memory
// implementation; Frame buffers writes so they reach a surface only at yield
// points.
package view

// Region names a part of the page the core writes content to or toggles.
type Region string

const (
	RegionLoading         Region = "loading"
	RegionResults         Region = "results"
	RegionSummary         Region = "summary-text"
	RegionComparison      Region = "nutrient-comparison"
	RegionRecommendations Region = "recommendations-list"
	RegionNoResults       Region = "no-results"
	RegionError           Region = "error-message"
	RegionErrorText       Region = "error-text"
	RegionFoodItems       Region = "food-items-container"
)

// Control names an input control.
type Control string

const (
	ControlAge            Control = "age"
	ControlGender         Control = "gender"
	ControlGoal           Control = "goal"
	ControlDietPreference Control = "diet_preference"
	ControlAllergies      Control = "allergies"
	ControlCalorieTarget  Control = "calorie_target"
	ControlSubmit         Control = "submit"
)

// PreferenceControls lists the preference inputs in display order.
var PreferenceControls = []Control{
	ControlAge,
	ControlGender,
	ControlGoal,
	ControlDietPreference,
	ControlAllergies,
	ControlCalorieTarget,
}

// Surface receives content and visibility writes. SetText and SetHTML replace
// whatever the region held before.
type Surface interface {
	SetVisible(region Region, visible bool)
	SetText(region Region, text string)
	SetHTML(region Region, html string)
	SetEnabled(control Control, enabled bool)
}

// Controls exposes the current value of input controls. Unset controls report
// the empty string.
type Controls interface {
	Value(control Control) string
}
