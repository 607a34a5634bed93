// Package orchestrator drives one form submission: collect, validate, call
// the analysis service and render the outcome. UI state lives in a single
// State value changed only through Transition, whose effects are applied to a
// view.Frame and committed to the surface at yield points.
package orchestrator
