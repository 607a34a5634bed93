// Package validation checks a collected AnalysisRequest before it is sent.
// Rules run in a fixed order and the first failure is reported on its own.
package validation

import (
	"fmt"

	"github.com/goliatone/go-nutriform/pkg/model"
)

// Code identifies a failed rule.
type Code string

const (
	CodeEmptyFoodList Code = "empty_food_list"
	CodeInvalidAge    Code = "invalid_age"
	CodeMissingGender Code = "missing_gender"
)

var messages = map[Code]string{
	CodeEmptyFoodList: "Please enter at least one food item.",
	CodeInvalidAge:    "Please enter a valid age.",
	CodeMissingGender: "Please select your gender.",
}

// Message returns the user-facing text for code.
func Message(code Code) string {
	return messages[code]
}

// Error is a failed validation rule. It matches the sentinel errors below
// with errors.Is by code.
type Error struct {
	Code    Code
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

// Is reports whether target is a validation error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrEmptyFoodList = newError(CodeEmptyFoodList, "food_items")
	ErrInvalidAge    = newError(CodeInvalidAge, "user_preferences.age")
	ErrMissingGender = newError(CodeMissingGender, "user_preferences.gender")
)

func newError(code Code, field string) *Error {
	return &Error{Code: code, Field: field, Message: messages[code]}
}

// Validate returns nil when req can be submitted, otherwise the *Error of the
// first failing rule: empty food list, then invalid age, then missing gender.
func Validate(req model.AnalysisRequest) error {
	if len(req.FoodItems) == 0 {
		return newError(CodeEmptyFoodList, "food_items")
	}
	if age, ok := req.UserPreferences.Age.Get(); !ok || age < 1 {
		return newError(CodeInvalidAge, "user_preferences.age")
	}
	if req.UserPreferences.Gender == "" {
		return newError(CodeMissingGender, "user_preferences.gender")
	}
	return nil
}
