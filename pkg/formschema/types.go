package formschema

import "github.com/goliatone/go-nutriform/pkg/view"

// Field types.
const (
	TypeText   = "text"
	TypeNumber = "number"
	TypeSelect = "select"
)

// Form describes how the nutrition form is presented.
type Form struct {
	Title     string          `json:"title" yaml:"title"`
	FoodItems FoodItemsConfig `json:"foodItems" yaml:"foodItems"`
	Fields    []Field         `json:"fields" yaml:"fields"`
	Source    string          `json:"-" yaml:"-"`
}

// FoodItemsConfig labels the dynamic food-item list.
type FoodItemsConfig struct {
	Label       string `json:"label" yaml:"label"`
	Placeholder string `json:"placeholder" yaml:"placeholder"`
	AddLabel    string `json:"addLabel" yaml:"addLabel"`
}

// Field is one preference control.
type Field struct {
	Control     view.Control `json:"control" yaml:"control"`
	Label       string       `json:"label" yaml:"label"`
	Type        string       `json:"type,omitempty" yaml:"type,omitempty"`
	Placeholder string       `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Help        string       `json:"help,omitempty" yaml:"help,omitempty"`
	Required    bool         `json:"required,omitempty" yaml:"required,omitempty"`
	Options     []Option     `json:"options,omitempty" yaml:"options,omitempty"`
}

// Option is one choice of a select field.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Field returns the configuration for control.
func (f *Form) Field(control view.Control) (Field, bool) {
	if f == nil {
		return Field{}, false
	}
	for _, field := range f.Fields {
		if field.Control == control {
			return field, true
		}
	}
	return Field{}, false
}

// Allows reports whether value is acceptable for a select field. Empty is
// accepted for optional selects; non-select fields accept anything.
func (fd Field) Allows(value string) bool {
	if fd.Type != TypeSelect {
		return true
	}
	if value == "" {
		return !fd.Required
	}
	for _, option := range fd.Options {
		if option.Value == value {
			return true
		}
	}
	return false
}

// OptionLabel returns the label of the option with value, or value itself.
func (fd Field) OptionLabel(value string) string {
	for _, option := range fd.Options {
		if option.Value == value {
			return option.Label
		}
	}
	return value
}
