// Package formschema loads the presentation of the nutrition form: labels,
// placeholders and the choices offered for each preference control. The
// default form is embedded; a JSON or YAML file can replace it.
package formschema

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-nutriform/pkg/view"
)

//go:embed schema/form.yaml
var embedded embed.FS

const embeddedPath = "schema/form.yaml"

var (
	defaultOnce sync.Once
	defaultForm *Form
	defaultErr  error
)

// Default returns the embedded form. The value is shared; callers must not
// modify it.
func Default() (*Form, error) {
	defaultOnce.Do(func() {
		defaultForm, defaultErr = LoadFS(embedded, embeddedPath)
	})
	return defaultForm, defaultErr
}

// LoadFile reads a form definition from disk.
func LoadFile(path string) (*Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("formschema: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads a form definition from fsys.
func LoadFS(fsys fs.FS, path string) (*Form, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("formschema: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes data as JSON, then YAML, and validates the result. source
// is used in error messages.
func Parse(data []byte, source string) (*Form, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("formschema: file %s is empty", source)
	}

	var form Form
	if err := json.Unmarshal(data, &form); err != nil {
		form = Form{}
		if err := yaml.Unmarshal(data, &form); err != nil {
			return nil, fmt.Errorf("formschema: parse %s: invalid JSON or YAML", source)
		}
	}
	form.Source = source

	if err := normalise(&form); err != nil {
		return nil, err
	}
	return &form, nil
}

func normalise(form *Form) error {
	if strings.TrimSpace(form.Title) == "" {
		form.Title = "Nutrition Analysis"
	}
	if form.FoodItems.Label == "" {
		form.FoodItems.Label = "Food items"
	}
	if form.FoodItems.AddLabel == "" {
		form.FoodItems.AddLabel = "Add food item"
	}

	seen := make(map[view.Control]struct{}, len(form.Fields))
	for i := range form.Fields {
		field := &form.Fields[i]
		field.Control = view.Control(strings.TrimSpace(string(field.Control)))

		if !slices.Contains(view.PreferenceControls, field.Control) {
			return fmt.Errorf("formschema: %s: unknown control %q", form.Source, field.Control)
		}
		if _, dup := seen[field.Control]; dup {
			return fmt.Errorf("formschema: %s: duplicate control %q", form.Source, field.Control)
		}
		seen[field.Control] = struct{}{}

		if field.Label == "" {
			field.Label = string(field.Control)
		}
		switch field.Type {
		case "":
			field.Type = TypeText
			if len(field.Options) > 0 {
				field.Type = TypeSelect
			}
		case TypeText, TypeNumber, TypeSelect:
		default:
			return fmt.Errorf("formschema: %s: control %q has unsupported type %q", form.Source, field.Control, field.Type)
		}
		if field.Type == TypeSelect && len(field.Options) == 0 {
			return fmt.Errorf("formschema: %s: select %q has no options", form.Source, field.Control)
		}
		for j := range field.Options {
			option := &field.Options[j]
			option.Value = strings.TrimSpace(option.Value)
			if option.Value == "" {
				return fmt.Errorf("formschema: %s: select %q has an option without value", form.Source, field.Control)
			}
			if option.Label == "" {
				option.Label = option.Value
			}
		}
	}
	return nil
}
