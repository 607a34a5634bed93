package formschema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-nutriform/pkg/view"
)

func TestDefault_CoversEveryPreferenceControl(t *testing.T) {
	form, err := Default()
	if err != nil {
		t.Fatalf("default form: %v", err)
	}

	var controls []view.Control
	for _, field := range form.Fields {
		controls = append(controls, field.Control)
	}
	if diff := cmp.Diff(view.PreferenceControls, controls); diff != "" {
		t.Fatalf("controls mismatch (-want +got):\n%s", diff)
	}

	gender, _ := form.Field(view.ControlGender)
	if gender.Type != TypeSelect || !gender.Required {
		t.Fatalf("expected required gender select, got %#v", gender)
	}
	if !gender.Allows("female") || gender.Allows("") || gender.Allows("robot") {
		t.Fatalf("unexpected gender option checks")
	}

	goal, _ := form.Field(view.ControlGoal)
	if !goal.Allows("") {
		t.Fatalf("expected optional select to accept empty value")
	}
	if goal.OptionLabel("maintain") != "Maintain weight" || goal.OptionLabel("other") != "other" {
		t.Fatalf("unexpected option labels")
	}
}

func TestParse_JSONAndDefaults(t *testing.T) {
	form, err := Parse([]byte(`{"fields":[{"control":"age","type":"number"},{"control":"goal","options":[{"value":"cut"}]}]}`), "inline.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if form.Title != "Nutrition Analysis" || form.FoodItems.AddLabel != "Add food item" {
		t.Fatalf("expected defaults applied, got %#v", form)
	}
	goal, ok := form.Field(view.ControlGoal)
	if !ok || goal.Type != TypeSelect || goal.Options[0].Label != "cut" {
		t.Fatalf("expected inferred select with labelled option, got %#v", goal)
	}
	if age, _ := form.Field(view.ControlAge); age.Label != "age" {
		t.Fatalf("expected label defaulted to control name, got %q", age.Label)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":           "   ",
		"garbage":         "{not: [valid",
		"unknown":         "fields:\n  - control: shoe_size\n",
		"duplicate":       "fields:\n  - control: age\n  - control: age\n",
		"bad type":        "fields:\n  - control: age\n    type: slider\n",
		"empty select":    "fields:\n  - control: gender\n    type: select\n",
		"option no value": "fields:\n  - control: gender\n    options:\n      - label: Male\n",
	}
	for name, data := range cases {
		if _, err := Parse([]byte(data), name); err == nil {
			t.Fatalf("%s: expected error", name)
		} else if !strings.HasPrefix(err.Error(), "formschema: ") {
			t.Fatalf("%s: expected package prefix, got %v", name, err)
		}
	}
}

func TestLoadFS_AndLoadFile(t *testing.T) {
	yamlDoc := []byte("title: Custom\nfields:\n  - control: gender\n    options:\n      - value: x\n        label: X\n")

	form, err := LoadFS(fstest.MapFS{"form.yaml": {Data: yamlDoc}}, "form.yaml")
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if form.Title != "Custom" || form.Source != "form.yaml" {
		t.Fatalf("unexpected form %#v", form)
	}

	path := filepath.Join(t.TempDir(), "form.yaml")
	if err := os.WriteFile(path, yamlDoc, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFile(path); err != nil {
		t.Fatalf("load file: %v", err)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected missing file error")
	}
}
