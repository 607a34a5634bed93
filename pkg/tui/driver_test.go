package tui

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
)

func TestTranslateSurveyErr(t *testing.T) {
	if err := translateSurveyErr(terminal.InterruptErr); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected interrupt to map to ErrAborted, got %v", err)
	}
	other := errors.New("boom")
	if err := translateSurveyErr(other); !errors.Is(err, other) {
		t.Fatalf("expected other errors to pass through, got %v", err)
	}
}

func TestSurveyDriver_CancelledContextSkipsPrompt(t *testing.T) {
	var out bytes.Buffer
	driver := NewSurveyDriver(&out)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := driver.Input(ctx, InputConfig{Message: "Age"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("input: expected context.Canceled, got %v", err)
	}
	if _, err := driver.Confirm(ctx, ConfirmConfig{Message: "Again?"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("confirm: expected context.Canceled, got %v", err)
	}
	idx, err := driver.Select(ctx, SelectConfig{Message: "Pick", Options: []string{"a"}})
	if !errors.Is(err, context.Canceled) || idx != -1 {
		t.Fatalf("select: expected -1 and context.Canceled, got %d, %v", idx, err)
	}
	if err := driver.Info(ctx, "hello"); !errors.Is(err, context.Canceled) {
		t.Fatalf("info: expected context.Canceled, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected nothing written, got %q", out.String())
	}
}

func TestSurveyDriver_SelectRequiresOptions(t *testing.T) {
	driver := NewSurveyDriver(&bytes.Buffer{})
	idx, err := driver.Select(context.Background(), SelectConfig{Message: "Pick"})
	if err == nil || idx != -1 {
		t.Fatalf("expected -1 and an error without options, got %d, %v", idx, err)
	}
}

func TestSurveyDriver_InfoWritesLine(t *testing.T) {
	var out bytes.Buffer
	driver := NewSurveyDriver(&out)
	if err := driver.Info(context.Background(), "Protein [LOW]"); err != nil {
		t.Fatalf("info: %v", err)
	}
	if got := out.String(); got != "Protein [LOW]\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestTextValidator(t *testing.T) {
	validate := textValidator(numberValidator(true))
	if err := validate("42"); err != nil {
		t.Fatalf("expected 42 accepted, got %v", err)
	}
	if err := validate("abc"); !errors.Is(err, errNotANumber) {
		t.Fatalf("expected errNotANumber, got %v", err)
	}
	if err := validate(42); err == nil {
		t.Fatalf("expected non-text answers rejected")
	}
}
