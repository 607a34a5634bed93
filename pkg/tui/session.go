// Package tui runs the nutrition form in a terminal: a menu to manage food
// items and preferences, submission through the orchestrator and a printed
// report of the result.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-nutriform/pkg/collector"
	"github.com/goliatone/go-nutriform/pkg/foodlist"
	"github.com/goliatone/go-nutriform/pkg/formschema"
	"github.com/goliatone/go-nutriform/pkg/model"
	"github.com/goliatone/go-nutriform/pkg/orchestrator"
	"github.com/goliatone/go-nutriform/pkg/view"
)

// Submitter runs a submission. *orchestrator.Orchestrator satisfies it.
type Submitter interface {
	Submit(ctx context.Context) (orchestrator.Outcome, error)
}

// Reporter turns a result into printable text. *render.Renderer satisfies
// it.
type Reporter interface {
	Report(result model.AnalysisResult) (string, error)
}

// Values reads and writes preference control values. *view.Document
// satisfies it.
type Values interface {
	Value(control view.Control) string
	SetValue(control view.Control, value string)
}

// Menu entries in display order.
const (
	ActionAdd = iota
	ActionEdit
	ActionRemove
	ActionPreferences
	ActionAnalyze
	ActionQuit
)

var menu = []string{
	"Add food item",
	"Edit food item",
	"Remove food item",
	"Set preferences",
	"Analyze",
	"Quit",
}

const (
	noneOption = "(none)"
	// itemPageSize caps the rows shown when picking a food item.
	itemPageSize = 10
)

var errNotANumber = errors.New("Please enter a number.")

// Option configures a Session.
type Option func(*Session)

// WithDriver overrides the survey driver.
func WithDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithForm overrides the embedded form definition.
func WithForm(form *formschema.Form) Option {
	return func(s *Session) {
		if form != nil {
			s.form = form
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session is one interactive run.
type Session struct {
	list      *foodlist.Manager
	values    Values
	submitter Submitter
	reporter  Reporter
	form      *formschema.Form
	driver    PromptDriver
	logger    *zap.Logger
}

// NewSession wires a session over the given list and values.
func NewSession(list *foodlist.Manager, values Values, submitter Submitter, reporter Reporter, options ...Option) (*Session, error) {
	if list == nil || values == nil || submitter == nil || reporter == nil {
		return nil, errors.New("tui: list, values, submitter and reporter are required")
	}
	s := &Session{
		list:      list,
		values:    values,
		submitter: submitter,
		reporter:  reporter,
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.form == nil {
		form, err := formschema.Default()
		if err != nil {
			return nil, err
		}
		s.form = form
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s, nil
}

// Run loops over the menu until the user quits. An aborted prompt returns
// ErrAborted.
func (s *Session) Run(ctx context.Context) error {
	if err := s.driver.Info(ctx, s.form.Title); err != nil {
		return err
	}
	for {
		if err := s.driver.Info(ctx, s.describeItems()); err != nil {
			return err
		}
		choice, err := s.driver.Select(ctx, SelectConfig{
			Message:      "What next?",
			Options:      menu,
			DefaultIndex: ActionAnalyze,
		})
		if err != nil {
			return err
		}

		switch choice {
		case ActionAdd:
			err = s.addItem(ctx)
		case ActionEdit:
			err = s.editItem(ctx)
		case ActionRemove:
			err = s.removeItem(ctx)
		case ActionPreferences:
			err = s.Preferences(ctx)
		case ActionAnalyze:
			var again bool
			again, err = s.analyze(ctx)
			if err == nil && !again {
				return nil
			}
		case ActionQuit:
			return nil
		default:
			err = fmt.Errorf("tui: unknown menu choice %d", choice)
		}
		if err != nil {
			return err
		}
	}
}

// Preferences prompts for every preference control in form order.
func (s *Session) Preferences(ctx context.Context) error {
	for _, field := range s.form.Fields {
		value, err := s.askField(ctx, field)
		if err != nil {
			return err
		}
		s.values.SetValue(field.Control, value)
	}
	return nil
}

func (s *Session) askField(ctx context.Context, field formschema.Field) (string, error) {
	current := s.values.Value(field.Control)
	if field.Type != formschema.TypeSelect {
		cfg := InputConfig{
			Message: field.Label,
			Default: current,
			Help:    strings.TrimSpace(field.Placeholder + " " + field.Help),
		}
		if field.Type == formschema.TypeNumber {
			cfg.Validator = numberValidator(field.Required)
		}
		return s.driver.Input(ctx, cfg)
	}

	options := make([]string, 0, len(field.Options)+1)
	values := make([]string, 0, len(field.Options)+1)
	if !field.Required {
		options = append(options, noneOption)
		values = append(values, "")
	}
	defaultIndex := 0
	for _, option := range field.Options {
		if option.Value == current {
			defaultIndex = len(options)
		}
		options = append(options, option.Label)
		values = append(values, option.Value)
	}

	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      field.Label,
		Options:      options,
		DefaultIndex: defaultIndex,
		Help:         field.Help,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(values) {
		return "", fmt.Errorf("tui: choice %d out of range for %s", idx, field.Control)
	}
	return values[idx], nil
}

// numberValidator accepts answers with a leading integer. A blank answer is
// accepted only when the field is optional.
func numberValidator(required bool) func(string) error {
	return func(answer string) error {
		if strings.TrimSpace(answer) == "" && !required {
			return nil
		}
		if !collector.ParseInt(answer).IsSet() {
			return errNotANumber
		}
		return nil
	}
}

func (s *Session) addItem(ctx context.Context) error {
	value, err := s.driver.Input(ctx, InputConfig{
		Message: s.form.FoodItems.Label,
		Help:    s.form.FoodItems.Placeholder,
	})
	if err != nil {
		return err
	}
	entries := s.list.Entries()
	// Fill the trailing slot when it is still empty instead of adding a
	// second blank one.
	if last := entries[len(entries)-1]; strings.TrimSpace(last.Value) == "" {
		return s.list.SetValue(last.ID, value)
	}
	return s.list.SetValue(s.list.Add(), value)
}

func (s *Session) editItem(ctx context.Context) error {
	entry, err := s.pickItem(ctx, "Edit which item?")
	if err != nil {
		return err
	}
	value, err := s.driver.Input(ctx, InputConfig{
		Message: s.form.FoodItems.Label,
		Default: entry.Value,
		Help:    s.form.FoodItems.Placeholder,
	})
	if err != nil {
		return err
	}
	return s.list.SetValue(entry.ID, value)
}

func (s *Session) removeItem(ctx context.Context) error {
	entry, err := s.pickItem(ctx, "Remove which item?")
	if err != nil {
		return err
	}
	if !s.list.Activate(entry.ID) {
		return s.driver.Info(ctx, "At least one food item entry is required.")
	}
	return nil
}

func (s *Session) pickItem(ctx context.Context, message string) (foodlist.Entry, error) {
	entries := s.list.Entries()
	options := make([]string, 0, len(entries))
	for i, entry := range entries {
		options = append(options, itemLabel(i, entry.Value))
	}
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:  message,
		Options:  options,
		PageSize: min(len(options), itemPageSize),
	})
	if err != nil {
		return foodlist.Entry{}, err
	}
	if idx < 0 || idx >= len(entries) {
		return foodlist.Entry{}, fmt.Errorf("tui: item %d out of range", idx)
	}
	return entries[idx], nil
}

// analyze submits and prints the outcome. It reports whether the user
// wants to keep going.
func (s *Session) analyze(ctx context.Context) (bool, error) {
	outcome, err := s.submitter.Submit(ctx)
	if err != nil {
		if errors.Is(err, orchestrator.ErrSubmitInFlight) {
			return true, s.driver.Info(ctx, "An analysis is already running.")
		}
		return false, err
	}

	switch outcome.State {
	case orchestrator.StateResults:
		report, err := s.reporter.Report(outcome.Result)
		if err != nil {
			return false, err
		}
		if err := s.driver.Info(ctx, report); err != nil {
			return false, err
		}
		return s.driver.Confirm(ctx, ConfirmConfig{Message: "Adjust and analyze again?"})
	default:
		s.logger.Debug("submission ended in error", zap.Error(outcome.Err))
		return true, s.driver.Info(ctx, "Error: "+outcome.Message)
	}
}

func (s *Session) describeItems() string {
	var b strings.Builder
	b.WriteString(s.form.FoodItems.Label)
	b.WriteString(":")
	for i, entry := range s.list.Entries() {
		b.WriteString("\n  ")
		b.WriteString(itemLabel(i, entry.Value))
	}
	return b.String()
}

func itemLabel(i int, value string) string {
	if strings.TrimSpace(value) == "" {
		value = "(empty)"
	}
	return fmt.Sprintf("%d. %s", i+1, value)
}
