package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"

	"github.com/goliatone/go-nutriform/pkg/client"
	"github.com/goliatone/go-nutriform/pkg/collector"
	"github.com/goliatone/go-nutriform/pkg/model"
	"github.com/goliatone/go-nutriform/pkg/validation"
	"github.com/goliatone/go-nutriform/pkg/view"
)

// FallbackMessage is shown when a failure carries no service detail.
const FallbackMessage = "An error occurred while analyzing your nutrition data."

// Analyzer performs the remote analysis. *client.Client satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, req model.AnalysisRequest) (model.AnalysisResult, error)
}

// ResultRenderer draws results and errors. *render.Renderer satisfies it.
type ResultRenderer interface {
	RenderSuccess(surface view.Surface, result model.AnalysisResult) error
	RenderError(surface view.Surface, message string)
}

// Option customises the orchestrator.
type Option func(*Orchestrator)

// WithEntries sets the food-item list read on every submission.
func WithEntries(entries collector.Entries) Option {
	return func(o *Orchestrator) {
		o.entries = entries
	}
}

// WithControls sets where preference values are read from.
func WithControls(controls view.Controls) Option {
	return func(o *Orchestrator) {
		o.controls = controls
	}
}

// WithSurface sets the surface committed frames are written to.
func WithSurface(surface view.Surface) Option {
	return func(o *Orchestrator) {
		o.surface = surface
	}
}

// WithAnalyzer sets the analysis backend.
func WithAnalyzer(analyzer Analyzer) Option {
	return func(o *Orchestrator) {
		o.analyzer = analyzer
	}
}

// WithRenderer sets the result renderer.
func WithRenderer(renderer ResultRenderer) Option {
	return func(o *Orchestrator) {
		o.renderer = renderer
	}
}

// WithFallbackMessage overrides FallbackMessage.
func WithFallbackMessage(message string) Option {
	return func(o *Orchestrator) {
		if message != "" {
			o.fallback = message
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Outcome describes how a submission ended.
type Outcome struct {
	State   State
	Request model.AnalysisRequest
	Result  model.AnalysisResult
	// Err is the validation, transport, service or render error behind an
	// Error state.
	Err error
	// Message is the text written to the error region.
	Message string
}

// Orchestrator owns the UI state. Submit and Reset are safe for concurrent
// use; the lock is released while the service call is in flight.
type Orchestrator struct {
	mu       sync.Mutex
	state    State
	entries  collector.Entries
	controls view.Controls
	surface  view.Surface
	analyzer Analyzer
	renderer ResultRenderer
	fallback string
	logger   *zap.Logger
}

// New builds an Orchestrator in StateIdle. Entries, controls, surface,
// analyzer and renderer are required.
func New(options ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		state:    StateIdle,
		fallback: FallbackMessage,
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}

	switch {
	case o.entries == nil:
		return nil, errors.New("orchestrator: entries are required")
	case o.controls == nil:
		return nil, errors.New("orchestrator: controls are required")
	case o.surface == nil:
		return nil, errors.New("orchestrator: surface is required")
	case o.analyzer == nil:
		return nil, errors.New("orchestrator: analyzer is required")
	case o.renderer == nil:
		return nil, errors.New("orchestrator: renderer is required")
	}
	return o, nil
}

// State returns the current state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Submit runs one submission. The returned error is non-nil only when the
// submission was refused (ErrSubmitInFlight); every accepted submission
// ends in StateResults or StateError as reported by the Outcome.
func (o *Orchestrator) Submit(ctx context.Context) (Outcome, error) {
	o.mu.Lock()
	frame := view.NewFrame()
	if err := o.fire(frame, Submit()); err != nil {
		state := o.state
		o.mu.Unlock()
		return Outcome{State: state}, err
	}

	req := collector.Collect(o.entries, o.controls)
	if err := validation.Validate(req); err != nil {
		message := err.Error()
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			message = vErr.Message
		}
		// Loading and its reversal land in the same frame, so the surface
		// never sees the indicator.
		_ = o.fire(frame, ValidationFailed(message))
		frame.Commit(o.surface)
		o.mu.Unlock()

		o.logger.Debug("submission rejected by validation", zap.Error(err))
		return Outcome{State: StateError, Request: req, Err: err, Message: message}, nil
	}

	frame.Commit(o.surface)
	o.mu.Unlock()

	result, err := o.analyze(ctx, req)

	o.mu.Lock()
	defer o.mu.Unlock()
	defer frame.Commit(o.surface)

	if err != nil {
		message := o.message(err)
		_ = o.fire(frame, Failed(message))
		o.logger.Warn("analysis failed", zap.Error(err), zap.String("message", message))
		return Outcome{State: o.state, Request: req, Err: err, Message: message}, nil
	}

	if err := o.fire(frame, Succeeded(result)); err != nil {
		_ = o.fire(frame, Failed(o.fallback))
		o.logger.Warn("analysis result could not be rendered", zap.Error(err))
		return Outcome{State: o.state, Request: req, Result: result, Err: err, Message: o.fallback}, nil
	}
	return Outcome{State: o.state, Request: req, Result: result}, nil
}

// Reset hides results and errors and shows the placeholder. It is refused
// while a submission is in flight.
func (o *Orchestrator) Reset() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	frame := view.NewFrame()
	if err := o.fire(frame, Reset()); err != nil {
		return err
	}
	frame.Commit(o.surface)
	return nil
}

// analyze calls the analyzer, turning a panic into an error so the
// loading state is always left.
func (o *Orchestrator) analyze(ctx context.Context, req model.AnalysisRequest) (model.AnalysisResult, error) {
	var (
		catcher panics.Catcher
		result  model.AnalysisResult
		err     error
	)
	catcher.Try(func() {
		result, err = o.analyzer.Analyze(ctx, req.Clone())
	})
	if recovered := catcher.Recovered(); recovered != nil {
		return model.AnalysisResult{}, fmt.Errorf("orchestrator: analyzer panicked: %w", recovered.AsError())
	}
	return result, err
}

func (o *Orchestrator) message(err error) string {
	if detail, ok := client.Detail(err); ok {
		return detail
	}
	return o.fallback
}

// fire runs Transition and applies its effects to frame. It must be called
// with o.mu held. A render failure stops the remaining effects and is
// returned; the state has already moved.
func (o *Orchestrator) fire(frame *view.Frame, event Event) error {
	next, effects, err := Transition(o.state, event)
	if err != nil {
		return err
	}

	o.logger.Debug("state transition",
		zap.Stringer("from", o.state),
		zap.Stringer("to", next),
		zap.Stringer("event", event.Kind),
	)
	o.state = next

	for _, effect := range effects {
		switch effect.Kind {
		case EffectShow:
			frame.SetVisible(effect.Region, true)
		case EffectHide:
			frame.SetVisible(effect.Region, false)
		case EffectEnableSubmit:
			frame.SetEnabled(view.ControlSubmit, true)
		case EffectDisableSubmit:
			frame.SetEnabled(view.ControlSubmit, false)
		case EffectRenderError:
			o.renderer.RenderError(frame, effect.Message)
		case EffectRenderResult:
			if err := o.renderer.RenderSuccess(frame, effect.Result); err != nil {
				return err
			}
		}
	}
	return nil
}
