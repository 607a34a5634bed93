package orchestrator

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-nutriform/pkg/model"
	"github.com/goliatone/go-nutriform/pkg/view"
)

// State is the active UI mode.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateResults
	StateNoResults
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateResults:
		return "results"
	case StateNoResults:
		return "no_results"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// EventKind names what happened.
type EventKind int

const (
	EventSubmit EventKind = iota
	EventValidationFailed
	EventSucceeded
	EventFailed
	EventReset
)

func (k EventKind) String() string {
	switch k {
	case EventSubmit:
		return "submit"
	case EventValidationFailed:
		return "validation_failed"
	case EventSucceeded:
		return "succeeded"
	case EventFailed:
		return "failed"
	case EventReset:
		return "reset"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is an input to Transition. Message is set for ValidationFailed and
// Failed, Result for Succeeded.
type Event struct {
	Kind    EventKind
	Message string
	Result  model.AnalysisResult
}

// Submit is the user's submit trigger.
func Submit() Event { return Event{Kind: EventSubmit} }

// Reset returns the view to the placeholder.
func Reset() Event { return Event{Kind: EventReset} }

// ValidationFailed reports a local validation failure.
func ValidationFailed(message string) Event {
	return Event{Kind: EventValidationFailed, Message: message}
}

// Failed reports a failed analysis call or a result that could not be shown.
func Failed(message string) Event {
	return Event{Kind: EventFailed, Message: message}
}

// Succeeded carries the analysis result.
func Succeeded(result model.AnalysisResult) Event {
	return Event{Kind: EventSucceeded, Result: result}
}

// EffectKind names a surface change.
type EffectKind int

const (
	EffectShow EffectKind = iota
	EffectHide
	EffectRenderResult
	EffectRenderError
	EffectEnableSubmit
	EffectDisableSubmit
)

// Effect is a single change Transition asks for.
type Effect struct {
	Kind    EffectKind
	Region  view.Region
	Message string
	Result  model.AnalysisResult
}

var (
	// ErrSubmitInFlight is returned while a submission is awaiting the
	// service. The submit control is disabled for that period.
	ErrSubmitInFlight = errors.New("orchestrator: submission already in flight")
	// ErrInvalidTransition is returned for events the current state does
	// not accept.
	ErrInvalidTransition = errors.New("orchestrator: invalid transition")
)

func show(region view.Region) Effect { return Effect{Kind: EffectShow, Region: region} }
func hide(region view.Region) Effect { return Effect{Kind: EffectHide, Region: region} }

// Transition returns the next state and the effects that realise it. It
// has no side effects. On error the state is returned unchanged with no
// effects.
func Transition(state State, event Event) (State, []Effect, error) {
	if state == StateLoading {
		switch event.Kind {
		case EventSubmit, EventReset:
			return state, nil, ErrSubmitInFlight
		case EventValidationFailed, EventFailed:
			return StateError, []Effect{
				hide(view.RegionLoading),
				{Kind: EffectRenderError, Message: event.Message},
				show(view.RegionError),
				{Kind: EffectEnableSubmit},
			}, nil
		case EventSucceeded:
			return StateResults, []Effect{
				hide(view.RegionLoading),
				hide(view.RegionNoResults),
				hide(view.RegionError),
				{Kind: EffectRenderResult, Result: event.Result},
				show(view.RegionResults),
				{Kind: EffectEnableSubmit},
			}, nil
		}
		return state, nil, invalid(state, event)
	}

	switch event.Kind {
	case EventSubmit:
		return StateLoading, []Effect{
			hide(view.RegionResults),
			hide(view.RegionNoResults),
			hide(view.RegionError),
			show(view.RegionLoading),
			{Kind: EffectDisableSubmit},
		}, nil
	case EventReset:
		return StateNoResults, []Effect{
			hide(view.RegionResults),
			hide(view.RegionError),
			show(view.RegionNoResults),
		}, nil
	case EventFailed:
		if state == StateResults {
			return StateError, []Effect{
				hide(view.RegionResults),
				{Kind: EffectRenderError, Message: event.Message},
				show(view.RegionError),
				{Kind: EffectEnableSubmit},
			}, nil
		}
	}
	return state, nil, invalid(state, event)
}

func invalid(state State, event Event) error {
	return fmt.Errorf("%w: %s on %s", ErrInvalidTransition, event.Kind, state)
}
