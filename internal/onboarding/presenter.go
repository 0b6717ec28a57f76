package onboarding

import (
	"github.com/kestrelgames/onboarding-core-go/internal/calibration"
	"github.com/kestrelgames/onboarding-core-go/internal/catalog"
)

// Presenter receives presentation callbacks from the controller. Implementations
// draw screens, play cues, run the avatar builder. They are fire-and-forget
// from the controller's perspective: a presenter may fail or do nothing and
// core state stays consistent either way.
type Presenter interface {
	// StateChanged fires after every state change, with the cue that led
	// into it. Transition/warp pacing, if any, happens here.
	StateChanged(state State, cue Cue)
	// QuestionPresented fires when a calibration question becomes current,
	// including again after back navigation.
	QuestionPresented(question catalog.Question, index, total int)
	// Finalized fires when a calibration session produces its result.
	Finalized(result calibration.Result)
}

// NopPresenter ignores every callback. Used in tests and headless runs.
type NopPresenter struct{}

func (NopPresenter) StateChanged(State, Cue) {}

func (NopPresenter) QuestionPresented(catalog.Question, int, int) {}

func (NopPresenter) Finalized(calibration.Result) {}
