package app

import (
	"errors"

	"github.com/specialistvlad/burstrun/internal/plan"
	"github.com/specialistvlad/burstrun/internal/store"
)

// Phase is the state of a run. Succeeded and the failure phases are
// terminal.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseResolving
	PhaseExecuting
	PhaseSucceeded
	PhaseFailed
	PhaseCycleError
	PhaseLookupError
)

var phaseNames = [...]string{
	PhaseIdle:        "idle",
	PhaseResolving:   "resolving",
	PhaseExecuting:   "executing",
	PhaseSucceeded:   "succeeded",
	PhaseFailed:      "failed",
	PhaseCycleError:  "cycle_error",
	PhaseLookupError: "lookup_error",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Terminal reports whether no further transition is possible.
func (p Phase) Terminal() bool {
	return p >= PhaseSucceeded
}

// failurePhase classifies a resolution error.
func failurePhase(err error) Phase {
	switch {
	case errors.Is(err, plan.ErrDependencyCycle):
		return PhaseCycleError
	case errors.Is(err, store.ErrUnknownRecipe), errors.Is(err, store.ErrNoDefault):
		return PhaseLookupError
	default:
		return PhaseFailed
	}
}
