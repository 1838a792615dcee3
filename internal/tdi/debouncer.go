package tdi

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-tdi/internal/types"
)

// DebounceState is the phase of one alert kind.
type DebounceState int

const (
	// Uninitialized kinds have no boundary yet.
	Uninitialized DebounceState = iota
	// Armed kinds fire on the next crossing seen under a newer boundary.
	Armed
)

func (s DebounceState) String() string {
	if s == Armed {
		return "armed"
	}

	return "uninitialized"
}

// Transition is the outcome of one debouncer step.
type Transition int

const (
	// Seeded: the kind was initialized at the newest boundary without firing.
	Seeded Transition = iota
	// Fired: an alert is emitted and the boundary advanced.
	Fired
	// Suppressed: nothing happens, either there is no crossing or the
	// boundary already fired.
	Suppressed
)

func (t Transition) String() string {
	switch t {
	case Seeded:
		return "seeded"
	case Fired:
		return "fired"
	default:
		return "suppressed"
	}
}

// Phase returns the debounce phase of kind in s.
func Phase(s State, kind types.AlertKind) DebounceState {
	if s.Boundary(kind).IsSome() {
		return Armed
	}

	return Uninitialized
}

// Step advances the state machine of kind.
//
// An uninitialized kind is seeded with newestBoundary on its first evaluable
// call, whether or not direction is a crossing, so a crossing that already
// exists when the indicator attaches never fires. An armed kind fires when
// direction is a crossing and newestBoundary is strictly after the stored
// boundary, and then stores newestBoundary. Every other call is a no-op, which
// makes re-ticks of the same forming bar idempotent.
//
// s is not modified; the returned state is.
func Step(s State, kind types.AlertKind, direction types.Direction, newestBoundary time.Time) (Transition, State) {
	stored := s.Boundary(kind)

	if stored.IsNone() {
		next := s.Clone()
		next.Boundaries[kind] = optional.Some(newestBoundary)

		return Seeded, next
	}

	if direction == types.DirectionNone || !newestBoundary.After(stored.Unwrap()) {
		return Suppressed, s
	}

	next := s.Clone()
	next.Boundaries[kind] = optional.Some(newestBoundary)

	return Fired, next
}
