package tdi

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-tdi/internal/types"
)

// State is everything the alert logic carries between calls. It is created on
// attach and dropped on detach; nothing of it is persisted.
type State struct {
	// Boundaries holds, per alert kind, the aggregation boundary the kind last
	// fired or was seeded at. None means the kind is not initialized yet.
	Boundaries map[types.AlertKind]optional.Option[time.Time]
	// PreviousProcessedIndex is the last base index evaluated, -1 before the first call.
	PreviousProcessedIndex int
}

// NewState returns the state of a freshly attached indicator.
func NewState() State {
	boundaries := make(map[types.AlertKind]optional.Option[time.Time], len(types.AllAlertKinds))
	for _, kind := range types.AllAlertKinds {
		boundaries[kind] = optional.None[time.Time]()
	}

	return State{
		Boundaries:             boundaries,
		PreviousProcessedIndex: -1,
	}
}

// Boundary returns the stored boundary of kind.
func (s State) Boundary(kind types.AlertKind) optional.Option[time.Time] {
	if boundary, ok := s.Boundaries[kind]; ok {
		return boundary
	}

	return optional.None[time.Time]()
}

// IsNewBar reports whether baseIndex has not been evaluated before.
func (s State) IsNewBar(baseIndex int) bool {
	return baseIndex != s.PreviousProcessedIndex
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	boundaries := make(map[types.AlertKind]optional.Option[time.Time], len(s.Boundaries))
	for kind, boundary := range s.Boundaries {
		boundaries[kind] = boundary
	}

	return State{
		Boundaries:             boundaries,
		PreviousProcessedIndex: s.PreviousProcessedIndex,
	}
}
