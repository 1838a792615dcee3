package tdi

import (
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-tdi/internal/types"
	"github.com/stretchr/testify/suite"
)

type DebouncerTestSuite struct {
	suite.Suite
}

func TestDebouncerSuite(t *testing.T) {
	suite.Run(t, new(DebouncerTestSuite))
}

func (suite *DebouncerTestSuite) TestSeedsWithoutFiring() {
	state := NewState()
	boundary := testStart.Add(time.Hour)

	for _, direction := range []types.Direction{types.DirectionNone, types.DirectionBullish, types.DirectionBearish} {
		transition, next := Step(state, types.AlertKindPriceHook, direction, boundary)

		suite.Equal(Seeded, transition, direction)
		suite.Equal(Armed, Phase(next, types.AlertKindPriceHook))
		suite.Equal(boundary, next.Boundary(types.AlertKindPriceHook).Unwrap())
	}
}

func (suite *DebouncerTestSuite) TestFiresOncePerBoundary() {
	kind := types.AlertKindPriceVsMiddle
	first := testStart
	second := testStart.Add(4 * time.Minute)

	_, state := Step(NewState(), kind, types.DirectionNone, first)

	transition, state := Step(state, kind, types.DirectionBullish, first)
	suite.Equal(Suppressed, transition, "crossing under the seeded boundary")

	transition, state = Step(state, kind, types.DirectionBullish, second)
	suite.Equal(Fired, transition)
	suite.Equal(second, state.Boundary(kind).Unwrap())

	for range 5 {
		transition, state = Step(state, kind, types.DirectionBearish, second)
		suite.Equal(Suppressed, transition, "re-tick of the same boundary")
	}

	suite.Equal(second, state.Boundary(kind).Unwrap())
}

func (suite *DebouncerTestSuite) TestNoCrossingKeepsBoundary() {
	kind := types.AlertKindPriceVsSignal
	_, state := Step(NewState(), kind, types.DirectionNone, testStart)

	later := testStart.Add(time.Hour)
	transition, next := Step(state, kind, types.DirectionNone, later)

	suite.Equal(Suppressed, transition)
	suite.Equal(testStart, next.Boundary(kind).Unwrap())

	// the stored boundary is still old, so a crossing later on the same bar fires
	transition, next = Step(next, kind, types.DirectionBearish, later)
	suite.Equal(Fired, transition)
	suite.Equal(later, next.Boundary(kind).Unwrap())
}

func (suite *DebouncerTestSuite) TestOlderBoundaryIsSuppressed() {
	kind := types.AlertKindLineBvsMiddle
	_, state := Step(NewState(), kind, types.DirectionNone, testStart.Add(time.Hour))

	transition, _ := Step(state, kind, types.DirectionBullish, testStart)
	suite.Equal(Suppressed, transition)
}

func (suite *DebouncerTestSuite) TestKindsAreIndependent() {
	_, state := Step(NewState(), types.AlertKindPriceHook, types.DirectionNone, testStart)

	suite.Equal(Armed, Phase(state, types.AlertKindPriceHook))
	suite.Equal(Uninitialized, Phase(state, types.AlertKindPriceVsMiddle))

	transition, _ := Step(state, types.AlertKindPriceVsMiddle, types.DirectionBullish, testStart.Add(time.Minute))
	suite.Equal(Seeded, transition)
}

func (suite *DebouncerTestSuite) TestDoesNotMutateInput() {
	kind := types.AlertKindPriceVsMiddle
	state := NewState()

	_, seeded := Step(state, kind, types.DirectionNone, testStart)
	suite.True(state.Boundary(kind).IsNone())

	_, fired := Step(seeded, kind, types.DirectionBullish, testStart.Add(time.Minute))
	suite.Equal(testStart, seeded.Boundary(kind).Unwrap())
	suite.Equal(testStart.Add(time.Minute), fired.Boundary(kind).Unwrap())
}

func (suite *DebouncerTestSuite) TestStringers() {
	suite.Equal("uninitialized", Uninitialized.String())
	suite.Equal("armed", Armed.String())
	suite.Equal("seeded", Seeded.String())
	suite.Equal("fired", Fired.String())
	suite.Equal("suppressed", Suppressed.String())
}

func (suite *DebouncerTestSuite) TestState() {
	state := NewState()

	suite.Equal(-1, state.PreviousProcessedIndex)
	suite.True(state.IsNewBar(0))
	suite.Len(state.Boundaries, len(types.AllAlertKinds))
	suite.True(state.Boundary(types.AlertKind("unknown")).IsNone())

	state.PreviousProcessedIndex = 3
	clone := state.Clone()
	clone.PreviousProcessedIndex = 4
	clone.Boundaries[types.AlertKindPriceHook] = optional.Some(testStart)

	suite.False(state.IsNewBar(3))
	suite.True(state.IsNewBar(4))
	suite.True(state.Boundary(types.AlertKindPriceHook).IsNone())
	suite.Equal(3, state.PreviousProcessedIndex)
}
