package tdi

import (
	"github.com/rxtech-lab/argo-tdi/internal/feed"
	"github.com/rxtech-lab/argo-tdi/internal/indicator"
	"github.com/rxtech-lab/argo-tdi/internal/logger"
	"github.com/rxtech-lab/argo-tdi/internal/types"
	"github.com/rxtech-lab/argo-tdi/pkg/errors"
	"go.uber.org/zap"
)

// Update is the result of evaluating one base index.
type Update struct {
	BaseIndex       int
	AggregatedIndex int
	// LaggedIndex is the aggregation bar crossings were detected on.
	LaggedIndex  int
	RepaintCount int
	// Lines is the oscillator sample written to every repainted base index.
	Lines types.Lines
	// NewBar is false when BaseIndex was already evaluated (an intrabar re-tick).
	NewBar bool
	// Computable is false when the index is still inside the warm-up period.
	Computable bool
	// Alerts are the events fired by this call, in evaluation order. IDs are
	// left empty.
	Alerts []types.AlertEvent
}

// RepaintFrom returns the first base index receiving Lines.
func (u Update) RepaintFrom() int {
	return u.BaseIndex - u.RepaintCount + 1
}

// Engine evaluates base indices against an explicit State. It keeps no alert
// state of its own.
type Engine struct {
	aligner      *Aligner
	pipeline     indicator.Pipeline
	appliedPrice types.AppliedPrice
	lag          types.TriggerLag
	lookback     int
	kinds        []types.AlertKind
	logger       *logger.Logger
}

// NewEngine wires an engine for config over the arenas of provider. A nil
// pipeline builds the oscillator described by config.
func NewEngine(config Config, provider feed.SeriesProvider, pipeline indicator.Pipeline, log *logger.Logger) (*Engine, error) {
	if pipeline == nil {
		tdi, err := indicator.NewTDI(config.PipelineOptions())
		if err != nil {
			return nil, err
		}

		pipeline = tdi
	}

	return &Engine{
		aligner:      NewAligner(provider, config.BaseResolution, config.Aggregation(), log),
		pipeline:     pipeline,
		appliedPrice: config.AppliedPrice,
		lag:          config.TriggerLag,
		lookback:     config.Lookback,
		kinds:        config.Alerts.Kinds(),
		logger:       log,
	}, nil
}

// Aligner returns the timeframe aligner of the engine.
func (e *Engine) Aligner() *Aligner {
	return e.aligner
}

// Evaluate computes the oscillator for baseIndex, detects crossings at the
// lagged aggregation index and runs them through the debouncer.
//
// An InsufficientDataError means baseIndex is not computable yet; state is
// returned unchanged in that case. A baseIndex lower than the last evaluated
// one is rejected.
func (e *Engine) Evaluate(state State, baseIndex int) (Update, State, error) {
	if baseIndex < state.PreviousProcessedIndex {
		return Update{}, state, errors.Newf(errors.ErrCodeIndexRegression,
			"base index %d is lower than already processed index %d", baseIndex, state.PreviousProcessedIndex)
	}

	alignment, err := e.aligner.Align(baseIndex)
	if err != nil {
		return Update{}, state, err
	}

	agg := e.aligner.Aggregate()
	aggIndex := alignment.AggregatedIndex

	// series index 0 is aggregation bar start
	start := e.windowStart(aggIndex)

	series, err := e.pipeline.Compute(agg.PricesFrom(e.appliedPrice, start, aggIndex))
	if err != nil {
		return Update{}, state, err
	}

	lines, ok := series.At(aggIndex - start)
	if !ok {
		return Update{}, state, errors.NewInsufficientDataErrorf(e.pipeline.WarmUp()+1, aggIndex+1, agg.Symbol(),
			"oscillator needs %d aggregation bars, have %d", e.pipeline.WarmUp()+1, aggIndex+1)
	}

	newest := agg.Last()
	if newest.IsNone() {
		return Update{}, state, errors.NewInsufficientDataError(1, 0, agg.Symbol(), "aggregation stream is empty")
	}

	newestBoundary := newest.Unwrap().Time

	baseBar, err := e.aligner.Base().At(baseIndex)
	if err != nil {
		return Update{}, state, err
	}

	update := Update{
		BaseIndex:       baseIndex,
		AggregatedIndex: aggIndex,
		LaggedIndex:     aggIndex - e.lag.Offset(),
		RepaintCount:    alignment.RepaintCount,
		Lines:           lines,
		NewBar:          state.IsNewBar(baseIndex),
		Computable:      true,
		Alerts:          nil,
	}

	next := state.Clone()
	next.PreviousProcessedIndex = baseIndex

	for _, kind := range e.kinds {
		direction := Detect(kind, series, update.LaggedIndex-start)

		var transition Transition
		transition, next = Step(next, kind, direction, newestBoundary)

		switch transition {
		case Seeded:
			e.logger.Debug("Alert seeded",
				zap.String("kind", string(kind)),
				zap.Int("index", baseIndex),
				zap.Time("boundary", newestBoundary),
			)
		case Fired:
			laggedLines, _ := series.At(update.LaggedIndex - start)

			update.Alerts = append(update.Alerts, types.AlertEvent{
				ID:              "",
				Kind:            kind,
				Direction:       direction,
				Boundary:        newestBoundary,
				BaseIndex:       baseIndex,
				MarkIndex:       e.markIndex(baseIndex, alignment),
				AggregatedIndex: aggIndex,
				LaggedIndex:     update.LaggedIndex,
				Lines:           laggedLines,
				Current:         lines,
				Time:            baseBar.Time,
			})
		case Suppressed:
		}
	}

	return update, next, nil
}

// windowStart returns the first aggregation bar fed to the pipeline for
// aggIndex. The whole history is recomputed on every tick, so without a
// lookback a replay grows quadratically with its length.
func (e *Engine) windowStart(aggIndex int) int {
	if e.lookback <= 0 {
		return 0
	}

	return max(0, aggIndex+1-e.lookback)
}

// markIndex is the base bar the annotation of an alert is drawn on: the
// current bar when evaluating the forming aggregation bar, otherwise the last
// base bar of the previous aggregation bar.
func (e *Engine) markIndex(baseIndex int, alignment AlignmentResult) int {
	if e.lag == types.TriggerLagCurrent {
		return baseIndex
	}

	if mark := baseIndex - alignment.RepaintCount; mark >= 0 {
		return mark
	}

	return baseIndex
}
