package tdi

import (
	"time"

	"github.com/rxtech-lab/argo-tdi/internal/feed"
	"github.com/rxtech-lab/argo-tdi/internal/logger"
	"github.com/rxtech-lab/argo-tdi/internal/types"
	"github.com/rxtech-lab/argo-tdi/pkg/errors"
	"go.uber.org/zap"
)

// AlignmentResult maps one base bar onto the aggregation stream.
type AlignmentResult struct {
	// AggregatedIndex is the aggregation bar whose open-time bracket contains
	// the base bar.
	AggregatedIndex int
	// RepaintCount is the number of trailing base bars, the current one
	// included, that map to AggregatedIndex. Always at least 1.
	RepaintCount int
}

// RepaintFrom returns the first base index that shares the aggregation bar of baseIndex.
func (r AlignmentResult) RepaintFrom(baseIndex int) int {
	return baseIndex - r.RepaintCount + 1
}

// Aligner maps base resolution bars to the aggregation bar they belong to.
type Aligner struct {
	base     *feed.BarSeries
	agg      *feed.BarSeries
	identity bool
	// base bars per aggregation bar
	ratio int
}

// NewAligner creates an aligner over the arenas of provider. When the
// aggregation resolution is finer than the base resolution the aligner falls
// back to identity alignment and logs a warning once.
func NewAligner(provider feed.SeriesProvider, baseRes, aggRes types.Resolution, log *logger.Logger) *Aligner {
	aligner := &Aligner{
		base:     provider.Base(),
		agg:      provider.Aggregate(),
		identity: false,
		ratio:    1,
	}

	switch {
	case aggRes.IsZero() || aggRes == baseRes:
		aligner.identity = true
	case aggRes.Duration() < baseRes.Duration():
		log.Warn("Aggregation resolution is finer than base resolution, falling back to base resolution",
			zap.String("base", string(baseRes)),
			zap.String("aggregation", string(aggRes)),
		)

		aligner.identity = true
	default:
		aligner.ratio = aggRes.Ratio(baseRes)
	}

	if aligner.identity {
		aligner.agg = aligner.base
	}

	return aligner
}

// Identity reports whether the aggregation stream is the base stream.
func (a *Aligner) Identity() bool {
	return a.identity
}

// Base returns the base arena.
func (a *Aligner) Base() *feed.BarSeries {
	return a.base
}

// Aggregate returns the arena the oscillator is computed on.
func (a *Aligner) Aggregate() *feed.BarSeries {
	return a.agg
}

// FirstComputable returns the lowest base index Align can resolve. Bars
// before it are inside the first aggregation period or open before the first
// aggregation bar, so no output is ever written to them.
func (a *Aligner) FirstComputable() int {
	if a.identity {
		return 0
	}

	first := a.ratio - 1

	if head, err := a.agg.At(0); err == nil {
		// count of base bars opening strictly before the first aggregation bar
		if before := a.base.IndexOf(head.Time.Add(-time.Nanosecond)) + 1; before > first {
			first = before
		}
	}

	return first
}

// Align resolves the aggregation bar of baseIndex and how many base bars repaint with it.
// It returns an InsufficientDataError when baseIndex precedes one full
// aggregation period of base bars or the first aggregation bar.
func (a *Aligner) Align(baseIndex int) (AlignmentResult, error) {
	bar, err := a.base.At(baseIndex)
	if err != nil {
		return AlignmentResult{}, err
	}

	if a.identity {
		return AlignmentResult{AggregatedIndex: baseIndex, RepaintCount: 1}, nil
	}

	if baseIndex+1 < a.ratio {
		return AlignmentResult{}, errors.NewInsufficientDataErrorf(a.ratio, baseIndex+1, a.base.Symbol(),
			"need %d base bars for one aggregation period, have %d", a.ratio, baseIndex+1)
	}

	aggIndex := a.agg.IndexOf(bar.Time)
	if aggIndex < 0 {
		return AlignmentResult{}, errors.NewInsufficientDataErrorf(1, 0, a.base.Symbol(),
			"base bar %d precedes the first aggregation bar", baseIndex)
	}

	aggBar, err := a.agg.At(aggIndex)
	if err != nil {
		return AlignmentResult{}, err
	}

	// base bars are ordered, so every earlier bar opening inside the bracket
	// maps to the same aggregation bar
	repaint := 1

	for i := baseIndex - 1; i >= 0; i-- {
		prev, err := a.base.At(i)
		if err != nil || prev.Time.Before(aggBar.Time) {
			break
		}

		repaint++
	}

	return AlignmentResult{AggregatedIndex: aggIndex, RepaintCount: repaint}, nil
}
