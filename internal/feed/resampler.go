package feed

import (
	"github.com/rxtech-lab/argo-tdi/internal/logger"
	"github.com/rxtech-lab/argo-tdi/internal/types"
	"github.com/rxtech-lab/argo-tdi/pkg/errors"
	"go.uber.org/zap"
)

// Resampler receives a base resolution bar stream and derives the aggregation
// stream from it. Each update rebuilds the aggregation bar containing the
// updated base bar, so a forming base bar repaints its forming aggregation bar.
type Resampler struct {
	base   *BarSeries
	agg    *BarSeries
	aggRes types.Resolution
	logger *logger.Logger
}

// NewResampler creates a resampler. An empty aggregation resolution, or one
// that is not coarser than base, makes the aggregation stream the base stream.
func NewResampler(symbol string, baseRes, aggRes types.Resolution, log *logger.Logger) (*Resampler, error) {
	if err := baseRes.Validate(); err != nil {
		return nil, err
	}

	base := NewBarSeries(symbol, baseRes)

	if aggRes.IsZero() || aggRes.Duration() <= baseRes.Duration() {
		if !aggRes.IsZero() && aggRes != baseRes {
			log.Debug("Aggregation resolution is not coarser than base, resampler passes base bars through",
				zap.String("base", string(baseRes)),
				zap.String("aggregation", string(aggRes)),
			)
		}

		return &Resampler{base: base, agg: base, aggRes: baseRes, logger: log}, nil
	}

	if err := aggRes.Validate(); err != nil {
		return nil, err
	}

	return &Resampler{
		base:   base,
		agg:    NewBarSeries(symbol, aggRes),
		aggRes: aggRes,
		logger: log,
	}, nil
}

// Base implements SeriesProvider.
func (r *Resampler) Base() *BarSeries {
	return r.base
}

// Aggregate implements SeriesProvider.
func (r *Resampler) Aggregate() *BarSeries {
	return r.agg
}

// Update writes a base bar (new or forming) and rebuilds the aggregation bar
// that contains it. It returns the base index written and whether it is new.
func (r *Resampler) Update(bar types.Bar) (int, bool, error) {
	index, isNew, err := r.base.Upsert(bar)
	if err != nil {
		return -1, false, err
	}

	if r.agg == r.base {
		return index, isNew, nil
	}

	boundary := r.aggRes.Truncate(bar.Time)

	r.base.mu.RLock()
	members := r.base.since(boundary)

	aggBar := members[0]
	for _, member := range members[1:] {
		aggBar = aggBar.Merge(member)
	}
	r.base.mu.RUnlock()

	aggBar.Time = boundary

	if _, _, err := r.agg.Upsert(aggBar); err != nil {
		return -1, false, errors.Wrapf(errors.ErrCodeOutOfOrderBar, err, "failed to rebuild %s bar at %s", r.aggRes, boundary)
	}

	return index, isNew, nil
}
