package feed

import (
	"sort"
	"sync"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-tdi/internal/types"
	"github.com/rxtech-lab/argo-tdi/pkg/errors"
)

// BarSeries is an append-only arena of bars ordered by open time. Only the
// newest bar may be replaced in place, which models a bar that is still forming.
// Bars are addressed by index; lookups by time use binary search.
type BarSeries struct {
	symbol     string
	resolution types.Resolution
	bars       []types.Bar
	mu         sync.RWMutex
}

// NewBarSeries creates an empty arena for one symbol at one resolution.
func NewBarSeries(symbol string, resolution types.Resolution) *BarSeries {
	return &BarSeries{
		symbol:     symbol,
		resolution: resolution,
		bars:       nil,
		mu:         sync.RWMutex{},
	}
}

// NewBarSeriesFrom builds an arena from bars that are already sorted.
func NewBarSeriesFrom(symbol string, resolution types.Resolution, bars []types.Bar) (*BarSeries, error) {
	series := NewBarSeries(symbol, resolution)

	for _, bar := range bars {
		if err := series.Append(bar); err != nil {
			return nil, err
		}
	}

	return series, nil
}

func (s *BarSeries) Symbol() string {
	return s.symbol
}

func (s *BarSeries) Resolution() types.Resolution {
	return s.resolution
}

// Len returns the number of bars in the arena.
func (s *BarSeries) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.bars)
}

// At returns the bar at index i.
func (s *BarSeries) At(i int) (types.Bar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i < 0 || i >= len(s.bars) {
		return types.Bar{}, errors.Newf(errors.ErrCodeIndexOutOfRange, "bar index %d out of range [0, %d)", i, len(s.bars))
	}

	return s.bars[i], nil
}

// Last returns the newest bar, if any.
func (s *BarSeries) Last() optional.Option[types.Bar] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.bars) == 0 {
		return optional.None[types.Bar]()
	}

	return optional.Some(s.bars[len(s.bars)-1])
}

// Append adds a bar strictly newer than the current newest one.
func (s *BarSeries) Append(bar types.Bar) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n := len(s.bars); n > 0 && !bar.Time.After(s.bars[n-1].Time) {
		return errors.Newf(errors.ErrCodeOutOfOrderBar, "bar at %s is not after newest bar at %s",
			bar.Time.Format(time.RFC3339), s.bars[n-1].Time.Format(time.RFC3339))
	}

	s.bars = append(s.bars, bar)

	return nil
}

// Upsert replaces the newest bar when bar has the same open time, or appends
// it when it is newer. It returns the index written and whether it was appended.
func (s *BarSeries) Upsert(bar types.Bar) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.bars)
	if n > 0 {
		newest := s.bars[n-1].Time

		switch {
		case bar.Time.Equal(newest):
			s.bars[n-1] = bar

			return n - 1, false, nil
		case bar.Time.Before(newest):
			return -1, false, errors.Newf(errors.ErrCodeOutOfOrderBar, "bar at %s is older than newest bar at %s",
				bar.Time.Format(time.RFC3339), newest.Format(time.RFC3339))
		}
	}

	s.bars = append(s.bars, bar)

	return n, true, nil
}

// IndexOf returns the index of the last bar whose open time is at or before t,
// or -1 when t precedes every bar.
func (s *BarSeries) IndexOf(t time.Time) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// first bar strictly after t
	next := sort.Search(len(s.bars), func(i int) bool {
		return s.bars[i].Time.After(t)
	})

	return next - 1
}

// Prices returns the applied price of bars [0, upto].
func (s *BarSeries) Prices(mode types.AppliedPrice, upto int) []float64 {
	return s.PricesFrom(mode, 0, upto)
}

// PricesFrom returns the applied price of bars [from, upto]. Bounds are
// clamped to the arena.
func (s *BarSeries) PricesFrom(mode types.AppliedPrice, from, upto int) []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	from = max(from, 0)
	upto = min(upto, len(s.bars)-1)

	if upto < from {
		return nil
	}

	prices := make([]float64, 0, upto-from+1)
	for _, bar := range s.bars[from : upto+1] {
		prices = append(prices, bar.Price(mode))
	}

	return prices
}

// Bars returns a copy of every bar in the arena.
func (s *BarSeries) Bars() []types.Bar {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Bar, len(s.bars))
	copy(out, s.bars)

	return out
}

// since returns the bars with open time at or after t. Caller holds the lock.
func (s *BarSeries) since(t time.Time) []types.Bar {
	start := sort.Search(len(s.bars), func(i int) bool {
		return !s.bars[i].Time.Before(t)
	})

	return s.bars[start:]
}
