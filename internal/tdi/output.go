package tdi

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-tdi/internal/types"
)

// OutputSeries holds the oscillator lines per base resolution index. Indices
// inside the warm-up period hold None.
type OutputSeries struct {
	values []optional.Option[types.Lines]
}

func NewOutputSeries() *OutputSeries {
	return &OutputSeries{values: nil}
}

// Write stores lines at every index in [from, to], growing the series as needed.
func (o *OutputSeries) Write(from, to int, lines types.Lines) {
	if from < 0 {
		from = 0
	}

	for len(o.values) <= to {
		o.values = append(o.values, optional.None[types.Lines]())
	}

	for i := from; i <= to; i++ {
		o.values[i] = optional.Some(lines)
	}
}

// At returns the lines at index i.
func (o *OutputSeries) At(i int) optional.Option[types.Lines] {
	if i < 0 || i >= len(o.values) {
		return optional.None[types.Lines]()
	}

	return o.values[i]
}

func (o *OutputSeries) Len() int {
	return len(o.values)
}

// Line returns one output line as a slice, NaN where undefined.
func (o *OutputSeries) Line(line types.Line) []float64 {
	out := make([]float64, len(o.values))

	for i, v := range o.values {
		if v.IsNone() {
			out[i] = math.NaN()

			continue
		}

		out[i] = v.Unwrap().Get(line)
	}

	return out
}
