package indicator

import "github.com/rxtech-lab/argo-tdi/internal/types"

// Pipeline turns a price series into the five aligned oscillator outputs.
type Pipeline interface {
	// Compute returns a LineSeries with one sample per price. Samples before
	// WarmUp are undefined (NaN).
	Compute(prices []float64) (types.LineSeries, error)
	// WarmUp is the index of the first sample Compute can fully define.
	WarmUp() int
}
