package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-tdi/internal/types"
	"github.com/rxtech-lab/argo-tdi/pkg/errors"
)

// MovingAverage smooths src with the given period and kind. The result has the
// same length as src; entries before the first full window (counted from the
// first defined value of src) are NaN.
func MovingAverage(src []float64, period int, kind types.MAType) ([]float64, error) {
	if period <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	switch kind {
	case types.MATypeSimple, "":
		return simpleMovingAverage(src, period), nil
	case types.MATypeExponential:
		return exponentialMovingAverage(src, period, 2.0/float64(period+1)), nil
	case types.MATypeSmoothed:
		return exponentialMovingAverage(src, period, 1.0/float64(period)), nil
	case types.MATypeWeighted:
		return weightedMovingAverage(src, period), nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidMAType, "unsupported moving average type %q", kind)
	}
}

// simpleMovingAverage uses a running sum over the defined part of src.
func simpleMovingAverage(src []float64, period int) []float64 {
	out := nanSlice(len(src))
	first := firstDefined(src)

	if first < 0 || len(src)-first < period {
		return out
	}

	sum := 0.0
	for i := first; i < len(src); i++ {
		sum += src[i]
		if i-first >= period {
			sum -= src[i-period]
		}

		if i-first >= period-1 {
			out[i] = sum / float64(period)
		}
	}

	return out
}

// exponentialMovingAverage is seeded with the SMA of the first window and then
// applies EMA = price * alpha + EMA_prev * (1 - alpha).
func exponentialMovingAverage(src []float64, period int, alpha float64) []float64 {
	out := nanSlice(len(src))
	first := firstDefined(src)

	if first < 0 || len(src)-first < period {
		return out
	}

	seed := first + period - 1

	sma := 0.0
	for i := first; i <= seed; i++ {
		sma += src[i]
	}

	ema := sma / float64(period)
	out[seed] = ema

	for i := seed + 1; i < len(src); i++ {
		ema = src[i]*alpha + ema*(1-alpha)
		out[i] = ema
	}

	return out
}

// weightedMovingAverage weights the newest sample by period and the oldest by 1.
func weightedMovingAverage(src []float64, period int) []float64 {
	out := nanSlice(len(src))
	first := firstDefined(src)

	if first < 0 || len(src)-first < period {
		return out
	}

	denominator := float64(period*(period+1)) / 2

	for i := first + period - 1; i < len(src); i++ {
		sum := 0.0
		for w := 1; w <= period; w++ {
			sum += src[i-period+w] * float64(w)
		}

		out[i] = sum / denominator
	}

	return out
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	return out
}

// firstDefined returns the index of the first non-NaN value, or -1.
func firstDefined(src []float64) int {
	for i, v := range src {
		if !math.IsNaN(v) {
			return i
		}
	}

	return -1
}
