package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-tdi/pkg/errors"
)

// RelativeStrength computes Wilder's RSI over src. The first defined value is
// at index period; earlier entries are NaN.
func RelativeStrength(src []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	out := nanSlice(len(src))
	if len(src) <= period {
		return out, nil
	}

	// First average over the first period price changes
	avgGain := 0.0
	avgLoss := 0.0

	for i := 1; i <= period; i++ {
		gain, loss := priceChange(src[i] - src[i-1])
		avgGain += gain
		avgLoss += loss
	}

	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiFromAverages(avgGain, avgLoss)

	// Subsequent averages using Wilder's smoothing method
	for i := period + 1; i < len(src); i++ {
		gain, loss := priceChange(src[i] - src[i-1])
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiFromAverages(avgGain, avgLoss)
	}

	return out, nil
}

func priceChange(change float64) (gain, loss float64) {
	if change > 0 {
		return change, 0
	}

	return 0, -change
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50
		}

		return 100 // Perfect uptrend
	}

	rs := avgGain / avgLoss
	rsi := 100 - (100 / (1 + rs))

	if math.IsNaN(rsi) {
		return 50
	}

	return rsi
}
