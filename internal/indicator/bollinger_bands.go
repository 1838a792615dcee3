package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-tdi/internal/types"
	"github.com/rxtech-lab/argo-tdi/pkg/errors"
)

// Bands holds the three Bollinger band series.
type Bands struct {
	Top    []float64
	Bottom []float64
	Main   []float64
}

// BollingerBands computes bands around a moving average of src. The width is
// stdDev population standard deviations of src over the same window.
func BollingerBands(src []float64, period int, stdDev float64, kind types.MAType) (Bands, error) {
	if stdDev < 0 {
		return Bands{}, errors.Newf(errors.ErrCodeInvalidStdDev, "stdDev must not be negative, got %f", stdDev)
	}

	main, err := MovingAverage(src, period, kind)
	if err != nil {
		return Bands{}, err
	}

	bands := Bands{
		Top:    nanSlice(len(src)),
		Bottom: nanSlice(len(src)),
		Main:   main,
	}

	for i := range src {
		if math.IsNaN(main[i]) {
			continue
		}

		var squaredDiffSum float64

		for j := i - period + 1; j <= i; j++ {
			diff := src[j] - main[i]
			squaredDiffSum += diff * diff
		}

		deviation := math.Sqrt(squaredDiffSum / float64(period))
		bands.Top[i] = main[i] + stdDev*deviation
		bands.Bottom[i] = main[i] - stdDev*deviation
	}

	return bands, nil
}
