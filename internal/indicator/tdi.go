package indicator

import (
	"github.com/rxtech-lab/argo-tdi/internal/types"
	"github.com/rxtech-lab/argo-tdi/pkg/errors"
)

// TDIOptions configures the Traders Dynamic Index pipeline.
type TDIOptions struct {
	RSIPeriod        int
	BandPeriod       int
	StdDev           float64
	PriceLinePeriod  int
	PriceLineType    types.MAType
	SignalLinePeriod int
	SignalLineType   types.MAType
}

// DefaultTDIOptions returns the classic Dean Malone settings.
func DefaultTDIOptions() TDIOptions {
	return TDIOptions{
		RSIPeriod:        13,
		BandPeriod:       34,
		StdDev:           1.6185,
		PriceLinePeriod:  2,
		PriceLineType:    types.MATypeSimple,
		SignalLinePeriod: 7,
		SignalLineType:   types.MATypeSimple,
	}
}

// TDI is the Traders Dynamic Index: an RSI wrapped in Bollinger volatility
// bands, with a fast (price) and slow (signal) moving average of the RSI.
type TDI struct {
	opts TDIOptions
}

// NewTDI validates opts and returns the pipeline.
func NewTDI(opts TDIOptions) (*TDI, error) {
	if opts.RSIPeriod <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "rsi period must be a positive integer, got %d", opts.RSIPeriod)
	}

	if opts.BandPeriod <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "band period must be a positive integer, got %d", opts.BandPeriod)
	}

	if opts.PriceLinePeriod <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "price line period must be a positive integer, got %d", opts.PriceLinePeriod)
	}

	if opts.SignalLinePeriod <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "signal line period must be a positive integer, got %d", opts.SignalLinePeriod)
	}

	if opts.StdDev < 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidStdDev, "stdDev must not be negative, got %f", opts.StdDev)
	}

	for _, kind := range []types.MAType{opts.PriceLineType, opts.SignalLineType} {
		if _, err := MovingAverage(nil, 1, kind); err != nil {
			return nil, err
		}
	}

	return &TDI{opts: opts}, nil
}

// Options returns the pipeline settings.
func (t *TDI) Options() TDIOptions {
	return t.opts
}

// WarmUp implements Pipeline.
func (t *TDI) WarmUp() int {
	longest := max(t.opts.BandPeriod, t.opts.PriceLinePeriod, t.opts.SignalLinePeriod)

	return t.opts.RSIPeriod + longest - 1
}

// Compute implements Pipeline.
func (t *TDI) Compute(prices []float64) (types.LineSeries, error) {
	rsi, err := RelativeStrength(prices, t.opts.RSIPeriod)
	if err != nil {
		return types.LineSeries{}, errors.Wrap(errors.ErrCodeIndicatorCalculation, "failed to compute rsi", err)
	}

	bands, err := BollingerBands(rsi, t.opts.BandPeriod, t.opts.StdDev, types.MATypeSimple)
	if err != nil {
		return types.LineSeries{}, errors.Wrap(errors.ErrCodeIndicatorCalculation, "failed to compute volatility bands", err)
	}

	price, err := MovingAverage(rsi, t.opts.PriceLinePeriod, t.opts.PriceLineType)
	if err != nil {
		return types.LineSeries{}, errors.Wrap(errors.ErrCodeIndicatorCalculation, "failed to compute price line", err)
	}

	signal, err := MovingAverage(rsi, t.opts.SignalLinePeriod, t.opts.SignalLineType)
	if err != nil {
		return types.LineSeries{}, errors.Wrap(errors.ErrCodeIndicatorCalculation, "failed to compute signal line", err)
	}

	return types.LineSeries{
		Upper:  bands.Top,
		Lower:  bands.Bottom,
		Middle: bands.Main,
		Price:  price,
		Signal: signal,
	}, nil
}
