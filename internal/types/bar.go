package types

import "time"

// Bar is one OHLCV candle. Time is the open time of the bar.
type Bar struct {
	Symbol string
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Price returns the bar price selected by the applied price mode.
func (b Bar) Price(mode AppliedPrice) float64 {
	switch mode {
	case AppliedPriceOpen:
		return b.Open
	case AppliedPriceHigh:
		return b.High
	case AppliedPriceLow:
		return b.Low
	case AppliedPriceMedian:
		return (b.High + b.Low) / 2
	case AppliedPriceTypical:
		return (b.High + b.Low + b.Close) / 3
	case AppliedPriceWeighted:
		return (b.High + b.Low + 2*b.Close) / 4
	default:
		return b.Close
	}
}

// Merge folds a finer bar into an aggregated bar that already holds at
// least one finer bar.
func (b Bar) Merge(next Bar) Bar {
	if next.High > b.High {
		b.High = next.High
	}

	if next.Low < b.Low {
		b.Low = next.Low
	}

	b.Close = next.Close
	b.Volume += next.Volume

	return b
}
