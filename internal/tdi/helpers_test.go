package tdi

import (
	"time"

	"github.com/rxtech-lab/argo-tdi/internal/feed"
	"github.com/rxtech-lab/argo-tdi/internal/types"
	"github.com/rxtech-lab/argo-tdi/mocks"
)

var testStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// minuteSeries builds a one minute arena with one bar per close.
func minuteSeries(closes []float64) *feed.BarSeries {
	series, err := feed.NewBarSeriesFrom("EURUSD", types.ResolutionOneMinute,
		mocks.Closes("EURUSD", testStart, time.Minute, closes))
	if err != nil {
		panic(err)
	}

	return series
}

func flatCloses(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100
	}

	return closes
}

// scriptedSeries returns the first n samples of script.
func scriptedSeries(n int, script []types.Lines) types.LineSeries {
	series := types.NewLineSeries(n)

	for i := 0; i < n && i < len(script); i++ {
		series.Upper[i] = script[i].Upper
		series.Lower[i] = script[i].Lower
		series.Middle[i] = script[i].Middle
		series.Price[i] = script[i].Price
		series.Signal[i] = script[i].Signal
	}

	return series
}

// chainedBars builds bars whose open is the previous close.
func chainedBars(start time.Time, closes []float64, first float64) []types.Bar {
	bars := make([]types.Bar, len(closes))
	open := first

	for i, c := range closes {
		bars[i] = types.Bar{
			Symbol: "EURUSD",
			Time:   start.Add(time.Duration(i) * time.Minute),
			Open:   open,
			High:   max(open, c),
			Low:    min(open, c),
			Close:  c,
			Volume: 1,
		}
		open = c
	}

	return bars
}
