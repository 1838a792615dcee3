package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-tdi/internal/types"
)

// BarGenerator generates synthetic bars for tests and demo replays.
type BarGenerator struct {
	rng *rand.Rand
}

// NewBarGenerator creates a generator. A fixed seed gives reproducible bars.
func NewBarGenerator(seed int64) *BarGenerator {
	return &BarGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures a random walk.
type GeneratorConfig struct {
	Symbol    string
	StartTime time.Time
	// Interval is the distance between bar open times
	Interval     time.Duration
	Count        int
	InitialPrice float64
	// Volatility controls price movement (0.01 = 1% per bar)
	Volatility float64
	// Trend is the total drift over the series (-0.01 to 0.01 for bearish to bullish)
	Trend      float64
	VolumeBase float64
	// VolumeVariance is the variance in volume (0.0 to 1.0)
	VolumeVariance float64
}

// DefaultConfig returns a one minute random walk around 100.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Symbol:         "TEST",
		StartTime:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Interval:       time.Minute,
		Count:          1000,
		InitialPrice:   100.0,
		Volatility:     0.002,
		Trend:          0.0,
		VolumeBase:     10000,
		VolumeVariance: 0.3,
	}
}

// Generate creates bars following a geometric Brownian motion.
func (g *BarGenerator) Generate(config GeneratorConfig) []types.Bar {
	bars := make([]types.Bar, config.Count)
	currentPrice := config.InitialPrice
	currentTime := config.StartTime

	for i := range config.Count {
		open := currentPrice

		// Box-Muller transform for a normal sample
		u1 := g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		drift := config.Trend / float64(config.Count)

		closePrice := open * (1 + config.Volatility*z + drift)
		if closePrice <= 0 {
			closePrice = open * 0.99
		}

		high := math.Max(open, closePrice) + math.Abs(g.rng.Float64()*config.Volatility*open*0.5)
		low := math.Min(open, closePrice) - math.Abs(g.rng.Float64()*config.Volatility*open*0.5)

		if low <= 0 {
			low = math.Min(open, closePrice) * 0.99
		}

		volume := config.VolumeBase * (1.0 + (g.rng.Float64()*2-1)*config.VolumeVariance)
		if volume < 0 {
			volume = config.VolumeBase * 0.1
		}

		bars[i] = types.Bar{
			Symbol: config.Symbol,
			Time:   currentTime,
			Open:   roundToDecimals(open, 4),
			High:   roundToDecimals(high, 4),
			Low:    roundToDecimals(low, 4),
			Close:  roundToDecimals(closePrice, 4),
			Volume: roundToDecimals(volume, 2),
		}

		currentPrice = closePrice
		currentTime = currentTime.Add(config.Interval)
	}

	return bars
}

// Ticks splits a bar into n intrabar snapshots of the same open time. The
// last snapshot equals bar; earlier ones close on a straight path from open
// to close with high and low tracking the path.
func Ticks(bar types.Bar, n int) []types.Bar {
	if n <= 1 {
		return []types.Bar{bar}
	}

	ticks := make([]types.Bar, n)

	for i := range n {
		if i == n-1 {
			ticks[i] = bar

			break
		}

		fraction := float64(i+1) / float64(n)
		price := bar.Open + (bar.Close-bar.Open)*fraction

		tick := bar
		tick.Close = price
		tick.High = math.Max(bar.Open, price)
		tick.Low = math.Min(bar.Open, price)
		tick.Volume = bar.Volume * fraction
		ticks[i] = tick
	}

	return ticks
}

// Closes builds flat bars whose open, high, low and close all equal the given
// closes, spaced by interval.
func Closes(symbol string, start time.Time, interval time.Duration, closes []float64) []types.Bar {
	bars := make([]types.Bar, len(closes))

	for i, c := range closes {
		bars[i] = types.Bar{
			Symbol: symbol,
			Time:   start.Add(time.Duration(i) * interval),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1,
		}
	}

	return bars
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(val*pow) / pow
}
