package types

import "math"

// Lines is one sample of the five oscillator outputs.
type Lines struct {
	// Upper is the upper volatility band.
	Upper float64
	// Lower is the lower volatility band.
	Lower float64
	// Middle is the middle volatility band (market base line).
	Middle float64
	// Price is the smoothed RSI price line.
	Price float64
	// Signal is the trade signal line.
	Signal float64
}

// Line identifies one of the five oscillator outputs.
type Line int

const (
	LineUpper Line = iota
	LineLower
	LineMiddle
	LinePrice
	LineSignal
)

func (l Line) String() string {
	switch l {
	case LineUpper:
		return "upper"
	case LineLower:
		return "lower"
	case LineMiddle:
		return "middle"
	case LinePrice:
		return "price"
	case LineSignal:
		return "signal"
	default:
		return "unknown"
	}
}

// Get returns the value of one line.
func (l Lines) Get(line Line) float64 {
	switch line {
	case LineUpper:
		return l.Upper
	case LineLower:
		return l.Lower
	case LineMiddle:
		return l.Middle
	case LinePrice:
		return l.Price
	case LineSignal:
		return l.Signal
	default:
		return math.NaN()
	}
}

// Defined reports whether every line holds a number.
func (l Lines) Defined() bool {
	return !math.IsNaN(l.Upper) && !math.IsNaN(l.Lower) && !math.IsNaN(l.Middle) &&
		!math.IsNaN(l.Price) && !math.IsNaN(l.Signal)
}

// LineSeries holds the five oscillator outputs as parallel, index-aligned
// slices. Warm-up entries are NaN.
type LineSeries struct {
	Upper  []float64
	Lower  []float64
	Middle []float64
	Price  []float64
	Signal []float64
}

// NewLineSeries allocates a series of length n filled with NaN.
func NewLineSeries(n int) LineSeries {
	fill := func() []float64 {
		s := make([]float64, n)
		for i := range s {
			s[i] = math.NaN()
		}

		return s
	}

	return LineSeries{
		Upper:  fill(),
		Lower:  fill(),
		Middle: fill(),
		Price:  fill(),
		Signal: fill(),
	}
}

// Len returns the number of samples.
func (s LineSeries) Len() int {
	return len(s.Price)
}

// At returns the sample at index i and whether it is fully defined.
func (s LineSeries) At(i int) (Lines, bool) {
	if i < 0 || i >= s.Len() {
		return Lines{}, false
	}

	lines := Lines{
		Upper:  s.Upper[i],
		Lower:  s.Lower[i],
		Middle: s.Middle[i],
		Price:  s.Price[i],
		Signal: s.Signal[i],
	}

	return lines, lines.Defined()
}
