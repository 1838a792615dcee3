package tdi

import (
	"math"

	"github.com/rxtech-lab/argo-tdi/internal/types"
)

// Extreme zone levels of the price hook.
const (
	UpperZone = 68.0
	LowerZone = 32.0
)

// crossing is one line crossing a reference line, optionally gated by a zone
// check on the current and previous samples.
type crossing struct {
	line      types.Line
	reference types.Line
	gate      func(cur, prev types.Lines) bool
}

// crossRule holds the bullish (upward) and bearish (downward) crossing of a kind.
type crossRule struct {
	bullish crossing
	bearish crossing
}

var crossRules = map[types.AlertKind]crossRule{
	types.AlertKindLineBvsMiddle: {
		bullish: crossing{line: types.LineSignal, reference: types.LineMiddle, gate: nil},
		bearish: crossing{line: types.LineSignal, reference: types.LineMiddle, gate: nil},
	},
	types.AlertKindPriceHook: {
		bullish: crossing{line: types.LinePrice, reference: types.LineLower, gate: belowZone},
		bearish: crossing{line: types.LinePrice, reference: types.LineUpper, gate: aboveZone},
	},
	types.AlertKindPriceVsSignal: {
		bullish: crossing{line: types.LinePrice, reference: types.LineSignal, gate: nil},
		bearish: crossing{line: types.LinePrice, reference: types.LineSignal, gate: nil},
	},
	types.AlertKindPriceVsMiddle: {
		bullish: crossing{line: types.LinePrice, reference: types.LineMiddle, gate: nil},
		bearish: crossing{line: types.LinePrice, reference: types.LineMiddle, gate: nil},
	},
}

// aboveZone: price and upper band were beyond 68 on either sample.
func aboveZone(cur, prev types.Lines) bool {
	return (cur.Price > UpperZone || prev.Price > UpperZone) &&
		(cur.Upper > UpperZone || prev.Upper > UpperZone)
}

// belowZone: price and lower band were beyond 32 on either sample.
func belowZone(cur, prev types.Lines) bool {
	return (cur.Price < LowerZone || prev.Price < LowerZone) &&
		(cur.Lower < LowerZone || prev.Lower < LowerZone)
}

// Detect classifies the crossing of kind between laggedIndex-1 and laggedIndex.
// Touching a line on the previous sample counts as not yet crossed; the
// current sample must be strictly past it. Undefined samples give DirectionNone.
func Detect(kind types.AlertKind, series types.LineSeries, laggedIndex int) types.Direction {
	rule, ok := crossRules[kind]
	if !ok || laggedIndex < 1 {
		return types.DirectionNone
	}

	cur, curOK := series.At(laggedIndex)
	prev, prevOK := series.At(laggedIndex - 1)

	if !curOK || !prevOK {
		return types.DirectionNone
	}

	up := crossesUp(rule.bullish, cur, prev)
	down := crossesDown(rule.bearish, cur, prev)

	switch {
	case up && !down:
		return types.DirectionBullish
	case down && !up:
		return types.DirectionBearish
	default:
		return types.DirectionNone
	}
}

func crossesUp(c crossing, cur, prev types.Lines) bool {
	if !finite(c, cur, prev) {
		return false
	}

	crossed := prev.Get(c.line) <= prev.Get(c.reference) && cur.Get(c.line) > cur.Get(c.reference)

	return crossed && (c.gate == nil || c.gate(cur, prev))
}

func crossesDown(c crossing, cur, prev types.Lines) bool {
	if !finite(c, cur, prev) {
		return false
	}

	crossed := prev.Get(c.line) >= prev.Get(c.reference) && cur.Get(c.line) < cur.Get(c.reference)

	return crossed && (c.gate == nil || c.gate(cur, prev))
}

func finite(c crossing, cur, prev types.Lines) bool {
	for _, v := range []float64{cur.Get(c.line), cur.Get(c.reference), prev.Get(c.line), prev.Get(c.reference)} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}
