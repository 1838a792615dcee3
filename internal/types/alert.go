package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-tdi/pkg/errors"
)

// AlertKind names one of the oscillator line crossings that can raise an alert.
type AlertKind string

const (
	// AlertKindLineBvsMiddle is the trade signal line crossing the market base line.
	AlertKindLineBvsMiddle AlertKind = "line_b_vs_middle"
	// AlertKindPriceHook is the price line hooking back inside a volatility band
	// from an extreme zone.
	AlertKindPriceHook AlertKind = "price_hook"
	// AlertKindPriceVsSignal is the price line crossing the trade signal line.
	AlertKindPriceVsSignal AlertKind = "price_vs_signal"
	// AlertKindPriceVsMiddle is the price line crossing the market base line.
	AlertKindPriceVsMiddle AlertKind = "price_vs_middle"
)

// AllAlertKinds lists every alert kind in evaluation order.
var AllAlertKinds = []AlertKind{
	AlertKindLineBvsMiddle,
	AlertKindPriceHook,
	AlertKindPriceVsSignal,
	AlertKindPriceVsMiddle,
}

// Title returns a human readable name for the kind.
func (k AlertKind) Title() string {
	switch k {
	case AlertKindLineBvsMiddle:
		return "Signal/Base line cross"
	case AlertKindPriceHook:
		return "Price line hook"
	case AlertKindPriceVsSignal:
		return "Price/Signal line cross"
	case AlertKindPriceVsMiddle:
		return "Price/Base line cross"
	default:
		return string(k)
	}
}

// Direction is the outcome of a crossover check.
type Direction string

const (
	DirectionNone    Direction = "none"
	DirectionBullish Direction = "bullish"
	DirectionBearish Direction = "bearish"
)

// TriggerLag selects how many aggregation bars back from the newest one a
// crossover is evaluated.
type TriggerLag int

const (
	// TriggerLagCurrent evaluates the still-forming aggregation bar.
	TriggerLagCurrent TriggerLag = 0
	// TriggerLagPrevious evaluates the last closed aggregation bar.
	TriggerLagPrevious TriggerLag = 1
)

// Offset returns the number of aggregation bars to step back.
func (l TriggerLag) Offset() int {
	return int(l)
}

func (l TriggerLag) String() string {
	switch l {
	case TriggerLagCurrent:
		return "current"
	case TriggerLagPrevious:
		return "previous"
	default:
		return fmt.Sprintf("TriggerLag(%d)", int(l))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l TriggerLag) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText accepts "current", "previous", "0" or "1".
func (l *TriggerLag) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "current", "0":
		*l = TriggerLagCurrent
	case "previous", "1":
		*l = TriggerLagPrevious
	default:
		return errors.Newf(errors.ErrCodeInvalidTriggerLag, "invalid trigger lag %q, expected current or previous", string(text))
	}

	return nil
}

// JSONSchema describes the text form used in configuration files.
func (TriggerLag) JSONSchema() *jsonschema.Schema {
	//nolint:exhaustruct // third-party struct with many optional fields
	return &jsonschema.Schema{
		Type:        "string",
		Title:       "Trigger Lag",
		Description: "Aggregation bar a crossover is evaluated on: the forming one (current) or the last closed one (previous)",
		Enum:        []any{"current", "previous"},
		Default:     "previous",
	}
}

// AlertEvent is emitted once per fired alert.
type AlertEvent struct {
	// ID uniquely identifies the event.
	ID string
	// Kind is the crossing that fired.
	Kind AlertKind
	// Direction is bullish or bearish, never none.
	Direction Direction
	// Boundary is the open time of the aggregation bar the alert is keyed on.
	Boundary time.Time
	// BaseIndex is the base bar index being processed when the alert fired.
	BaseIndex int
	// MarkIndex is the base bar index the annotation should be drawn on.
	MarkIndex int
	// AggregatedIndex is the aggregation bar mapped from BaseIndex.
	AggregatedIndex int
	// LaggedIndex is the aggregation bar the crossover was detected on.
	LaggedIndex int
	// Lines is the oscillator sample at LaggedIndex.
	Lines Lines
	// Current is the sample at AggregatedIndex. It equals Lines when the
	// trigger lag is current.
	Current Lines
	// Time is the open time of the base bar at BaseIndex.
	Time time.Time
}
