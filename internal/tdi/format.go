package tdi

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-tdi/internal/types"
	"github.com/shopspring/decimal"
)

// oscillator values are printed with two decimals
const lineDigits = 2

// NewMark builds the annotation of a fired alert. markTime is the open time of
// the base bar at event.MarkIndex.
func NewMark(config AnnotationConfig, event types.AlertEvent, markTime time.Time) types.Mark {
	shape := types.MarkShapeArrowUp
	if event.Direction == types.DirectionBearish {
		shape = types.MarkShapeArrowDown
	}

	return types.Mark{
		Name:     MarkName(config.Prefix, event),
		Shape:    shape,
		BarIndex: event.MarkIndex,
		Time:     markTime,
		Price:    event.Lines.Price,
		Color:    config.Colors.For(event.Kind, event.Direction),
		Title:    event.Kind.Title(),
		Message:  fmt.Sprintf("%s %s", event.Kind.Title(), event.Direction),
		Category: "tdi",
		Alert:    optional.Some(event),
	}
}

// MarkName is unique per kind, direction and aggregation boundary.
func MarkName(prefix string, event types.AlertEvent) string {
	return fmt.Sprintf("%s_%s_%s_%d", prefix, event.Kind, event.Direction, event.Boundary.Unix())
}

// NewNotification builds the message of a fired alert. The body carries the
// current bid and ask, when known, and all five oscillator lines of the bar
// the crossing was detected on. When that bar is the closed one before the
// forming bar, the five lines of the forming bar follow.
func NewNotification(config Config, symbol string, event types.AlertEvent, quote optional.Option[types.Quote]) types.Notification {
	digits := config.Digits

	var body strings.Builder

	fmt.Fprintf(&body, "Traders Dynamic Index alert\n")
	fmt.Fprintf(&body, "Symbol: %s\n", symbol)
	fmt.Fprintf(&body, "Alert: %s (%s)\n", event.Kind.Title(), event.Direction)
	fmt.Fprintf(&body, "Bar time: %s\n", event.Time.UTC().Format(time.RFC3339))

	if quote.IsSome() {
		q := quote.Unwrap()
		if q.Digits > 0 {
			digits = q.Digits
		}

		fmt.Fprintf(&body, "Bid: %s\n", formatFixed(q.Bid, digits))
		fmt.Fprintf(&body, "Ask: %s\n", formatFixed(q.Ask, digits))
	} else {
		body.WriteString("Bid: n/a\nAsk: n/a\n")
	}

	writeLines(&body, event.Lines)

	if event.LaggedIndex != event.AggregatedIndex {
		body.WriteString("\nForming bar:\n")
		writeLines(&body, event.Current)
	}

	return types.Notification{
		Subject:    fmt.Sprintf("TDI %s: %s %s", symbol, event.Kind.Title(), event.Direction),
		Body:       body.String(),
		From:       config.Notification.From,
		Recipients: config.Notification.To,
		Kind:       event.Kind,
		Direction:  event.Direction,
		Time:       event.Time,
	}
}

func writeLines(body *strings.Builder, lines types.Lines) {
	fmt.Fprintf(body, "Upper band: %s\n", formatFixed(lines.Upper, lineDigits))
	fmt.Fprintf(body, "Lower band: %s\n", formatFixed(lines.Lower, lineDigits))
	fmt.Fprintf(body, "Middle band: %s\n", formatFixed(lines.Middle, lineDigits))
	fmt.Fprintf(body, "Price line: %s\n", formatFixed(lines.Price, lineDigits))
	fmt.Fprintf(body, "Signal line: %s", formatFixed(lines.Signal, lineDigits))
}

func formatFixed(v float64, digits int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}

	return decimal.NewFromFloat(v).StringFixed(int32(digits))
}
