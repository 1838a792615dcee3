package types

import (
	"time"

	"github.com/moznion/go-optional"
)

type MarkShape string

const (
	MarkShapeArrowUp   MarkShape = "arrow_up"
	MarkShapeArrowDown MarkShape = "arrow_down"
	MarkShapeCircle    MarkShape = "circle"
)

type MarkColor string

const (
	MarkColorRed    MarkColor = "red"
	MarkColorGreen  MarkColor = "green"
	MarkColorBlue   MarkColor = "blue"
	MarkColorYellow MarkColor = "yellow"
	MarkColorPurple MarkColor = "purple"
	MarkColorOrange MarkColor = "orange"
)

// Mark is an annotation drawn on the oscillator pane.
type Mark struct {
	// Name is unique per annotation: prefix, kind, direction and boundary.
	Name string
	// Shape is the icon kind.
	Shape MarkShape
	// BarIndex is the base bar index the icon is attached to.
	BarIndex int
	// Time is the open time of that bar.
	Time time.Time
	// Price is the vertical position, in oscillator units.
	Price    float64
	Color    MarkColor
	Title    string
	Message  string
	Category string
	Alert    optional.Option[AlertEvent]
}
