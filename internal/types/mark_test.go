package types

import (
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"
)

type MarkTestSuite struct {
	suite.Suite
}

func TestMarkSuite(t *testing.T) {
	suite.Run(t, new(MarkTestSuite))
}

func (suite *MarkTestSuite) TestMarkShapeConstants() {
	suite.Equal(MarkShape("arrow_up"), MarkShapeArrowUp)
	suite.Equal(MarkShape("arrow_down"), MarkShapeArrowDown)
	suite.Equal(MarkShape("circle"), MarkShapeCircle)
}

func (suite *MarkTestSuite) TestMarkWithAlert() {
	boundary := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)
	alert := AlertEvent{
		ID:        "evt-1",
		Kind:      AlertKindPriceVsMiddle,
		Direction: DirectionBullish,
		Boundary:  boundary,
		BaseIndex: 41,
		MarkIndex: 39,
	}

	mark := Mark{
		Name:     "tdi_price_vs_middle_bullish_1709726400",
		Shape:    MarkShapeArrowUp,
		BarIndex: 39,
		Time:     boundary,
		Price:    51.2,
		Color:    MarkColorYellow,
		Title:    "Price/Base line cross",
		Category: string(AlertKindPriceVsMiddle),
		Alert:    optional.Some(alert),
	}

	suite.Equal(39, mark.BarIndex)
	suite.Equal(MarkColorYellow, mark.Color)
	suite.True(mark.Alert.IsSome())
	suite.Equal(alert, mark.Alert.Unwrap())
}

func (suite *MarkTestSuite) TestMarkZeroValues() {
	mark := Mark{}

	suite.Empty(mark.Name)
	suite.Empty(mark.Color)
	suite.Empty(string(mark.Shape))
	suite.Zero(mark.BarIndex)
	suite.True(mark.Alert.IsNone())
}
