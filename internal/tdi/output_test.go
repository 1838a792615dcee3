package tdi

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-tdi/internal/types"
	"github.com/stretchr/testify/suite"
)

type OutputSeriesTestSuite struct {
	suite.Suite
}

func TestOutputSeriesSuite(t *testing.T) {
	suite.Run(t, new(OutputSeriesTestSuite))
}

func (suite *OutputSeriesTestSuite) TestRepaintWrites() {
	output := NewOutputSeries()
	first := lines(70, 30, 50, 40, 45)
	second := lines(71, 31, 51, 41, 46)

	output.Write(4, 4, first)
	suite.Equal(5, output.Len())
	suite.True(output.At(3).IsNone())
	suite.Equal(first, output.At(4).Unwrap())

	// the forming aggregation bar repaints indices 4 to 6
	output.Write(4, 6, second)
	suite.Equal(7, output.Len())

	for i := 4; i <= 6; i++ {
		suite.Equal(second, output.At(i).Unwrap())
	}

	price := output.Line(types.LinePrice)
	suite.Len(price, 7)
	suite.True(math.IsNaN(price[0]))
	suite.Equal(41.0, price[6])

	suite.True(output.At(-1).IsNone())
	suite.True(output.At(7).IsNone())
}

func (suite *OutputSeriesTestSuite) TestWriteClampsNegativeStart() {
	output := NewOutputSeries()
	output.Write(-3, 1, lines(1, 2, 3, 4, 5))

	suite.Equal(2, output.Len())
	suite.True(output.At(0).IsSome())
}
