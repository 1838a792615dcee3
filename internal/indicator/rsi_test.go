package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-tdi/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type RSITestSuite struct {
	suite.Suite
}

func TestRSISuite(t *testing.T) {
	suite.Run(t, new(RSITestSuite))
}

func (suite *RSITestSuite) TestWilderSmoothing() {
	out, err := RelativeStrength([]float64{10, 11, 10, 12}, 2)
	suite.Require().NoError(err)

	suite.True(math.IsNaN(out[0]))
	suite.True(math.IsNaN(out[1]))
	suite.InDelta(50.0, out[2], 1e-9)
	suite.InDelta(83.3333, out[3], 1e-4)
}

func (suite *RSITestSuite) TestPerfectTrends() {
	up, err := RelativeStrength([]float64{1, 2, 3, 4, 5}, 2)
	suite.Require().NoError(err)
	suite.Equal(100.0, up[4])

	down, err := RelativeStrength([]float64{5, 4, 3, 2, 1}, 2)
	suite.Require().NoError(err)
	suite.Equal(0.0, down[4])

	flat, err := RelativeStrength([]float64{3, 3, 3, 3}, 2)
	suite.Require().NoError(err)
	suite.Equal(50.0, flat[3])
}

func (suite *RSITestSuite) TestInsufficientData() {
	out, err := RelativeStrength([]float64{1, 2}, 2)
	suite.Require().NoError(err)
	suite.Len(out, 2)
	suite.True(math.IsNaN(out[1]))
}

func (suite *RSITestSuite) TestInvalidPeriod() {
	_, err := RelativeStrength([]float64{1, 2, 3}, 0)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}

func (suite *RSITestSuite) TestBounded() {
	prices := make([]float64, 200)
	for i := range prices {
		prices[i] = 100 + 10*math.Sin(float64(i)/7) + float64(i%3)
	}

	out, err := RelativeStrength(prices, 13)
	suite.Require().NoError(err)

	for i := 13; i < len(out); i++ {
		suite.GreaterOrEqual(out[i], 0.0)
		suite.LessOrEqual(out[i], 100.0)
	}
}
