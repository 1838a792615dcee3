package feed

import (
	"testing"
	"time"

	"github.com/rxtech-lab/argo-tdi/internal/logger"
	"github.com/rxtech-lab/argo-tdi/internal/types"
	"github.com/stretchr/testify/suite"
)

type ResamplerTestSuite struct {
	suite.Suite
	logger *logger.Logger
	start  time.Time
}

func TestResamplerSuite(t *testing.T) {
	suite.Run(t, new(ResamplerTestSuite))
}

func (suite *ResamplerTestSuite) SetupSuite() {
	suite.logger = logger.NewNopLogger()
	suite.start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

func (suite *ResamplerTestSuite) bar(minute int, open, high, low, closePrice float64) types.Bar {
	return types.Bar{
		Symbol: "EURUSD",
		Time:   suite.start.Add(time.Duration(minute) * time.Minute),
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePrice,
		Volume: 1,
	}
}

func (suite *ResamplerTestSuite) TestBuildsAggregationBars() {
	resampler, err := NewResampler("EURUSD", types.ResolutionOneMinute, types.ResolutionFiveMinutes, suite.logger)
	suite.Require().NoError(err)

	for minute := range 7 {
		price := 100 + float64(minute)
		_, _, err := resampler.Update(suite.bar(minute, price, price+2, price-2, price+1))
		suite.Require().NoError(err)
	}

	suite.Equal(7, resampler.Base().Len())
	suite.Equal(2, resampler.Aggregate().Len())

	first, err := resampler.Aggregate().At(0)
	suite.Require().NoError(err)
	suite.Equal(suite.start, first.Time)
	suite.Equal(100.0, first.Open)
	suite.Equal(106.0, first.High)
	suite.Equal(98.0, first.Low)
	suite.Equal(105.0, first.Close)
	suite.Equal(5.0, first.Volume)

	second, err := resampler.Aggregate().At(1)
	suite.Require().NoError(err)
	suite.Equal(suite.start.Add(5*time.Minute), second.Time)
	suite.Equal(105.0, second.Open)
	suite.Equal(107.0, second.Close)
	suite.Equal(2.0, second.Volume)
}

func (suite *ResamplerTestSuite) TestFormingBarRepaintsAggregation() {
	resampler, err := NewResampler("EURUSD", types.ResolutionOneMinute, types.ResolutionFiveMinutes, suite.logger)
	suite.Require().NoError(err)

	_, _, err = resampler.Update(suite.bar(0, 100, 101, 99, 100))
	suite.Require().NoError(err)

	index, isNew, err := resampler.Update(suite.bar(1, 100, 101, 99, 100.5))
	suite.Require().NoError(err)
	suite.Equal(1, index)
	suite.True(isNew)

	// intrabar tick on the same base bar
	index, isNew, err = resampler.Update(suite.bar(1, 100, 110, 99, 109))
	suite.Require().NoError(err)
	suite.Equal(1, index)
	suite.False(isNew)

	agg := resampler.Aggregate().Last().Unwrap()
	suite.Equal(110.0, agg.High)
	suite.Equal(109.0, agg.Close)
	suite.Equal(2.0, agg.Volume, "re-ticks must not double count volume")
	suite.Equal(1, resampler.Aggregate().Len())
}

func (suite *ResamplerTestSuite) TestPassThrough() {
	tests := []struct {
		name string
		agg  types.Resolution
	}{
		{"empty aggregation", ""},
		{"same resolution", types.ResolutionOneMinute},
		{"finer aggregation", types.ResolutionOneSecond},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			resampler, err := NewResampler("EURUSD", types.ResolutionOneMinute, tt.agg, suite.logger)
			suite.Require().NoError(err)
			suite.Same(resampler.Base(), resampler.Aggregate())

			_, _, err = resampler.Update(suite.bar(0, 1, 1, 1, 1))
			suite.Require().NoError(err)
			suite.Equal(1, resampler.Aggregate().Len())
		})
	}
}

func (suite *ResamplerTestSuite) TestInvalidResolution() {
	_, err := NewResampler("EURUSD", "x", types.ResolutionOneHour, suite.logger)
	suite.Error(err)
}

func (suite *ResamplerTestSuite) TestStaticProvider() {
	base := NewBarSeries("EURUSD", types.ResolutionOneMinute)
	agg := NewBarSeries("EURUSD", types.ResolutionOneHour)

	provider := NewStaticProvider(base, agg)
	suite.Same(base, provider.Base())
	suite.Same(agg, provider.Aggregate())

	identity := NewStaticProvider(base, nil)
	suite.Same(base, identity.Aggregate())
}
