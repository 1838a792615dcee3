package feed

import (
	"testing"
	"time"

	"github.com/rxtech-lab/argo-tdi/internal/types"
	"github.com/rxtech-lab/argo-tdi/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type BarSeriesTestSuite struct {
	suite.Suite
	start time.Time
}

func TestBarSeriesSuite(t *testing.T) {
	suite.Run(t, new(BarSeriesTestSuite))
}

func (suite *BarSeriesTestSuite) SetupTest() {
	suite.start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

func (suite *BarSeriesTestSuite) bar(minute int, price float64) types.Bar {
	return types.Bar{
		Symbol: "BTCUSDT",
		Time:   suite.start.Add(time.Duration(minute) * time.Minute),
		Open:   price,
		High:   price + 1,
		Low:    price - 1,
		Close:  price,
		Volume: 10,
	}
}

func (suite *BarSeriesTestSuite) TestAppendAndAt() {
	series := NewBarSeries("BTCUSDT", types.ResolutionOneMinute)
	suite.Equal("BTCUSDT", series.Symbol())
	suite.Equal(types.ResolutionOneMinute, series.Resolution())
	suite.True(series.Last().IsNone())

	suite.Require().NoError(series.Append(suite.bar(0, 100)))
	suite.Require().NoError(series.Append(suite.bar(1, 101)))
	suite.Equal(2, series.Len())

	bar, err := series.At(1)
	suite.Require().NoError(err)
	suite.Equal(101.0, bar.Close)
	suite.Equal(101.0, series.Last().Unwrap().Close)

	_, err = series.At(2)
	suite.True(errors.HasCode(err, errors.ErrCodeIndexOutOfRange))

	_, err = series.At(-1)
	suite.True(errors.HasCode(err, errors.ErrCodeIndexOutOfRange))
}

func (suite *BarSeriesTestSuite) TestAppendRejectsOutOfOrder() {
	series := NewBarSeries("BTCUSDT", types.ResolutionOneMinute)
	suite.Require().NoError(series.Append(suite.bar(1, 100)))

	err := series.Append(suite.bar(1, 100))
	suite.True(errors.HasCode(err, errors.ErrCodeOutOfOrderBar))

	err = series.Append(suite.bar(0, 100))
	suite.True(errors.HasCode(err, errors.ErrCodeOutOfOrderBar))
}

func (suite *BarSeriesTestSuite) TestUpsert() {
	series := NewBarSeries("BTCUSDT", types.ResolutionOneMinute)

	index, isNew, err := series.Upsert(suite.bar(0, 100))
	suite.Require().NoError(err)
	suite.Equal(0, index)
	suite.True(isNew)

	index, isNew, err = series.Upsert(suite.bar(0, 105))
	suite.Require().NoError(err)
	suite.Equal(0, index)
	suite.False(isNew)
	suite.Equal(1, series.Len())
	suite.Equal(105.0, series.Last().Unwrap().Close)

	index, isNew, err = series.Upsert(suite.bar(1, 106))
	suite.Require().NoError(err)
	suite.Equal(1, index)
	suite.True(isNew)

	_, _, err = series.Upsert(suite.bar(0, 90))
	suite.True(errors.HasCode(err, errors.ErrCodeOutOfOrderBar))
}

func (suite *BarSeriesTestSuite) TestIndexOf() {
	series := NewBarSeries("BTCUSDT", types.ResolutionOneMinute)

	// irregular gap between minute 2 and minute 10
	for _, minute := range []int{0, 1, 2, 10, 11} {
		suite.Require().NoError(series.Append(suite.bar(minute, 100)))
	}

	tests := []struct {
		name     string
		at       time.Duration
		expected int
	}{
		{"before first bar", -time.Minute, -1},
		{"exact first bar", 0, 0},
		{"inside first bar", 30 * time.Second, 0},
		{"exact middle", 2 * time.Minute, 2},
		{"inside gap", 7 * time.Minute, 2},
		{"after gap", 10 * time.Minute, 3},
		{"after last", time.Hour, 4},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.Equal(tt.expected, series.IndexOf(suite.start.Add(tt.at)))
		})
	}
}

func (suite *BarSeriesTestSuite) TestPrices() {
	series, err := NewBarSeriesFrom("BTCUSDT", types.ResolutionOneMinute, []types.Bar{
		suite.bar(0, 100),
		suite.bar(1, 102),
		suite.bar(2, 104),
	})
	suite.Require().NoError(err)

	suite.Equal([]float64{100, 102}, series.Prices(types.AppliedPriceClose, 1))
	suite.Equal([]float64{101, 103, 105}, series.Prices(types.AppliedPriceHigh, 10))
	suite.Nil(series.Prices(types.AppliedPriceClose, -1))
	suite.Len(series.Bars(), 3)

	suite.Equal([]float64{102, 104}, series.PricesFrom(types.AppliedPriceClose, 1, 2))
	suite.Equal([]float64{100}, series.PricesFrom(types.AppliedPriceClose, -4, 0))
	suite.Nil(series.PricesFrom(types.AppliedPriceClose, 2, 1))
}

func (suite *BarSeriesTestSuite) TestNewBarSeriesFromUnsorted() {
	_, err := NewBarSeriesFrom("BTCUSDT", types.ResolutionOneMinute, []types.Bar{
		suite.bar(1, 100),
		suite.bar(0, 100),
	})
	suite.True(errors.HasCode(err, errors.ErrCodeOutOfOrderBar))
}
