package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-tdi/internal/logger"
	"github.com/rxtech-lab/argo-tdi/internal/types"
	"github.com/stretchr/testify/suite"
)

type ReplayTestSuite struct {
	suite.Suite
}

func TestReplaySuite(t *testing.T) {
	suite.Run(t, new(ReplayTestSuite))
}

func (suite *ReplayTestSuite) TestDataSourceValues() {
	suite.Equal("file", DataSourceFile)
	suite.Equal("binance", DataSourceBinance)
	suite.Equal("polygon", DataSourcePolygon)
	suite.Equal("synthetic", DataSourceSynthetic)
}

func (suite *ReplayTestSuite) TestSyntheticBars() {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	bars, err := loadBars(context.Background(), sourceOptions{
		Source:     DataSourceSynthetic,
		Symbol:     "BTCUSDT",
		Resolution: types.ResolutionFiveMinutes,
		Start:      start,
		Count:      10,
		Seed:       7,
	}, logger.NewNopLogger())
	suite.Require().NoError(err)
	suite.Require().Len(bars, 10)

	suite.Equal("BTCUSDT", bars[0].Symbol)
	suite.Equal(start, bars[0].Time)
	suite.Equal(start.Add(45*time.Minute), bars[9].Time)
}

func (suite *ReplayTestSuite) TestLoadBarsErrors() {
	_, err := loadBars(context.Background(), sourceOptions{Source: DataSourceFile}, logger.NewNopLogger())
	suite.Error(err)

	_, err = loadBars(context.Background(), sourceOptions{Source: "ftp"}, logger.NewNopLogger())
	suite.ErrorContains(err, "unknown data source")
}

func (suite *ReplayTestSuite) TestRenderAlerts() {
	suite.Contains(RenderAlerts("BTCUSDT", nil), "No crossings fired.")

	out := RenderAlerts("BTCUSDT", []types.AlertEvent{{
		Kind:      types.AlertKindPriceVsSignal,
		Direction: types.DirectionBearish,
		MarkIndex: 12,
		Time:      time.Date(2024, 3, 1, 4, 20, 0, 0, time.UTC),
		Lines:     types.Lines{Upper: 70, Lower: 30, Middle: 50, Price: 48.5, Signal: 49.25},
	}})

	suite.Contains(out, "BTCUSDT: 1 alerts")
	suite.Contains(out, "2024-03-01 04:20")
	suite.Contains(out, "Price/Signal line cross")
	suite.Contains(out, "bearish")
	suite.Contains(out, "49.25")
	suite.Equal(1, strings.Count(out, "Price/Signal line cross"))
}

func (suite *ReplayTestSuite) TestWindowDefaults() {
	end := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	opts := sourceOptions{Resolution: types.ResolutionOneHour, End: end, Count: 24}

	start, gotEnd := opts.window()
	suite.Equal(end, gotEnd)
	suite.Equal(end.Add(-24*time.Hour), start)
}
