package tdi

import (
	"testing"
	"time"

	"github.com/rxtech-lab/argo-tdi/internal/feed"
	"github.com/rxtech-lab/argo-tdi/internal/logger"
	"github.com/rxtech-lab/argo-tdi/internal/types"
	"github.com/rxtech-lab/argo-tdi/mocks"
	"github.com/rxtech-lab/argo-tdi/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type EngineTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (suite *EngineTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
}

func (suite *EngineTestSuite) engine(pipeline *mocks.MockPipeline, n int) *Engine {
	config := DefaultConfig()
	config.Alerts.PriceVsSignal = true
	config.Alerts.LineBvsMiddle = true

	provider := feed.NewStaticProvider(minuteSeries(flatCloses(n)), nil)

	engine, err := NewEngine(config, provider, pipeline, logger.NewNopLogger())
	suite.Require().NoError(err)

	return engine
}

func (suite *EngineTestSuite) TestEvaluateLeavesInputState() {
	pipeline := mocks.NewMockPipeline(suite.ctrl)
	pipeline.EXPECT().Compute(gomock.Any()).DoAndReturn(func(prices []float64) (types.LineSeries, error) {
		script := make([]types.Lines, len(prices))
		for i := range script {
			script[i] = lines(70, 30, 50, 55, 45)
		}

		return scriptedSeries(len(prices), script), nil
	}).AnyTimes()

	engine := suite.engine(pipeline, 5)
	state := NewState()

	update, next, err := engine.Evaluate(state, 2)
	suite.Require().NoError(err)

	suite.True(update.Computable)
	suite.True(update.NewBar)
	suite.Equal(2, update.AggregatedIndex)
	suite.Equal(1, update.LaggedIndex)
	suite.Equal(1, update.RepaintCount)
	suite.Equal(2, update.RepaintFrom())

	suite.Equal(-1, state.PreviousProcessedIndex)
	suite.True(state.Boundary(types.AlertKindPriceVsSignal).IsNone())

	suite.Equal(2, next.PreviousProcessedIndex)
	suite.Equal(testStart.Add(4*time.Minute), next.Boundary(types.AlertKindPriceVsSignal).Unwrap())
	suite.Equal(testStart.Add(4*time.Minute), next.Boundary(types.AlertKindLineBvsMiddle).Unwrap())
	suite.True(next.Boundary(types.AlertKindPriceHook).IsNone(), "disabled kinds stay uninitialized")
}

func (suite *EngineTestSuite) TestEvaluateUndefinedLines() {
	pipeline := mocks.NewMockPipeline(suite.ctrl)
	pipeline.EXPECT().Compute(gomock.Any()).DoAndReturn(func(prices []float64) (types.LineSeries, error) {
		return types.NewLineSeries(len(prices)), nil
	})
	pipeline.EXPECT().WarmUp().Return(46).AnyTimes()

	_, _, err := suite.engine(pipeline, 5).Evaluate(NewState(), 4)
	suite.True(errors.IsInsufficientDataError(err))
}

func (suite *EngineTestSuite) TestEvaluatePipelineError() {
	pipeline := mocks.NewMockPipeline(suite.ctrl)
	pipeline.EXPECT().Compute(gomock.Any()).Return(types.LineSeries{}, errors.New(errors.ErrCodeIndicatorCalculation, "boom"))

	_, state, err := suite.engine(pipeline, 5).Evaluate(NewState(), 4)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorCalculation))
	suite.Equal(-1, state.PreviousProcessedIndex)
}

func (suite *EngineTestSuite) TestEvaluateOutOfRange() {
	pipeline := mocks.NewMockPipeline(suite.ctrl)

	_, _, err := suite.engine(pipeline, 5).Evaluate(NewState(), 5)
	suite.True(errors.HasCode(err, errors.ErrCodeIndexOutOfRange))
}

func (suite *EngineTestSuite) TestEvaluateFeedsLookbackWindow() {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = float64(i)
	}

	var fed [][]float64

	pipeline := mocks.NewMockPipeline(suite.ctrl)
	pipeline.EXPECT().Compute(gomock.Any()).DoAndReturn(func(prices []float64) (types.LineSeries, error) {
		fed = append(fed, prices)

		// the price line echoes the input and crosses the signal line at 20
		script := make([]types.Lines, len(prices))
		for i, price := range prices {
			script[i] = lines(70, 30, 50, price, 19.5)
		}

		return scriptedSeries(len(prices), script), nil
	}).AnyTimes()

	config := DefaultConfig()
	config.Lookback = 10
	config.Alerts.PriceVsSignal = true

	bars := mocks.Closes("EURUSD", testStart, time.Minute, closes)
	base, err := feed.NewBarSeriesFrom("EURUSD", types.ResolutionOneMinute, bars[:6])
	suite.Require().NoError(err)

	engine, err := NewEngine(config, feed.NewStaticProvider(base, nil), pipeline, logger.NewNopLogger())
	suite.Require().NoError(err)

	update, state, err := engine.Evaluate(NewState(), 5)
	suite.Require().NoError(err)
	suite.Equal(5.0, update.Lines.Price)
	suite.Len(fed[0], 6)

	for _, bar := range bars[6:22] {
		suite.Require().NoError(base.Append(bar))
	}

	update, _, err = engine.Evaluate(state, 21)
	suite.Require().NoError(err)
	suite.Require().Len(fed, 2)
	suite.Equal(closes[12:22], fed[1])
	suite.Equal(21.0, update.Lines.Price)
	suite.Equal(20, update.LaggedIndex)

	suite.Require().Len(update.Alerts, 1)
	suite.Equal(types.DirectionBullish, update.Alerts[0].Direction)
	suite.Equal(20.0, update.Alerts[0].Lines.Price)
}
