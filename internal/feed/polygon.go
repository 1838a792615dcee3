package feed

import (
	"context"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-tdi/internal/logger"
	"github.com/rxtech-lab/argo-tdi/internal/types"
	"github.com/rxtech-lab/argo-tdi/pkg/errors"
	"go.uber.org/zap"
)

// PolygonHistory downloads aggregate bars from Polygon.io.
type PolygonHistory struct {
	client *polygon.Client
	logger *logger.Logger
}

func NewPolygonHistory(apiKey string, log *logger.Logger) (*PolygonHistory, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "polygon api key is required")
	}

	return &PolygonHistory{
		client: polygon.New(apiKey),
		logger: log,
	}, nil
}

// Aggregates returns bars of the given resolution in [start, end].
func (p *PolygonHistory) Aggregates(ctx context.Context, symbol string, res types.Resolution, start, end time.Time) ([]types.Bar, error) {
	multiplier, timespan, err := polygonTimespan(res)
	if err != nil {
		return nil, err
	}

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     symbol,
		Multiplier: multiplier,
		Timespan:   timespan,
		From:       models.Millis(start),
		To:         models.Millis(end),
	}.WithLimit(50000)

	iter := p.client.ListAggs(ctx, params)

	var bars []types.Bar

	for iter.Next() {
		agg := iter.Item()
		bars = append(bars, types.Bar{
			Symbol: symbol,
			Time:   time.Time(agg.Timestamp).UTC(),
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		})
	}

	if iter.Err() != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, iter.Err(), "failed to list %s aggregates from Polygon", symbol)
	}

	p.logger.Debug("Fetched aggregates", zap.String("symbol", symbol), zap.Int("count", len(bars)))

	return bars, nil
}

// Load downloads aggregates into a new arena.
func (p *PolygonHistory) Load(ctx context.Context, symbol string, res types.Resolution, start, end time.Time) (*BarSeries, error) {
	bars, err := p.Aggregates(ctx, symbol, res, start, end)
	if err != nil {
		return nil, err
	}

	return NewBarSeriesFrom(symbol, res, bars)
}

func polygonTimespan(res types.Resolution) (int, models.Timespan, error) {
	if err := res.Validate(); err != nil {
		return 0, "", err
	}

	var timespan models.Timespan

	switch res.Unit() {
	case 's':
		timespan = models.Second
	case 'm':
		timespan = models.Minute
	case 'h':
		timespan = models.Hour
	case 'd':
		timespan = models.Day
	case 'w':
		timespan = models.Week
	case 'M':
		timespan = models.Month
	}

	return res.Multiplier(), timespan, nil
}
