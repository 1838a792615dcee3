package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-tdi/internal/feed"
	"github.com/rxtech-lab/argo-tdi/internal/logger"
	"github.com/rxtech-lab/argo-tdi/internal/types"
	"github.com/rxtech-lab/argo-tdi/mocks"
)

type DataSource = string

const (
	DataSourceFile      DataSource = "file"
	DataSourceBinance   DataSource = "binance"
	DataSourcePolygon   DataSource = "polygon"
	DataSourceSynthetic DataSource = "synthetic"
)

// sourceOptions selects where replay bars come from.
type sourceOptions struct {
	Source     DataSource
	Path       string
	Symbol     string
	Resolution types.Resolution
	Start      time.Time
	End        time.Time
	// Count and Seed drive the synthetic source.
	Count int
	Seed  int64
}

// window returns the requested time range, defaulting to the last Count bars
// before now.
func (o sourceOptions) window() (time.Time, time.Time) {
	end := o.End
	if end.IsZero() {
		end = time.Now().UTC()
	}

	start := o.Start
	if start.IsZero() {
		start = end.Add(-time.Duration(o.Count) * o.Resolution.Duration())
	}

	return start, end
}

// loadBars reads the base resolution bars to replay.
func loadBars(ctx context.Context, opts sourceOptions, log *logger.Logger) ([]types.Bar, error) {
	switch opts.Source {
	case DataSourceFile:
		if opts.Path == "" {
			return nil, fmt.Errorf("--data is required for the %s source", DataSourceFile)
		}

		loadOpts := feed.LoadOptions{
			Symbol:     opts.Symbol,
			Resolution: opts.Resolution,
			Start:      optional.None[time.Time](),
			End:        optional.None[time.Time](),
		}
		if !opts.Start.IsZero() {
			loadOpts.Start = optional.Some(opts.Start)
		}

		if !opts.End.IsZero() {
			loadOpts.End = optional.Some(opts.End)
		}

		series, err := feed.LoadFile(ctx, opts.Path, loadOpts, log)
		if err != nil {
			return nil, err
		}

		return series.Bars(), nil
	case DataSourceBinance:
		start, end := opts.window()

		return feed.NewBinanceHistory(log).Klines(ctx, opts.Symbol, opts.Resolution, start, end)
	case DataSourcePolygon:
		history, err := feed.NewPolygonHistory(os.Getenv("POLYGON_API_KEY"), log)
		if err != nil {
			return nil, err
		}

		start, end := opts.window()

		return history.Aggregates(ctx, opts.Symbol, opts.Resolution, start, end)
	case DataSourceSynthetic:
		config := mocks.DefaultConfig()
		config.Symbol = opts.Symbol
		config.Interval = opts.Resolution.Duration()
		config.Count = opts.Count

		if !opts.Start.IsZero() {
			config.StartTime = opts.Start
		}

		return mocks.NewBarGenerator(opts.Seed).Generate(config), nil
	default:
		return nil, fmt.Errorf("unknown data source %q", opts.Source)
	}
}
