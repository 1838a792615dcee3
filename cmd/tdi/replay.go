package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rxtech-lab/argo-tdi/internal/feed"
	"github.com/rxtech-lab/argo-tdi/internal/logger"
	"github.com/rxtech-lab/argo-tdi/internal/marker"
	"github.com/rxtech-lab/argo-tdi/internal/tdi"
	"github.com/rxtech-lab/argo-tdi/internal/types"
	"github.com/rxtech-lab/argo-tdi/mocks"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// replayConfig loads the indicator config and applies flag overrides.
func replayConfig(cmd *cli.Command) (tdi.Config, error) {
	config := tdi.DefaultConfig()

	if path := cmd.String("config"); path != "" {
		loaded, err := tdi.LoadConfig(path)
		if err != nil {
			return tdi.Config{}, err
		}

		config = loaded
	}

	if res := cmd.String("base"); res != "" {
		config.BaseResolution = types.Resolution(res)
	}

	if res := cmd.String("aggregation"); res != "" {
		config.AggregationResolution = types.Resolution(res)
	}

	if lag := cmd.String("lag"); lag != "" {
		if err := config.TriggerLag.UnmarshalText([]byte(lag)); err != nil {
			return tdi.Config{}, err
		}
	}

	if lookback := cmd.Int("lookback"); lookback >= 0 {
		config.Lookback = int(lookback)
	}

	if cmd.Bool("all-alerts") {
		config.Alerts = tdi.AlertsConfig{LineBvsMiddle: true, PriceHook: true, PriceVsSignal: true, PriceVsMiddle: true}
	}

	return config, config.Validate()
}

// replayAction feeds historical bars through the indicator tick by tick, the
// way a live chart would deliver them, and prints every fired alert.
func replayAction(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLoggerFromLevelName(cmd.String("log-level"))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	config, err := replayConfig(cmd)
	if err != nil {
		return err
	}

	symbol := cmd.String("symbol")

	bars, err := loadBars(ctx, sourceOptions{
		Source:     cmd.String("source"),
		Path:       cmd.String("data"),
		Symbol:     symbol,
		Resolution: config.BaseResolution,
		Start:      cmd.Timestamp("start"),
		End:        cmd.Timestamp("end"),
		Count:      int(cmd.Int("count")),
		Seed:       int64(cmd.Int("seed")),
	}, log.Component("source"))
	if err != nil {
		return fmt.Errorf("failed to load bars: %w", err)
	}

	resampler, err := feed.NewResampler(symbol, config.BaseResolution, config.Aggregation(), log.Component("resampler"))
	if err != nil {
		return err
	}

	marks, err := marker.NewDuckDBMarker(log.Component("marker"))
	if err != nil {
		return err
	}
	defer marks.Close()

	notifier, err := tdi.NewNotifier(config.Notification, log.Component("notify"))
	if err != nil {
		return fmt.Errorf("failed to create notifier: %w", err)
	}

	var quotes feed.QuoteSource = feed.NewLastCloseQuote(resampler.Base(), config.Digits)
	if cmd.Bool("live-quotes") {
		quotes = feed.NewBinanceHistory(log)
	}

	indicator, err := tdi.NewIndicator(config, resampler, nil, tdi.Sinks{
		Marker:   marks,
		Notifier: notifier,
		Quotes:   quotes,
	}, log.Component("tdi"))
	if err != nil {
		return err
	}

	if err := indicator.Attach(); err != nil {
		return err
	}
	defer indicator.Detach()

	ticks := int(cmd.Int("ticks"))
	progress := progressbar.Default(int64(len(bars)))
	progress.Describe(fmt.Sprintf("Replaying %s %s/%s", symbol, config.BaseResolution, config.Aggregation()))

	var alerts []types.AlertEvent

	for _, bar := range bars {
		for _, tick := range mocks.Ticks(bar, ticks) {
			index, _, err := resampler.Update(tick)
			if err != nil {
				return err
			}

			update, err := indicator.OnBarUpdate(ctx, index)
			if err != nil {
				log.Error("Failed to evaluate bar", zap.Int("index", index), zap.Error(err))

				return err
			}

			alerts = append(alerts, update.Alerts...)
		}

		_ = progress.Add(1)
	}

	_ = progress.Finish()
	fmt.Println()
	fmt.Print(RenderAlerts(symbol, alerts))

	if output := cmd.String("output"); output != "" {
		path, err := marks.Write(output)
		if err != nil {
			return err
		}

		fmt.Println(HelpStyle.Render("Annotations written to " + path))
	}

	return nil
}

// schemaAction prints the JSON schema of the indicator config.
func schemaAction(_ context.Context, cmd *cli.Command) error {
	schema, err := tdi.ConfigSchema()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	if path := cmd.String("output"); path != "" {
		return os.WriteFile(path, []byte(schema), 0644)
	}

	fmt.Println(schema)

	return nil
}
