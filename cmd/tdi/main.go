package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/rxtech-lab/argo-tdi/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	timestampConfig := cli.TimestampConfig{
		Layouts: []string{"2006-01-02", "2006-01-02T15:04:05Z07:00"},
	}

	cmd := &cli.Command{
		Name:    "tdi",
		Usage:   "Traders Dynamic Index alerts",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:  "replay",
				Usage: "Replay historical bars through the indicator and list fired alerts",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to the indicator config (YAML)",
					},
					&cli.StringFlag{
						Name:    "source",
						Usage:   fmt.Sprintf("Bar source (%s, %s, %s, %s)", DataSourceFile, DataSourceBinance, DataSourcePolygon, DataSourceSynthetic),
						Value:   DataSourceSynthetic,
						Aliases: []string{"s"},
					},
					&cli.StringFlag{
						Name:    "data",
						Aliases: []string{"d"},
						Usage:   "Parquet or CSV file for the file source",
					},
					&cli.StringFlag{
						Name:  "symbol",
						Usage: "Instrument symbol",
						Value: "BTCUSDT",
					},
					&cli.StringFlag{
						Name:  "base",
						Usage: "Base resolution, overrides the config",
					},
					&cli.StringFlag{
						Name:    "aggregation",
						Aliases: []string{"a"},
						Usage:   "Aggregation resolution, overrides the config",
					},
					&cli.StringFlag{
						Name:  "lag",
						Usage: "Trigger lag (current or previous), overrides the config",
					},
					&cli.BoolFlag{
						Name:  "all-alerts",
						Usage: "Enable every alert kind",
					},
					&cli.IntFlag{
						Name:  "lookback",
						Usage: "Aggregation bars fed to the oscillator per evaluation, 0 for the whole history, -1 keeps the config value",
						Value: -1,
					},
					&cli.TimestampFlag{
						Name:   "start",
						Usage:  "Start of the replay in `YYYY-MM-DD` format",
						Config: timestampConfig,
					},
					&cli.TimestampFlag{
						Name:   "end",
						Usage:  "End of the replay in `YYYY-MM-DD` format",
						Config: timestampConfig,
					},
					&cli.IntFlag{
						Name:  "count",
						Usage: "Number of bars for the synthetic source",
						Value: 2000,
					},
					&cli.IntFlag{
						Name:  "seed",
						Usage: "Random seed for the synthetic source",
						Value: 42,
					},
					&cli.IntFlag{
						Name:  "ticks",
						Usage: "Intrabar updates per base bar",
						Value: 4,
					},
					&cli.BoolFlag{
						Name:  "live-quotes",
						Usage: "Quote bid and ask from the Binance order book",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Directory to export annotations to as parquet",
					},
					&cli.StringFlag{
						Name:  "log-level",
						Usage: "Log level (debug, info, warn, error)",
						Value: "warn",
					},
				},
				Action: replayAction,
			},
			{
				Name:  "schema",
				Usage: "Print the JSON schema of the indicator config",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the schema to a file instead of stdout",
					},
				},
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
