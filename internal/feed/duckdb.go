package feed

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-tdi/internal/logger"
	"github.com/rxtech-lab/argo-tdi/internal/types"
	"github.com/rxtech-lab/argo-tdi/pkg/errors"
	"go.uber.org/zap"
)

// LoadOptions narrows the bars read from a file.
type LoadOptions struct {
	// Symbol filters rows by the symbol column. Empty reads every row.
	Symbol     string
	Resolution types.Resolution
	Start      optional.Option[time.Time]
	End        optional.Option[time.Time]
}

// LoadFile reads bars from a parquet or csv file with the columns
// time, symbol, open, high, low, close, volume. The file is queried through an
// in-memory DuckDB connection.
func LoadFile(ctx context.Context, path string, opts LoadOptions, log *logger.Logger) (*BarSeries, error) {
	reader, err := fileReader(path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open duckdb", err)
	}
	defer db.Close()

	sq := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query := sq.Select(
		"CAST(time AS TIMESTAMP) AS time",
		"CAST(symbol AS VARCHAR) AS symbol",
		"CAST(open AS DOUBLE) AS open",
		"CAST(high AS DOUBLE) AS high",
		"CAST(low AS DOUBLE) AS low",
		"CAST(close AS DOUBLE) AS close",
		"CAST(volume AS DOUBLE) AS volume",
	).From(reader).OrderBy("time ASC")

	if opts.Symbol != "" {
		query = query.Where(squirrel.Eq{"symbol": opts.Symbol})
	}

	if opts.Start.IsSome() {
		query = query.Where(squirrel.GtOrEq{"time": opts.Start.Unwrap()})
	}

	if opts.End.IsSome() {
		query = query.Where(squirrel.LtOrEq{"time": opts.End.Unwrap()})
	}

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	log.Debug("Loading bars", zap.String("path", path), zap.String("query", sqlQuery))

	rows, err := db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to query %s", path)
	}
	defer rows.Close()

	symbol := opts.Symbol
	var bars []types.Bar

	for rows.Next() {
		var bar types.Bar

		if err := rows.Scan(&bar.Time, &bar.Symbol, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeParseFailed, "failed to scan bar", err)
		}

		bar.Time = bar.Time.UTC()

		if symbol == "" {
			symbol = bar.Symbol
		}

		bars = append(bars, bar)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to iterate bars", err)
	}

	if len(bars) == 0 {
		return nil, errors.Newf(errors.ErrCodeDataNotFound, "no bars found in %s", path)
	}

	series, err := NewBarSeriesFrom(symbol, opts.Resolution, bars)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeParseFailed, err, "bars in %s are not strictly ordered", path)
	}

	log.Info("Loaded bars", zap.String("path", path), zap.String("symbol", symbol), zap.Int("count", len(bars)))

	return series, nil
}

// fileReader returns the DuckDB table function that reads path.
func fileReader(path string) (string, error) {
	escaped := strings.ReplaceAll(path, "'", "''")

	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return fmt.Sprintf("read_parquet('%s')", escaped), nil
	case ".csv":
		return fmt.Sprintf("read_csv_auto('%s')", escaped), nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidParameter, "unsupported file type %q, expected .parquet or .csv", filepath.Ext(path))
	}
}
