package feed

import (
	"context"
	"strconv"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
	"github.com/rxtech-lab/argo-tdi/internal/logger"
	"github.com/rxtech-lab/argo-tdi/internal/types"
	"github.com/rxtech-lab/argo-tdi/pkg/errors"
	"go.uber.org/zap"
)

// binance returns at most this many klines per request
const binanceKlineLimit = 1000

// BinanceHistory downloads kline history and book ticker quotes from Binance.
// Public endpoints only, no API key is needed.
type BinanceHistory struct {
	client *binance.Client
	logger *logger.Logger
}

func NewBinanceHistory(log *logger.Logger) *BinanceHistory {
	return &BinanceHistory{
		client: binance.NewClient("", ""),
		logger: log,
	}
}

// Klines returns bars of the given resolution in [start, end], paging through
// the kline endpoint.
func (b *BinanceHistory) Klines(ctx context.Context, symbol string, res types.Resolution, start, end time.Time) ([]types.Bar, error) {
	interval, err := binanceInterval(res)
	if err != nil {
		return nil, err
	}

	endMillis := end.UnixMilli()
	current := start.UnixMilli()

	var bars []types.Bar

	for current < endMillis {
		klines, err := b.client.NewKlinesService().
			Symbol(symbol).
			Interval(interval).
			StartTime(current).
			EndTime(endMillis).
			Limit(binanceKlineLimit).
			Do(ctx)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "failed to fetch %s klines from Binance", symbol)
		}

		for _, k := range klines {
			bar, err := barFromKline(symbol, k)
			if err != nil {
				return nil, err
			}

			bars = append(bars, bar)
		}

		b.logger.Debug("Fetched klines", zap.String("symbol", symbol), zap.Int("count", len(klines)))

		if len(klines) < binanceKlineLimit {
			break
		}

		// close time of the last kline + 1ms avoids duplicates
		current = klines[len(klines)-1].CloseTime + 1
	}

	return bars, nil
}

// Load downloads klines into a new arena.
func (b *BinanceHistory) Load(ctx context.Context, symbol string, res types.Resolution, start, end time.Time) (*BarSeries, error) {
	bars, err := b.Klines(ctx, symbol, res, start, end)
	if err != nil {
		return nil, err
	}

	return NewBarSeriesFrom(symbol, res, bars)
}

// Quote implements QuoteSource using the best bid and ask of the book ticker.
func (b *BinanceHistory) Quote(ctx context.Context, symbol string) (types.Quote, error) {
	tickers, err := b.client.NewListBookTickersService().Symbol(symbol).Do(ctx)
	if err != nil {
		return types.Quote{}, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "failed to fetch %s book ticker", symbol)
	}

	if len(tickers) == 0 {
		return types.Quote{}, errors.Newf(errors.ErrCodeDataNotFound, "no book ticker for %s", symbol)
	}

	return quoteFromBookTicker(tickers[0])
}

func barFromKline(symbol string, k *binance.Kline) (types.Bar, error) {
	values := make([]float64, 5)

	for i, raw := range []string{k.Open, k.High, k.Low, k.Close, k.Volume} {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return types.Bar{}, errors.Wrapf(errors.ErrCodeParseFailed, err, "invalid kline value %q", raw)
		}

		values[i] = v
	}

	return types.Bar{
		Symbol: symbol,
		Time:   time.UnixMilli(k.OpenTime).UTC(),
		Open:   values[0],
		High:   values[1],
		Low:    values[2],
		Close:  values[3],
		Volume: values[4],
	}, nil
}

func quoteFromBookTicker(t *binance.BookTicker) (types.Quote, error) {
	bid, err := decimal.NewFromString(t.BidPrice)
	if err != nil {
		return types.Quote{}, errors.Wrapf(errors.ErrCodeParseFailed, err, "invalid bid price %q", t.BidPrice)
	}

	ask, err := decimal.NewFromString(t.AskPrice)
	if err != nil {
		return types.Quote{}, errors.Wrapf(errors.ErrCodeParseFailed, err, "invalid ask price %q", t.AskPrice)
	}

	return types.Quote{
		Symbol: t.Symbol,
		Bid:    bid.InexactFloat64(),
		Ask:    ask.InexactFloat64(),
		Digits: decimalPlaces(bid),
	}, nil
}

// decimalPlaces counts the significant decimals of a price. Binance pads
// prices with trailing zeros ("0.01230000"), which do not count.
func decimalPlaces(price decimal.Decimal) int {
	// String drops trailing zeros, so reparsing normalises the exponent
	trimmed, err := decimal.NewFromString(price.String())
	if err != nil || trimmed.Exponent() >= 0 {
		return 0
	}

	return int(-trimmed.Exponent())
}

// binanceInterval maps a resolution onto one of the kline intervals Binance serves.
func binanceInterval(res types.Resolution) (string, error) {
	switch res {
	case "1s", "1m", "3m", "5m", "15m", "30m",
		"1h", "2h", "4h", "6h", "8h", "12h",
		"1d", "3d", "1w", "1M":
		return string(res), nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidResolution, "resolution %q is not supported by Binance", res)
	}
}
