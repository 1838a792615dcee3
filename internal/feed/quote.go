package feed

import (
	"context"

	"github.com/rxtech-lab/argo-tdi/internal/types"
	"github.com/rxtech-lab/argo-tdi/pkg/errors"
)

// QuoteSource returns the current bid and ask of an instrument.
type QuoteSource interface {
	Quote(ctx context.Context, symbol string) (types.Quote, error)
}

// LastCloseQuote quotes the close of the newest bar in an arena as both bid
// and ask. It serves replays where no order book is available.
type LastCloseQuote struct {
	series *BarSeries
	digits int
}

func NewLastCloseQuote(series *BarSeries, digits int) *LastCloseQuote {
	return &LastCloseQuote{series: series, digits: digits}
}

// Quote implements QuoteSource.
func (q *LastCloseQuote) Quote(_ context.Context, symbol string) (types.Quote, error) {
	last := q.series.Last()
	if last.IsNone() {
		return types.Quote{}, errors.Newf(errors.ErrCodeDataNotFound, "no bars available to quote %s", symbol)
	}

	bar := last.Unwrap()

	return types.Quote{
		Symbol: symbol,
		Bid:    bar.Close,
		Ask:    bar.Close,
		Digits: q.digits,
	}, nil
}
