package tdi

import (
	"context"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-tdi/internal/feed"
	"github.com/rxtech-lab/argo-tdi/internal/indicator"
	"github.com/rxtech-lab/argo-tdi/internal/logger"
	"github.com/rxtech-lab/argo-tdi/internal/marker"
	"github.com/rxtech-lab/argo-tdi/internal/notify"
	"github.com/rxtech-lab/argo-tdi/internal/types"
	"github.com/rxtech-lab/argo-tdi/pkg/errors"
	"go.uber.org/zap"
)

// Sinks receive the side effects of fired alerts. Any of them may be nil.
type Sinks struct {
	Marker   marker.Marker
	Notifier notify.Notifier
	Quotes   feed.QuoteSource
}

// Indicator hosts one oscillator instance: it owns the alert state and the
// output series between Attach and Detach, and forwards fired alerts to the
// sinks. It is not safe for concurrent use.
type Indicator struct {
	config   Config
	provider feed.SeriesProvider
	pipeline indicator.Pipeline
	sinks    Sinks
	logger   *logger.Logger

	engine   *Engine
	state    State
	output   *OutputSeries
	attached bool
}

// NewIndicator validates config and creates a detached indicator. A nil
// pipeline uses the oscillator described by config.
func NewIndicator(config Config, provider feed.SeriesProvider, pipeline indicator.Pipeline, sinks Sinks, log *logger.Logger) (*Indicator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Indicator{
		config:   config,
		provider: provider,
		pipeline: pipeline,
		sinks:    sinks,
		logger:   log,
		engine:   nil,
		state:    State{},
		output:   nil,
		attached: false,
	}, nil
}

// Attach starts a fresh instance lifetime with empty alert state.
func (i *Indicator) Attach() error {
	engine, err := NewEngine(i.config, i.provider, i.pipeline, i.logger)
	if err != nil {
		return err
	}

	i.engine = engine
	i.state = NewState()
	i.output = NewOutputSeries()
	i.attached = true

	i.logger.Info("Indicator attached",
		zap.String("symbol", i.provider.Base().Symbol()),
		zap.String("base", string(i.config.BaseResolution)),
		zap.String("aggregation", string(i.config.Aggregation())),
		zap.String("trigger_lag", i.config.TriggerLag.String()),
	)

	return nil
}

// Detach drops the alert state and the output series. A later Attach starts over.
func (i *Indicator) Detach() {
	i.engine = nil
	i.state = State{}
	i.output = nil
	i.attached = false

	i.logger.Info("Indicator detached")
}

func (i *Indicator) Attached() bool {
	return i.attached
}

// State returns a copy of the current alert state.
func (i *Indicator) State() State {
	return i.state.Clone()
}

// Output returns the output series of the current lifetime, or nil while
// detached.
func (i *Indicator) Output() *OutputSeries {
	return i.output
}

// OnBarUpdate evaluates base index index. It is called once per new bar and
// again for every intrabar update of the forming bar.
//
// Indices inside the warm-up period return an Update with Computable false
// and no error. Sink failures are logged and do not fail the call.
func (i *Indicator) OnBarUpdate(ctx context.Context, index int) (Update, error) {
	if !i.attached {
		return Update{}, errors.New(errors.ErrCodeIndicatorDetached, "indicator is not attached")
	}

	update, next, err := i.engine.Evaluate(i.state, index)
	if err != nil {
		if errors.IsInsufficientDataError(err) {
			i.logger.Debug("Index not computable yet", zap.Int("index", index), zap.Error(err))

			//nolint:exhaustruct // nothing else is known yet
			return Update{BaseIndex: index, NewBar: i.state.IsNewBar(index), Computable: false}, nil
		}

		return Update{}, err
	}

	i.state = next
	i.output.Write(max(update.RepaintFrom(), i.engine.Aligner().FirstComputable()), update.BaseIndex, update.Lines)

	for n := range update.Alerts {
		update.Alerts[n].ID = uuid.NewString()
		i.dispatch(ctx, update.Alerts[n])
	}

	return update, nil
}

func (i *Indicator) dispatch(ctx context.Context, event types.AlertEvent) {
	symbol := i.provider.Base().Symbol()

	i.logger.Info("Alert fired",
		zap.String("id", event.ID),
		zap.String("symbol", symbol),
		zap.String("kind", string(event.Kind)),
		zap.String("direction", string(event.Direction)),
		zap.Time("boundary", event.Boundary),
		zap.Int("index", event.BaseIndex),
		zap.Int("mark_index", event.MarkIndex),
	)

	if i.config.Annotation.Enabled && i.sinks.Marker != nil {
		markTime := event.Time
		if bar, err := i.provider.Base().At(event.MarkIndex); err == nil {
			markTime = bar.Time
		}

		if err := i.sinks.Marker.Mark(ctx, NewMark(i.config.Annotation, event, markTime)); err != nil {
			i.logger.Warn("Failed to draw alert annotation", zap.String("id", event.ID), zap.Error(err))
		}
	}

	if i.config.Notification.Enabled && i.sinks.Notifier != nil {
		notification := NewNotification(i.config, symbol, event, i.quote(ctx, symbol))

		if err := i.sinks.Notifier.Send(ctx, notification); err != nil {
			i.logger.Warn("Failed to send alert notification", zap.String("id", event.ID), zap.Error(err))
		}
	}
}

func (i *Indicator) quote(ctx context.Context, symbol string) optional.Option[types.Quote] {
	if i.sinks.Quotes == nil {
		return optional.None[types.Quote]()
	}

	quote, err := i.sinks.Quotes.Quote(ctx, symbol)
	if err != nil {
		i.logger.Warn("Failed to fetch quote", zap.String("symbol", symbol), zap.Error(err))

		return optional.None[types.Quote]()
	}

	return optional.Some(quote)
}
