package notify

import (
	"context"

	"github.com/rxtech-lab/argo-tdi/internal/logger"
	"github.com/rxtech-lab/argo-tdi/internal/types"
	"go.uber.org/zap"
)

// LogNotifier writes notifications to the log. Used when no transport is configured.
type LogNotifier struct {
	logger *logger.Logger
}

func NewLogNotifier(logger *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Send implements Notifier.
func (l *LogNotifier) Send(_ context.Context, notification types.Notification) error {
	l.logger.Info("Alert notification",
		zap.String("subject", notification.Subject),
		zap.String("kind", string(notification.Kind)),
		zap.String("direction", string(notification.Direction)),
		zap.Time("time", notification.Time),
		zap.Strings("recipients", notification.Recipients),
		zap.String("body", notification.Body),
	)

	return nil
}
