package notify

import (
	"context"
	stderrors "errors"

	"github.com/rxtech-lab/argo-tdi/internal/types"
	"github.com/rxtech-lab/argo-tdi/pkg/errors"
)

// MultiNotifier fans a notification out to several notifiers. Every notifier
// is tried even when an earlier one fails.
type MultiNotifier struct {
	notifiers []Notifier
}

func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	return &MultiNotifier{notifiers: notifiers}
}

// Len returns the number of wrapped notifiers.
func (m *MultiNotifier) Len() int {
	return len(m.notifiers)
}

// Send implements Notifier.
func (m *MultiNotifier) Send(ctx context.Context, notification types.Notification) error {
	var errs []error

	for _, notifier := range m.notifiers {
		if err := notifier.Send(ctx, notification); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) == 0 {
		return nil
	}

	return errors.Wrapf(errors.ErrCodeNotificationFailed, stderrors.Join(errs...), "%d of %d notifiers failed", len(errs), len(m.notifiers))
}
