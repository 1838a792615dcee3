// Package notify delivers alert notifications to people.
package notify

import (
	"context"

	"github.com/rxtech-lab/argo-tdi/internal/types"
)

// Notifier delivers one notification.
type Notifier interface {
	Send(ctx context.Context, notification types.Notification) error
}
