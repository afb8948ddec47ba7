// Package notify delivers text messages to players and administrators.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/PigFarmBot_Go/internal/logger"
)

// Notifier sends a text message to a recipient. Recipients are player ids.
type Notifier interface {
	Deliver(ctx context.Context, recipient, message string) error
}

// LogNotifier writes messages to the log. It is the fallback when no chat
// platform is connected.
type LogNotifier struct{}

func (LogNotifier) Deliver(ctx context.Context, recipient, message string) error {
	logger.FromContext(ctx).Info(LogMsgDelivered, "recipient", recipient, "channel", "log", "message", message)
	return nil
}

// MultiNotifier fans a message out to every notifier and joins their errors.
type MultiNotifier []Notifier

// NewMultiNotifier drops nil entries.
func NewMultiNotifier(notifiers ...Notifier) MultiNotifier {
	out := make(MultiNotifier, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (m MultiNotifier) Deliver(ctx context.Context, recipient, message string) error {
	var errs []error
	for _, n := range m {
		if err := n.Deliver(ctx, recipient, message); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to deliver to %d of %d channels: %w", len(errs), len(m), errors.Join(errs...))
	}
	return nil
}
