package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/PigFarmBot_Go/internal/event"
	"github.com/osse101/PigFarmBot_Go/internal/metrics"
	"github.com/osse101/PigFarmBot_Go/internal/notify"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus     event.Bus
	Notifier     notify.Notifier
	AdminChannel notify.Notifier
	AdminIDs     []string
}

// RegisterEventHandlers subscribes the metrics collector and the player
// and administrator notifications.
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.Notifier != nil {
		notify.NewSubscriber(deps.Notifier, deps.AdminIDs).
			WithAdminChannel(deps.AdminChannel).
			Subscribe(deps.EventBus)
		slog.Info(LogMsgNotifySubscriberRegistered, "admins", len(deps.AdminIDs))
	}

	return nil
}
