package metrics

import (
	"context"

	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/event"
	"github.com/osse101/PigFarmBot_Go/internal/logger"
)

// coinEvents carry a domain.CoinsMovedPayload with a signed coin delta.
var coinEvents = []string{
	domain.EventTypePlayerJoined,
	domain.EventTypePigAcquired,
	domain.EventTypePigFed,
	domain.EventTypePigBred,
	domain.EventTypePigletSold,
	domain.EventTypePigletBought,
	domain.EventTypeTaskClaimed,
	domain.EventTypeMillStarted,
	domain.EventTypeMillProduced,
	domain.EventTypeMillUpgraded,
	domain.EventTypeFeedListed,
	domain.EventTypeFeedTransfer,
}

// tokenEvents carry a domain.TokensPayload.
var tokenEvents = []string{
	domain.EventTypeMillRushed,
	domain.EventTypePlantStarted,
	domain.EventTypePlantProcess,
	domain.EventTypePlantUpgraded,
	domain.EventTypeTokensExchanged,
	domain.EventTypeClaimRequested,
	domain.EventTypeTokensDebited,
}

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	types := append(append([]string{}, coinEvents...), tokenEvents...)
	types = append(types,
		domain.EventTypeReferralRewarded,
		domain.EventTypeLitterBorn,
		domain.EventTypeFeedBought,
		domain.EventTypeDailyRolloverComplete,
	)
	for _, t := range types {
		bus.Subscribe(event.Type(t), e.HandleEvent)
	}
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case domain.EventTypeLitterBorn:
		var p domain.LitterBornPayload
		if p, err = event.DecodePayload[domain.LitterBornPayload](evt.Payload); err == nil {
			for _, t := range p.Piglets {
				PigletsBorn.WithLabelValues(string(t)).Inc()
			}
		}

	case domain.EventTypeReferralRewarded:
		var p domain.ReferralRewardedPayload
		if p, err = event.DecodePayload[domain.ReferralRewardedPayload](evt.Payload); err == nil {
			CoinsEarned.WithLabelValues(string(evt.Type)).Add(float64(p.Bonus))
		}

	case domain.EventTypeFeedBought:
		var p domain.FeedBoughtPayload
		if p, err = event.DecodePayload[domain.FeedBoughtPayload](evt.Payload); err == nil {
			FeedTraded.Add(float64(p.Amount))
			CoinsSpent.WithLabelValues(string(evt.Type)).Add(float64(p.Coins))
			CoinsEarned.WithLabelValues(string(evt.Type)).Add(float64(p.Coins))
		}

	case domain.EventTypeDailyRolloverComplete:
		var p domain.DailyRolloverPayload
		if p, err = event.DecodePayload[domain.DailyRolloverPayload](evt.Payload); err == nil {
			DailyRollovers.Inc()
			HungerReminders.Add(float64(p.RemindersSent))
		}

	default:
		err = e.recordMovement(evt)
	}

	if err != nil {
		log.Debug(LogMsgEventPayloadInvalid, "type", evt.Type, "error", err)
		return nil
	}
	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

func (e *EventMetricsCollector) recordMovement(evt event.Event) error {
	t := string(evt.Type)
	for _, ct := range tokenEvents {
		if ct != t {
			continue
		}
		p, err := event.DecodePayload[domain.TokensPayload](evt.Payload)
		if err != nil {
			return err
		}
		TokensMoved.WithLabelValues(t).Add(p.Amount.Abs().InexactFloat64())
		return nil
	}

	p, err := event.DecodePayload[domain.CoinsMovedPayload](evt.Payload)
	if err != nil {
		return err
	}
	switch {
	case p.Coins > 0:
		CoinsEarned.WithLabelValues(t).Add(float64(p.Coins))
	case p.Coins < 0:
		CoinsSpent.WithLabelValues(t).Add(float64(-p.Coins))
	}

	switch t {
	case domain.EventTypePigletSold:
		PigletsTraded.WithLabelValues(p.Item, DirectionSold).Inc()
	case domain.EventTypePigletBought:
		PigletsTraded.WithLabelValues(p.Item, DirectionBought).Inc()
	case domain.EventTypeMillProduced:
		FeedProduced.WithLabelValues(p.Item).Add(float64(p.Quantity))
	}
	return nil
}
