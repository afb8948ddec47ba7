package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/logger"
)

// Type represents the type of an event
type Type string

// Metadata carries envelope attributes such as the request id.
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// New builds an event stamped with the schema version, the occurrence time
// and the request id found in ctx.
func New(ctx context.Context, eventType string, payload interface{}) Event {
	md := Metadata{MetadataOccurredAt: time.Now().UTC().Format(time.RFC3339)}
	if id, ok := logger.RequestIDFromContext(ctx); ok {
		md[MetadataRequestID] = id
	}
	return Event{
		Version:  EventSchemaVersion,
		Type:     Type(eventType),
		Payload:  payload,
		Metadata: md,
	}
}

// NewReferralRewardedEvent is sent to the referrer of a new player.
func NewReferralRewardedEvent(ctx context.Context, referrerID, newPlayerID, username string, bonus int) Event {
	return New(ctx, domain.EventTypeReferralRewarded, domain.ReferralRewardedPayload{
		ReferrerID:  referrerID,
		NewPlayerID: newPlayerID,
		Username:    username,
		Bonus:       bonus,
	})
}

// NewLitterBornEvent reports a completed pregnancy.
func NewLitterBornEvent(ctx context.Context, playerID string, piglets []domain.PigletType) Event {
	return New(ctx, domain.EventTypeLitterBorn, domain.LitterBornPayload{PlayerID: playerID, Piglets: piglets})
}

// NewCoinsEvent covers the simple coin-denominated business events.
func NewCoinsEvent(ctx context.Context, eventType, playerID, item string, quantity, coins int) Event {
	return New(ctx, eventType, domain.CoinsMovedPayload{
		PlayerID: playerID,
		Item:     item,
		Quantity: quantity,
		Coins:    coins,
	})
}

// NewFeedBoughtEvent reports a feed market purchase to both parties.
func NewFeedBoughtEvent(ctx context.Context, payload domain.FeedBoughtPayload) Event {
	return New(ctx, domain.EventTypeFeedBought, payload)
}

// NewTokensEvent covers exchanges, claims and administrative debits.
func NewTokensEvent(ctx context.Context, eventType string, payload domain.TokensPayload) Event {
	return New(ctx, eventType, payload)
}

// NewDailyRolloverEvent summarises one run of the daily job.
func NewDailyRolloverEvent(ctx context.Context, payload domain.DailyRolloverPayload) Event {
	return New(ctx, domain.EventTypeDailyRolloverComplete, payload)
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit publishes on bus and logs a failure instead of returning it. Engine
// operations have already committed when they emit, so a failed side effect
// must not turn a successful operation into an error. A nil bus is a no-op.
func Emit(ctx context.Context, bus Bus, evt Event) {
	if bus == nil {
		return
	}
	if err := bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Error(LogMsgEmitFailed, "type", evt.Type, "error", err)
	}
}
