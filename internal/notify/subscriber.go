package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/event"
	"github.com/osse101/PigFarmBot_Go/internal/logger"
)

// Subscriber turns engine events into messages for the people involved.
type Subscriber struct {
	notifier     Notifier
	admins       []string
	adminChannel Notifier
}

// NewSubscriber creates a subscriber. Claim requests go to every admin id.
func NewSubscriber(notifier Notifier, admins []string) *Subscriber {
	return &Subscriber{notifier: notifier, admins: admins}
}

// WithAdminChannel also sends claim requests once to n, addressed to
// AdminChannelRecipient.
func (s *Subscriber) WithAdminChannel(n Notifier) *Subscriber {
	s.adminChannel = n
	return s
}

// Subscribe registers the handlers on bus.
func (s *Subscriber) Subscribe(bus event.Bus) {
	bus.Subscribe(domain.EventTypeReferralRewarded, s.handleReferralRewarded)
	bus.Subscribe(domain.EventTypeLitterBorn, s.handleLitterBorn)
	bus.Subscribe(domain.EventTypeFeedBought, s.handleFeedBought)
	bus.Subscribe(domain.EventTypeClaimRequested, s.handleClaimRequested)
	bus.Subscribe(domain.EventTypeTokensDebited, s.handleTokensDebited)
	logger.Info(LogMsgSubscribed, "admins", len(s.admins))
}

// deliver logs failures; a lost message never fails the publishing operation.
func (s *Subscriber) deliver(ctx context.Context, recipient, message string) {
	if err := s.notifier.Deliver(ctx, recipient, message); err != nil {
		logger.FromContext(ctx).Error(LogMsgDeliverFailed, "recipient", recipient, "error", err)
	}
}

func (s *Subscriber) handleReferralRewarded(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.ReferralRewardedPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}
	s.deliver(ctx, p.ReferrerID, fmt.Sprintf(MsgReferralRewarded, displayName(p.Username), p.Bonus))
	return nil
}

func (s *Subscriber) handleLitterBorn(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.LitterBornPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}
	s.deliver(ctx, p.PlayerID, fmt.Sprintf(MsgLitterBorn, len(p.Piglets)))
	return nil
}

func (s *Subscriber) handleFeedBought(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.FeedBoughtPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}
	s.deliver(ctx, p.SellerID, fmt.Sprintf(MsgFeedSold, p.Amount, p.Brand, p.Coins))
	return nil
}

func (s *Subscriber) handleClaimRequested(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)
	p, err := event.DecodePayload[domain.TokensPayload](evt.Payload)
	if err != nil {
		log.Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}
	if len(s.admins) == 0 && s.adminChannel == nil {
		log.Warn(LogMsgNoAdminsForClaim, "player_id", p.PlayerID)
		return nil
	}
	msg := fmt.Sprintf(MsgClaimRequested, displayName(p.Username), p.PlayerID, p.Amount.StringFixed(2), p.Wallet)
	for _, admin := range s.admins {
		s.deliver(ctx, admin, msg)
	}
	if s.adminChannel != nil {
		if err := s.adminChannel.Deliver(ctx, AdminChannelRecipient, msg); err != nil {
			log.Error(LogMsgDeliverFailed, "recipient", AdminChannelRecipient, "error", err)
		}
	}
	return nil
}

func (s *Subscriber) handleTokensDebited(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.TokensPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}
	s.deliver(ctx, p.PlayerID, fmt.Sprintf(MsgTokensDebited, p.Amount.Abs().StringFixed(2), p.Source))
	return nil
}

func displayName(username string) string {
	if strings.TrimSpace(username) == "" {
		return "Someone"
	}
	return "@" + username
}
