package notify

import "time"

// Webhook delivery
const (
	WebhookTimeout    = 10 * time.Second
	WebhookRetryCount = 2

	// AdminChannelRecipient addresses the shared administrator channel
	AdminChannelRecipient = "admins"
)

// Message templates
const (
	MsgReferralRewarded = "🎉 %s joined using your referral link! You earned %d coins 🐷"
	MsgLitterBorn       = "🍼 Your pig gave birth to %d piglet(s)!"
	MsgFeedSold         = "🛒 %d units of your %s feed were sold for %d coins."
	MsgTokensDebited    = "💸 %s TON were paid out from your balance (%s)."
	MsgClaimRequested   = "📤 Claim request from %s (%s): %s TON to %s"
	MsgHungryReminder   = "🐷 Your pig is hungry! Use /feed to keep it happy."
)

// Log messages
const (
	LogMsgDelivered         = "Notification delivered"
	LogMsgDeliverFailed     = "Failed to deliver notification"
	LogMsgSubscribed        = "Notification subscriber registered"
	LogMsgInvalidPayload    = "Invalid payload for notification"
	LogMsgNoAdminsForClaim  = "Claim request has no administrator to notify"
	LogMsgWebhookNotEnabled = "Webhook notifier disabled, no URL configured"
)
