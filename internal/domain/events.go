package domain

import "github.com/shopspring/decimal"

// Event type constants used for event bus subscriptions, notifications and
// metrics. Event types follow the pattern: <entity>.<action>
const (
	// EventTypePlayerJoined is published the first time a player record is created
	EventTypePlayerJoined = "player.joined"

	// EventTypeReferralRewarded is published when a referrer is credited for a new player
	EventTypeReferralRewarded = "referral.rewarded"

	EventTypePigAcquired = "pig.acquired"
	EventTypePigFed      = "pig.fed"
	EventTypePigBred     = "pig.bred"

	// EventTypeLitterBorn is published when a pregnancy completes
	EventTypeLitterBorn = "litter.born"

	EventTypePigletSold   = "piglet.sold"
	EventTypePigletBought = "piglet.bought"
	EventTypeTaskClaimed  = "task.claimed"

	EventTypeMillStarted   = "mill.started"
	EventTypeMillProduced  = "mill.produced"
	EventTypeMillUpgraded  = "mill.upgraded"
	EventTypeMillRushed    = "mill.rushed"
	EventTypeFeedListed    = "feed.listed"
	EventTypeFeedBought    = "feed.bought"
	EventTypeFeedTransfer  = "feed.transferred"
	EventTypePlantStarted  = "plant.started"
	EventTypePlantProcess  = "plant.processed"
	EventTypePlantUpgraded = "plant.upgraded"

	EventTypeTokensExchanged = "tokens.exchanged"

	// EventTypeClaimRequested is forwarded to administrators; it never moves a balance
	EventTypeClaimRequested = "tokens.claim_requested"

	// EventTypeTokensDebited is published for administrative debits and cashouts
	EventTypeTokensDebited = "tokens.debited"

	// EventTypeDailyRolloverComplete is published when the daily job finishes
	EventTypeDailyRolloverComplete = "daily_rollover.complete"
)

// ReferralRewardedPayload is sent to the referrer.
type ReferralRewardedPayload struct {
	ReferrerID  string `json:"referrer_id"`
	NewPlayerID string `json:"new_player_id"`
	Username    string `json:"username"`
	Bonus       int    `json:"bonus"`
}

// LitterBornPayload describes a completed pregnancy.
type LitterBornPayload struct {
	PlayerID string       `json:"player_id"`
	Piglets  []PigletType `json:"piglets"`
}

// CoinsMovedPayload covers simple coin-denominated business events.
type CoinsMovedPayload struct {
	PlayerID string `json:"player_id"`
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
	Coins    int    `json:"coins"`
}

// FeedBoughtPayload describes a feed market purchase.
type FeedBoughtPayload struct {
	BuyerID  string `json:"buyer_id"`
	SellerID string `json:"seller_id"`
	Amount   int    `json:"amount"`
	Coins    int    `json:"coins"`
	Brand    string `json:"brand"`
}

// TokensPayload describes a token movement or claim.
type TokensPayload struct {
	PlayerID string          `json:"player_id"`
	Username string          `json:"username"`
	Wallet   string          `json:"wallet,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	Source   string          `json:"source"`
}

// DailyRolloverPayload summarises the daily job.
type DailyRolloverPayload struct {
	Date           Date `json:"date"`
	PigletsAged    int  `json:"piglets_aged"`
	RemindersSent  int  `json:"reminders_sent"`
	PlayersScanned int  `json:"players_scanned"`
}
