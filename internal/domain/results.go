package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterResult is returned when a player joins.
type RegisterResult struct {
	PlayerID      string `json:"player_id"`
	Coins         int    `json:"coins"`
	JoinBonus     int    `json:"join_bonus"`
	ReferrerID    string `json:"referrer_id,omitempty"`
	ReferralBonus int    `json:"referral_bonus,omitempty"`
}

// ReferralStatus summarises a player's referrals.
type ReferralStatus struct {
	PlayerID         string `json:"player_id"`
	Referrals        int    `json:"referrals"`
	BonusPerReferral int    `json:"bonus_per_referral"`
	EarnedCoins      int    `json:"earned_coins"`
	ReferredBy       string `json:"referred_by,omitempty"`
}

// TaskStatus is one catalog task as seen by a player.
type TaskStatus struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Kind        string `json:"kind"`
	URL         string `json:"url,omitempty"`
	RewardCoins int    `json:"reward_coins"`
	RewardFeed  int    `json:"reward_feed"`
	Claimed     bool   `json:"claimed"`
}

// TaskClaimResult is returned by a successful claim.
type TaskClaimResult struct {
	Code        string `json:"code"`
	RewardCoins int    `json:"reward_coins"`
	RewardFeed  int    `json:"reward_feed"`
	Coins       int    `json:"coins"`
	Feed        int    `json:"feed"`
}

// PigResult is returned when a pig is acquired.
type PigResult struct {
	BirthDate Date `json:"birth_date"`
	JoinBonus int  `json:"join_bonus"`
	Coins     int  `json:"coins"`
}

// FeedResult is returned by a feeding.
type FeedResult struct {
	FedOn       Date `json:"fed_on"`
	Streak      int  `json:"streak"`
	CoinsEarned int  `json:"coins_earned"`
	StreakBonus int  `json:"streak_bonus"`
	FeedUsed    int  `json:"feed_used"`
	Coins       int  `json:"coins"`
	Feed        int  `json:"feed"`
}

// BreedResult is returned when a pig becomes pregnant.
type BreedResult struct {
	PregnantDate Date `json:"pregnant_date"`
	DueDate      Date `json:"due_date"`
	Cost         int  `json:"cost"`
	Coins        int  `json:"coins"`
}

// LitterResult is returned when a pregnancy completes.
type LitterResult struct {
	Piglets      []Piglet           `json:"piglets"`
	Counts       map[PigletType]int `json:"counts"`
	TotalPiglets int                `json:"total_piglets"`
}

// Mood is the pig's disposition derived from its feeding history.
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodHungry  Mood = "hungry"
	MoodSad     Mood = "sad"
	MoodRanAway Mood = "ran_away"
)

// MoodFor maps the days since the last meal to a mood. A negative value
// means the pig was never fed.
func MoodFor(daysSinceFed int) Mood {
	switch {
	case daysSinceFed < 0:
		return MoodRanAway
	case daysSinceFed == 0:
		return MoodHappy
	case daysSinceFed == 1:
		return MoodHungry
	case daysSinceFed < 4:
		return MoodSad
	default:
		return MoodRanAway
	}
}

// PigletView is a piglet with its 1-based inventory index and current age.
type PigletView struct {
	Index int        `json:"index"`
	Type  PigletType `json:"type"`
	Age   int        `json:"age"`
}

// FarmStatus is the myfarm view.
type FarmStatus struct {
	Username      string          `json:"username"`
	AgeDays       int             `json:"age_days"`
	Streak        int             `json:"streak"`
	Coins         int             `json:"coins"`
	Feed          int             `json:"feed"`
	TonBalance    decimal.Decimal `json:"ton_balance"`
	Mood          Mood            `json:"mood"`
	LastFed       Date            `json:"last_fed,omitempty"`
	FedToday      bool            `json:"fed_today"`
	Piglets       []PigletView    `json:"piglets"`
	Pregnant      bool            `json:"pregnant"`
	PregnantDays  int             `json:"pregnant_days"`
	DaysRemaining int             `json:"days_remaining"`
	ReadyToBirth  bool            `json:"ready_to_birth"`
}

// PigletSale is returned when a piglet is sold.
type PigletSale struct {
	Type        PigletType `json:"type"`
	CoinsEarned int        `json:"coins_earned"`
	Coins       int        `json:"coins"`
	Remaining   int        `json:"remaining"`
}

// MarketOffer is one entry of a piglet market draw.
type MarketOffer struct {
	Index int        `json:"index"`
	Type  PigletType `json:"type"`
	Price int        `json:"price"`
}

// PigletPurchase is returned when a market offer is bought.
type PigletPurchase struct {
	Type  PigletType `json:"type"`
	Price int        `json:"price"`
	Coins int        `json:"coins"`
}

// MillStartResult is returned when a mill is founded.
type MillStartResult struct {
	Code      string `json:"code"`
	Brand     string `json:"brand"`
	JoinBonus int    `json:"join_bonus"`
}

// ProduceResult is returned by a production run.
type ProduceResult struct {
	Batch          FeedBatch `json:"batch"`
	StockTotal     int       `json:"stock_total"`
	NextProduction time.Time `json:"next_production"`
}

// MillStatus is the millstatus view.
type MillStatus struct {
	Level           int           `json:"level"`
	MaxLevel        int           `json:"max_level"`
	FeedType        FeedType      `json:"feed_type"`
	AmountPerBatch  int           `json:"amount_per_batch"`
	Cooldown        time.Duration `json:"cooldown"`
	NextProduction  time.Time     `json:"next_production"`
	Remaining       time.Duration `json:"remaining"`
	Ready           bool          `json:"ready"`
	StockTotal      int           `json:"stock_total"`
	Stock           []FeedBatch   `json:"stock"`
	NextUpgradeCost int           `json:"next_upgrade_cost,omitempty"`
	AtMaxLevel      bool          `json:"at_max_level"`
	Brand           string        `json:"brand"`
	Code            string        `json:"code"`
	RoyaltyPoints   int           `json:"royalty_points"`
	Sales           int           `json:"sales"`
}

// UpgradeResult is returned by a paid coin upgrade.
type UpgradeResult struct {
	Level int `json:"level"`
	Cost  int `json:"cost"`
	Coins int `json:"coins"`
}

// TokenSpendResult is returned by operations paid in tokens.
type TokenSpendResult struct {
	Level      int             `json:"level,omitempty"`
	Cost       decimal.Decimal `json:"cost"`
	TonBalance decimal.Decimal `json:"ton_balance"`
	JoinBonus  int             `json:"join_bonus,omitempty"`
}

// FeedPurchase is returned by a feed market purchase.
type FeedPurchase struct {
	ListingID string   `json:"listing_id"`
	SellerID  string   `json:"seller_id"`
	Brand     string   `json:"brand"`
	Type      FeedType `json:"type"`
	Amount    int      `json:"amount"`
	Price     int      `json:"price"`
	TotalCost int      `json:"total_cost"`
	Coins     int      `json:"coins"`
	Feed      int      `json:"feed"`
	Remaining int      `json:"remaining"`
}

// TransferResult is returned by a mill to farm transfer.
type TransferResult struct {
	Amount     int `json:"amount"`
	StockTotal int `json:"stock_total"`
	Feed       int `json:"feed"`
}

// BrandStats is the brandstats view of one mill.
type BrandStats struct {
	Brand          string `json:"brand"`
	Code           string `json:"code"`
	Level          int    `json:"level"`
	RoyaltyPoints  int    `json:"royalty_points"`
	Sales          int    `json:"sales"`
	ActiveListings int    `json:"active_listings"`
	ListedFeed     int    `json:"listed_feed"`
	Rank           int    `json:"rank"`
}

// BrandRank is one row of the topbrands board.
type BrandRank struct {
	Rank          int    `json:"rank"`
	OwnerID       string `json:"owner_id"`
	Brand         string `json:"brand"`
	Code          string `json:"code"`
	Level         int    `json:"level"`
	RoyaltyPoints int    `json:"royalty_points"`
	Sales         int    `json:"sales"`
}

// ProcessResult is returned when a piglet is processed.
type ProcessResult struct {
	Product    Product         `json:"product"`
	Piglet     Piglet          `json:"piglet"`
	Reward     decimal.Decimal `json:"reward"`
	TonBalance decimal.Decimal `json:"ton_balance"`
	Remaining  int             `json:"remaining"`
}

// ProductStatus is one product line of the plant view.
type ProductStatus struct {
	Product      Product         `json:"product"`
	Unlocked     bool            `json:"unlocked"`
	Reward       decimal.Decimal `json:"reward"`
	ClaimedToday bool            `json:"claimed_today"`
	Processed    int             `json:"processed"`
}

// PlantStatus is the plantstatus view.
type PlantStatus struct {
	Level       int             `json:"level"`
	MaxLevel    int             `json:"max_level"`
	Products    []ProductStatus `json:"products"`
	TonEarned   decimal.Decimal `json:"ton_earned"`
	UpgradeCost decimal.Decimal `json:"upgrade_cost"`
	AtMaxLevel  bool            `json:"at_max_level"`
}

// WalletStatus is the wallet view.
type WalletStatus struct {
	Address      string          `json:"address,omitempty"`
	TonBalance   decimal.Decimal `json:"ton_balance"`
	Coins        int             `json:"coins"`
	ExchangeRate int             `json:"exchange_rate"`
	MinClaim     decimal.Decimal `json:"min_claim"`
	CanClaim     bool            `json:"can_claim"`
	Recent       []LedgerEntry   `json:"recent"`
}

// ExchangeResult is returned by a coin to token exchange.
type ExchangeResult struct {
	CoinsSpent int             `json:"coins_spent"`
	Tokens     decimal.Decimal `json:"tokens"`
	Coins      int             `json:"coins"`
	TonBalance decimal.Decimal `json:"ton_balance"`
}

// ClaimRequest is forwarded to administrators by a token claim.
type ClaimRequest struct {
	PlayerID string          `json:"player_id"`
	Username string          `json:"username"`
	Wallet   string          `json:"wallet"`
	Amount   decimal.Decimal `json:"amount"`
}

// LedgerLine is a ledger entry tagged with its owner.
type LedgerLine struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
	LedgerEntry
}

// DebitResult is returned by administrative debits.
type DebitResult struct {
	PlayerID   string          `json:"player_id"`
	Amount     decimal.Decimal `json:"amount"`
	TonBalance decimal.Decimal `json:"ton_balance"`
}

// RolloverResult summarises the daily job and lists players to remind.
type RolloverResult struct {
	DailyRolloverPayload
	Hungry []string `json:"hungry"`
}
