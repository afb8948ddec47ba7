// Package catalog holds the immutable game tables: rewards, breeding odds,
// piglet prices, tasks, mill and plant level tables, and exchange rules.
// A Catalog is loaded once at start-up and never mutated afterwards.
package catalog

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/osse101/PigFarmBot_Go/internal/domain"
)

// Tokens is a token amount written in YAML as a plain number or string.
type Tokens struct {
	decimal.Decimal
}

// TokensOf is a convenience constructor.
func TokensOf(s string) Tokens {
	return Tokens{decimal.RequireFromString(s)}
}

// UnmarshalYAML parses the scalar text exactly, without a float round trip.
func (t *Tokens) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: token amount must be a scalar", value.Line)
	}
	d, err := decimal.NewFromString(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid token amount %q: %w", value.Line, value.Value, err)
	}
	t.Decimal = d
	return nil
}

// MarshalYAML writes the amount as a string scalar.
func (t Tokens) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// Catalog is the full set of game tables.
type Catalog struct {
	Rewards  Rewards     `yaml:"rewards"`
	Breeding Breeding    `yaml:"breeding"`
	Piglets  PigletRules `yaml:"piglets"`
	Tasks    []Task      `yaml:"tasks" validate:"dive"`
	Mill     MillRules   `yaml:"mill"`
	Plant    PlantRules  `yaml:"plant"`
	Exchange Exchange    `yaml:"exchange"`
}

// Rewards are the flat coin grants.
type Rewards struct {
	JoinBonus     int         `yaml:"join_bonus" validate:"gte=0"`
	ReferralBonus int         `yaml:"referral_bonus" validate:"gte=0"`
	FeedReward    int         `yaml:"feed_reward" validate:"gte=0"`
	StreakBonus   StreakBonus `yaml:"streak_bonus"`
	// FeedCost is the feed inventory consumed by one meal; 0 means meals are free.
	FeedCost int `yaml:"feed_cost" validate:"gte=0"`
}

// StreakBonus grants Coins extra on every Every-th consecutive feeding day.
// Every = 0 disables the bonus.
type StreakBonus struct {
	Every int `yaml:"every" validate:"gte=0"`
	Coins int `yaml:"coins" validate:"gte=0"`
}

// For returns the bonus owed for reaching streak.
func (b StreakBonus) For(streak int) int {
	if b.Every <= 0 || streak <= 0 || streak%b.Every != 0 {
		return 0
	}
	return b.Coins
}

// Breeding governs Breed and CheckBreed.
type Breeding struct {
	MinAgeDays      int     `yaml:"min_age_days" validate:"gte=0"`
	Cost            int     `yaml:"cost" validate:"gte=0"`
	FedDaysRequired int     `yaml:"fed_days_required" validate:"gte=0"`
	GestationDays   int     `yaml:"gestation_days" validate:"gte=1"`
	LitterMin       int     `yaml:"litter_min" validate:"gte=1"`
	LitterMax       int     `yaml:"litter_max" validate:"gtefield=LitterMin"`
	GoldenChance    float64 `yaml:"golden_chance" validate:"gte=0,lte=1"`
	SpottedChance   float64 `yaml:"spotted_chance" validate:"gte=0,lte=1"`
}

// RollType maps one uniform draw in [0,1) to a tier, rarest first.
func (b Breeding) RollType(r float64) domain.PigletType {
	switch {
	case r < b.GoldenChance:
		return domain.PigletGolden
	case r < b.GoldenChance+b.SpottedChance:
		return domain.PigletSpotted
	default:
		return domain.PigletNormal
	}
}

// PigletRules are the sale table and the piglet market catalog.
type PigletRules struct {
	SalePrices       map[domain.PigletType]int `yaml:"sale_prices" validate:"required"`
	Market           []MarketEntry             `yaml:"market" validate:"min=1,dive"`
	OffersPerRefresh int                       `yaml:"offers_per_refresh" validate:"gte=1"`
	OfferTTL         time.Duration             `yaml:"offer_ttl" validate:"gt=0"`
}

// MarketEntry is one purchasable piglet kind.
type MarketEntry struct {
	Type  domain.PigletType `yaml:"type" validate:"required"`
	Price int               `yaml:"price" validate:"gte=0"`
}

// Task is a one-time claimable reward.
type Task struct {
	Code        string `yaml:"code" validate:"required,max=32"`
	Title       string `yaml:"title" validate:"required"`
	Kind        string `yaml:"kind" validate:"oneof=channel url manual"`
	URL         string `yaml:"url" validate:"omitempty,url"`
	RewardCoins int    `yaml:"reward_coins" validate:"gte=0"`
	RewardFeed  int    `yaml:"reward_feed" validate:"gte=0"`
}

// MillLevel is one row of the production table.
type MillLevel struct {
	CooldownHours float64         `yaml:"cooldown_hours" validate:"gt=0"`
	Amount        int             `yaml:"amount" validate:"gt=0"`
	FeedType      domain.FeedType `yaml:"feed_type" validate:"required"`
}

// Cooldown is the level's production interval.
func (l MillLevel) Cooldown() time.Duration {
	return time.Duration(l.CooldownHours * float64(time.Hour))
}

// MillRules are the production and upgrade tables.
type MillRules struct {
	Levels []MillLevel `yaml:"levels" validate:"min=1,dive"`
	// UpgradeCosts[i] is the coin price of reaching level i+1.
	UpgradeCosts   []int  `yaml:"upgrade_costs" validate:"dive,gte=0"`
	RushCost       Tokens `yaml:"rush_cost"`
	DefaultBrand   string `yaml:"default_brand" validate:"required,max=32"`
	TopBrandsLimit int    `yaml:"top_brands_limit" validate:"gte=1"`
	// MaxFeedPrice caps the coin price per unit of a feed listing.
	MaxFeedPrice int `yaml:"max_feed_price" validate:"gte=1"`
}

// MaxLevel is the highest reachable level.
func (m MillRules) MaxLevel() int {
	return len(m.Levels) - 1
}

// Level returns the row for level l, clamped to the table.
func (m MillRules) Level(l int) MillLevel {
	return m.Levels[clamp(l, 0, m.MaxLevel())]
}

// UpgradeCost returns the price of reaching target.
func (m MillRules) UpgradeCost(target int) (int, bool) {
	if target < 1 || target > len(m.UpgradeCosts) {
		return 0, false
	}
	return m.UpgradeCosts[target-1], true
}

// ProductRule is the eligibility predicate of one plant product.
type ProductRule struct {
	Product domain.Product `yaml:"product" validate:"required"`
	// Types restricts the piglet tiers accepted; empty accepts all.
	Types      []domain.PigletType `yaml:"types"`
	MinAgeDays int                 `yaml:"min_age_days" validate:"gte=0"`
}

// Accepts reports whether a piglet of type t and age qualifies.
func (r ProductRule) Accepts(t domain.PigletType, age int) bool {
	if age < r.MinAgeDays {
		return false
	}
	if len(r.Types) == 0 {
		return true
	}
	for _, allowed := range r.Types {
		if allowed == t {
			return true
		}
	}
	return false
}

// PlantLevel lists the products unlocked at a level and their token reward.
type PlantLevel struct {
	Rewards map[domain.Product]Tokens `yaml:"rewards" validate:"required"`
}

// PlantRules are the pork plant tables. Products are in priority order.
type PlantRules struct {
	StartCost   Tokens        `yaml:"start_cost"`
	UpgradeCost Tokens        `yaml:"upgrade_cost"`
	Products    []ProductRule `yaml:"products" validate:"min=1,dive"`
	Levels      []PlantLevel  `yaml:"levels" validate:"min=1,dive"`
}

// MaxLevel is the highest reachable level.
func (p PlantRules) MaxLevel() int {
	return len(p.Levels) - 1
}

// Reward returns the token reward of product at level, if unlocked.
func (p PlantRules) Reward(level int, product domain.Product) (decimal.Decimal, bool) {
	r, ok := p.Levels[clamp(level, 0, p.MaxLevel())].Rewards[product]
	return r.Decimal, ok
}

// Exchange governs the coin to token conversion and claims.
type Exchange struct {
	// Rate is the number of coins per token.
	Rate        int    `yaml:"rate" validate:"gte=1"`
	MinClaim    Tokens `yaml:"min_claim"`
	LedgerLimit int    `yaml:"ledger_limit" validate:"gte=1"`
}

// Task looks up a task by code.
func (c *Catalog) Task(code string) (Task, bool) {
	for _, t := range c.Tasks {
		if t.Code == code {
			return t, true
		}
	}
	return Task{}, false
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
