package catalog

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/logger"
)

// Default returns the built-in tables. Values from a catalog file override them.
func Default() *Catalog {
	return &Catalog{
		Rewards: Rewards{
			JoinBonus:     2,
			ReferralBonus: 5,
			FeedReward:    1,
			StreakBonus:   StreakBonus{Every: 3, Coins: 1},
		},
		Breeding: Breeding{
			MinAgeDays:      1,
			Cost:            1,
			FedDaysRequired: 3,
			GestationDays:   3,
			LitterMin:       1,
			LitterMax:       3,
			GoldenChance:    0.05,
			SpottedChance:   0.15,
		},
		Piglets: PigletRules{
			SalePrices: map[domain.PigletType]int{
				domain.PigletGolden:  5,
				domain.PigletSpotted: 3,
				domain.PigletNormal:  1,
			},
			Market: []MarketEntry{
				{Type: domain.PigletNormal, Price: 2},
				{Type: domain.PigletSpotted, Price: 4},
				{Type: domain.PigletGolden, Price: 7},
			},
			OffersPerRefresh: 3,
			OfferTTL:         30 * time.Minute,
		},
		Tasks: []Task{
			{Code: "join1", Title: "Join the community channel", Kind: "channel", RewardCoins: 3},
			{Code: "view1", Title: "Visit the sponsor page", Kind: "url", URL: "https://example.com", RewardCoins: 2},
			{Code: "share1", Title: "Share the game with a friend", Kind: "manual", RewardFeed: 5},
		},
		Mill: MillRules{
			Levels: []MillLevel{
				{CooldownHours: 24, Amount: 10, FeedType: domain.FeedBasic},
				{CooldownHours: 20, Amount: 12, FeedType: domain.FeedBasic},
				{CooldownHours: 16, Amount: 15, FeedType: domain.FeedBasic},
				{CooldownHours: 12, Amount: 20, FeedType: domain.FeedEnriched},
				{CooldownHours: 10, Amount: 25, FeedType: domain.FeedEnriched},
				{CooldownHours: 8, Amount: 30, FeedType: domain.FeedEnriched},
				{CooldownHours: 6, Amount: 40, FeedType: domain.FeedPremium},
			},
			UpgradeCosts:   []int{20, 40, 80, 150, 250, 400},
			RushCost:       TokensOf("1"),
			DefaultBrand:   "Farm Feed",
			TopBrandsLimit: 10,
			MaxFeedPrice:   1_000_000,
		},
		Plant: PlantRules{
			StartCost:   TokensOf("1"),
			UpgradeCost: TokensOf("1"),
			Products: []ProductRule{
				{Product: domain.ProductBacon, Types: []domain.PigletType{domain.PigletGolden}, MinAgeDays: 7},
				{Product: domain.ProductSausage, Types: []domain.PigletType{domain.PigletGolden, domain.PigletSpotted}},
				{Product: domain.ProductMeat, MinAgeDays: 3},
			},
			Levels: []PlantLevel{
				{Rewards: rewards("0.01", "", "")},
				{Rewards: rewards("0.02", "", "")},
				{Rewards: rewards("0.02", "0.05", "")},
				{Rewards: rewards("0.03", "0.07", "")},
				{Rewards: rewards("0.03", "0.08", "0.15")},
				{Rewards: rewards("0.04", "0.10", "0.20")},
				{Rewards: rewards("0.05", "0.12", "0.30")},
			},
		},
		Exchange: Exchange{
			Rate:        100,
			MinClaim:    TokensOf("1"),
			LedgerLimit: 50,
		},
	}
}

func rewards(meat, sausage, bacon string) map[domain.Product]Tokens {
	out := map[domain.Product]Tokens{}
	for product, v := range map[domain.Product]string{
		domain.ProductMeat:    meat,
		domain.ProductSausage: sausage,
		domain.ProductBacon:   bacon,
	} {
		if v != "" {
			out[product] = TokensOf(v)
		}
	}
	return out
}

// Load reads the catalog at path over the defaults. A missing file yields the defaults.
func Load(path string) (*Catalog, error) {
	cat := Default()
	if path == "" {
		return cat, cat.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("Catalog file not found, using defaults", "path", path)
			return cat, cat.Validate()
		}
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cat); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}

	logger.Info("Catalog loaded",
		"path", path,
		"tasks", len(cat.Tasks),
		"mill_levels", len(cat.Mill.Levels),
		"plant_levels", len(cat.Plant.Levels))
	return cat, nil
}

// Validate checks field constraints and the cross-table invariants.
func (c *Catalog) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("catalog validation failed: %w", err)
	}

	if c.Breeding.GoldenChance+c.Breeding.SpottedChance > 1 {
		return errors.New("breeding odds exceed 1")
	}
	for _, t := range domain.PigletTypes {
		if _, ok := c.Piglets.SalePrices[t]; !ok {
			return fmt.Errorf("missing sale price for %s piglets", t)
		}
	}

	levels := c.Mill.Levels
	if len(c.Mill.UpgradeCosts) != len(levels)-1 {
		return fmt.Errorf("mill has %d levels but %d upgrade costs", len(levels), len(c.Mill.UpgradeCosts))
	}
	for i := 1; i < len(levels); i++ {
		if levels[i].CooldownHours > levels[i-1].CooldownHours || levels[i].Amount < levels[i-1].Amount {
			return fmt.Errorf("mill level %d is weaker than level %d", i, i-1)
		}
	}
	if c.Mill.RushCost.IsNegative() {
		return errors.New("rush cost must not be negative")
	}

	if c.Plant.StartCost.IsNegative() || c.Plant.UpgradeCost.IsNegative() {
		return errors.New("plant costs must not be negative")
	}
	for i, lvl := range c.Plant.Levels {
		for product, reward := range lvl.Rewards {
			if reward.IsNegative() {
				return fmt.Errorf("plant level %d: negative reward for %s", i, product)
			}
		}
	}

	seen := map[string]bool{}
	for _, t := range c.Tasks {
		if seen[t.Code] {
			return fmt.Errorf("duplicate task code %q", t.Code)
		}
		seen[t.Code] = true
	}
	return nil
}
