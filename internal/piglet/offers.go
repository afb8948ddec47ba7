package piglet

import (
	"slices"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/PigFarmBot_Go/internal/domain"
)

// OfferCacheSchemaVersion is bumped when the cached offer shape changes so
// entries written by an older build are ignored.
const OfferCacheSchemaVersion = "1.0"

type cachedOffers struct {
	Version string
	Offers  []domain.MarketOffer
	DrawnAt time.Time
}

// offerCache keeps the latest market draw per player. Entries expire after
// the configured TTL and are never persisted.
type offerCache struct {
	lru *expirable.LRU[string, *cachedOffers]
}

func newOfferCache(size int, ttl time.Duration) *offerCache {
	return &offerCache{
		lru: expirable.NewLRU[string, *cachedOffers](size, nil, ttl),
	}
}

// Get returns a copy of the player's offers.
func (c *offerCache) Get(playerID string) ([]domain.MarketOffer, bool) {
	entry, found := c.lru.Get(playerID)
	if !found {
		return nil, false
	}
	if entry.Version != OfferCacheSchemaVersion {
		c.lru.Remove(playerID)
		return nil, false
	}
	return slices.Clone(entry.Offers), true
}

// Set replaces the player's offers, superseding any previous draw.
func (c *offerCache) Set(playerID string, offers []domain.MarketOffer) {
	c.lru.Add(playerID, &cachedOffers{
		Version: OfferCacheSchemaVersion,
		Offers:  slices.Clone(offers),
		DrawnAt: time.Now(),
	})
}

// Invalidate drops the player's offers.
func (c *offerCache) Invalidate(playerID string) {
	c.lru.Remove(playerID)
}
