package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/PigFarmBot_Go/internal/catalog"
	"github.com/osse101/PigFarmBot_Go/internal/config"
)

// LoadCatalog reads the game tables and applies environment overrides.
func LoadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	if cfg.MarketOfferTTL > 0 {
		cat.Piglets.OfferTTL = cfg.MarketOfferTTL
		slog.Info(LogMsgCatalogOfferTTLApplied, "offer_ttl", cfg.MarketOfferTTL)
	}
	return cat, nil
}
