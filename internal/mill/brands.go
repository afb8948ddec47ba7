package mill

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/logger"
	"github.com/osse101/PigFarmBot_Go/internal/repository"
)

// rankMills orders mills by royalty points, then sales, both descending.
// Ties fall back to the owner id so the board is stable.
func rankMills(doc *domain.MillDocument) []domain.BrandRank {
	out := make([]domain.BrandRank, 0, len(doc.Mills))
	for id, m := range doc.Mills {
		out = append(out, domain.BrandRank{
			OwnerID:       id,
			Brand:         m.Brand,
			Code:          m.Code,
			Level:         m.Level,
			RoyaltyPoints: m.RoyaltyPoints,
			Sales:         m.Sales,
		})
	}
	slices.SortFunc(out, func(a, b domain.BrandRank) int {
		return cmp.Or(
			cmp.Compare(b.RoyaltyPoints, a.RoyaltyPoints),
			cmp.Compare(b.Sales, a.Sales),
			cmp.Compare(a.OwnerID, b.OwnerID),
		)
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

func brandStats(doc *domain.MillDocument, playerID string) (*domain.BrandStats, error) {
	m, ok := doc.Mills[playerID]
	if !ok {
		return nil, domain.ErrNoMill
	}
	stats := &domain.BrandStats{
		Brand:         m.Brand,
		Code:          m.Code,
		Level:         m.Level,
		RoyaltyPoints: m.RoyaltyPoints,
		Sales:         m.Sales,
	}
	for _, l := range doc.Market {
		if l.Seller == playerID && l.Amount > 0 {
			stats.ActiveListings++
			stats.ListedFeed += l.Amount
		}
	}
	for _, r := range rankMills(doc) {
		if r.OwnerID == playerID {
			stats.Rank = r.Rank
			break
		}
	}
	return stats, nil
}

func (s *service) BrandStats(ctx context.Context, playerID string) (*domain.BrandStats, error) {
	var res *domain.BrandStats
	err := repository.View(ctx, s.store, repository.Mills, func(tx repository.Tx) error {
		var err error
		res, err = brandStats(tx.Mills(), playerID)
		return err
	})
	return res, err
}

// TopBrands returns the leaderboard head.
func (s *service) TopBrands(ctx context.Context) ([]domain.BrandRank, error) {
	var out []domain.BrandRank
	err := repository.View(ctx, s.store, repository.Mills, func(tx repository.Tx) error {
		ranked := rankMills(tx.Mills())
		out = ranked[:min(len(ranked), s.catalog.Mill.TopBrandsLimit)]
		return nil
	})
	return out, err
}

// SetBrand renames the mill. Existing listings keep the brand they were posted under.
func (s *service) SetBrand(ctx context.Context, playerID, name string) (*domain.BrandStats, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSetBrandCalled, "player_id", playerID)

	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxBrandNameRunes {
		return nil, domain.ErrBadName
	}

	var res *domain.BrandStats
	err := repository.WithTx(ctx, s.store, repository.Mills, func(tx repository.Tx) error {
		doc := tx.Mills()
		m, ok := doc.Mills[playerID]
		if !ok {
			return domain.ErrNoMill
		}
		m.Brand = name
		var err error
		res, err = brandStats(doc, playerID)
		return err
	})
	if err != nil {
		log.Info(LogMsgOpRejected, "op", "SetBrand", "error", err)
		return nil, err
	}
	log.Info(LogMsgBrandRenamed, "player_id", playerID, "brand", name)
	return res, nil
}
