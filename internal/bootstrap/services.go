package bootstrap

import (
	"github.com/osse101/PigFarmBot_Go/internal/catalog"
	"github.com/osse101/PigFarmBot_Go/internal/clock"
	"github.com/osse101/PigFarmBot_Go/internal/command"
	"github.com/osse101/PigFarmBot_Go/internal/event"
	"github.com/osse101/PigFarmBot_Go/internal/farm"
	"github.com/osse101/PigFarmBot_Go/internal/mill"
	"github.com/osse101/PigFarmBot_Go/internal/piglet"
	"github.com/osse101/PigFarmBot_Go/internal/plant"
	"github.com/osse101/PigFarmBot_Go/internal/player"
	"github.com/osse101/PigFarmBot_Go/internal/repository"
	"github.com/osse101/PigFarmBot_Go/internal/wallet"
)

// InitializeServices builds the engine services on a shared store, catalog
// and event bus, using the wall clock and the default random source.
func InitializeServices(store repository.Store, cat *catalog.Catalog, bus event.Bus, adminIDs []string) command.Services {
	clk := clock.RealClock{}
	return command.Services{
		Players: player.NewService(store, cat, bus),
		Farm:    farm.NewService(store, cat, clk, nil, bus),
		Piglets: piglet.NewService(store, cat, clk, nil, bus),
		Mills:   mill.NewService(store, cat, clk, bus),
		Plants:  plant.NewService(store, cat, clk, bus),
		Wallets: wallet.NewService(store, cat, clk, wallet.NewAdminSet(adminIDs), bus),
	}
}
