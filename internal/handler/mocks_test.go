package handler_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/PigFarmBot_Go/internal/domain"
)

// MockFarmService is a mock implementation of farm.Service
type MockFarmService struct {
	mock.Mock
}

func (m *MockFarmService) AcquirePig(ctx context.Context, playerID, username string) (*domain.PigResult, error) {
	args := m.Called(ctx, playerID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PigResult), args.Error(1)
}

func (m *MockFarmService) FeedPig(ctx context.Context, playerID string) (*domain.FeedResult, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeedResult), args.Error(1)
}

func (m *MockFarmService) Breed(ctx context.Context, playerID string) (*domain.BreedResult, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BreedResult), args.Error(1)
}

func (m *MockFarmService) CheckBreed(ctx context.Context, playerID string) (*domain.LitterResult, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LitterResult), args.Error(1)
}

func (m *MockFarmService) Status(ctx context.Context, playerID string) (*domain.FarmStatus, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FarmStatus), args.Error(1)
}

func (m *MockFarmService) Rollover(ctx context.Context) (*domain.RolloverResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RolloverResult), args.Error(1)
}

// MockPigletService is a mock implementation of piglet.Service
type MockPigletService struct {
	mock.Mock
}

func (m *MockPigletService) Sell(ctx context.Context, playerID string, index int) (*domain.PigletSale, error) {
	args := m.Called(ctx, playerID, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PigletSale), args.Error(1)
}

func (m *MockPigletService) RefreshMarket(ctx context.Context, playerID string) ([]domain.MarketOffer, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MarketOffer), args.Error(1)
}

func (m *MockPigletService) Offers(ctx context.Context, playerID string) ([]domain.MarketOffer, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MarketOffer), args.Error(1)
}

func (m *MockPigletService) BuyOffer(ctx context.Context, playerID string, index int) (*domain.PigletPurchase, error) {
	args := m.Called(ctx, playerID, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PigletPurchase), args.Error(1)
}

// MockWalletService is a mock implementation of wallet.Service
type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) Status(ctx context.Context, playerID string) (*domain.WalletStatus, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletStatus), args.Error(1)
}

func (m *MockWalletService) SetWallet(ctx context.Context, playerID, address string) (*domain.WalletStatus, error) {
	args := m.Called(ctx, playerID, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletStatus), args.Error(1)
}

func (m *MockWalletService) Exchange(ctx context.Context, playerID string, coins int) (*domain.ExchangeResult, error) {
	args := m.Called(ctx, playerID, coins)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeResult), args.Error(1)
}

func (m *MockWalletService) Claim(ctx context.Context, playerID string) (*domain.ClaimRequest, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClaimRequest), args.Error(1)
}

func (m *MockWalletService) TonLog(ctx context.Context, adminID, targetID string, limit int) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, adminID, targetID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

func (m *MockWalletService) AdminDebit(ctx context.Context, adminID, targetID string, amount decimal.Decimal) (*domain.DebitResult, error) {
	args := m.Called(ctx, adminID, targetID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebitResult), args.Error(1)
}

func (m *MockWalletService) AdminCashout(ctx context.Context, adminID, targetID string) (*domain.DebitResult, error) {
	args := m.Called(ctx, adminID, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebitResult), args.Error(1)
}

// MockDispatcher is a mock implementation of handler.CommandDispatcher
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, sender, username, name string, args []string) (string, error) {
	a := m.Called(ctx, sender, username, name, args)
	return a.String(0), a.Error(1)
}
