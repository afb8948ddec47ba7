package mill

import "time"

// Mill code settings
const (
	CodeLength        = 8
	CodeCacheSize     = 10000
	CodeCacheTTL      = time.Hour
	maxCodeAttempts   = 16
	MaxBrandNameRunes = 32
)

// LedgerSourceRush is the ledger source of a rush payment.
const LedgerSourceRush = "mill_rush"

// Log messages
const (
	LogMsgStartCalled         = "StartMill called"
	LogMsgProduceCalled       = "Produce called"
	LogMsgStatusCalled        = "MillStatus called"
	LogMsgUpgradeCalled       = "UpgradeMill called"
	LogMsgRushCalled          = "RushMill called"
	LogMsgSellFeedCalled      = "SellFeed called"
	LogMsgBuyFeedCalled       = "BuyFeed called"
	LogMsgTransferCalled      = "TransferMillToFarm called"
	LogMsgSetBrandCalled      = "SetBrand called"
	LogMsgMillStarted         = "Mill started"
	LogMsgFeedProduced        = "Feed produced"
	LogMsgMillUpgraded        = "Mill upgraded"
	LogMsgMillRushed          = "Mill rushed"
	LogMsgFeedListed          = "Feed listed"
	LogMsgFeedBought          = "Feed bought"
	LogMsgFeedTransferred     = "Feed transferred to farm"
	LogMsgBrandRenamed        = "Brand renamed"
	LogMsgOpRejected          = "Mill operation rejected"
	LogMsgStaleCodeCacheEntry = "Stale mill code cache entry"
)

// Event item names
const (
	ItemMill      = "mill"
	ItemFeed      = "feed"
	ItemJoinBonus = "join_bonus"
)
