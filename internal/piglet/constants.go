package piglet

// Offer cache sizing
const (
	DefaultOfferCacheSize = 10000
)

// Log messages
const (
	LogMsgSellCalled          = "SellPiglet called"
	LogMsgRefreshMarketCalled = "RefreshMarket called"
	LogMsgBuyOfferCalled      = "BuyMarket called"
	LogMsgPigletSold          = "Piglet sold"
	LogMsgPigletBought        = "Piglet bought"
	LogMsgMarketRefreshed     = "Piglet market refreshed"
	LogMsgOpRejected          = "Piglet operation rejected"
)
