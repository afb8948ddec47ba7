package command

// Log messages
const (
	LogMsgCommandReceived = "Command received"
	LogMsgCommandRejected = "Command rejected"
	LogMsgCommandFailed   = "Command failed"
	LogMsgUnknownCommand  = "Unknown command"
)

// Metric label used for names that are not registered, to keep label
// cardinality bounded.
const unknownCommandLabel = "unknown"

// DefaultTonLogLimit is the number of ledger lines tonlog shows when no
// limit argument is given.
const DefaultTonLogLimit = 20

// Reply text
const (
	MsgUnknownCommand = "🤔 Unknown command /%s. Use /start to join the farm."
	MsgUsage          = "⚠️ Use: %s"
	MsgSomethingWrong = "😵 Something went wrong on the farm. Please try again later."

	MsgWelcome          = "🐷 Welcome to Pig Farm! Feed your pig and grow your farm.\n💰 Join bonus: %d coins"
	MsgWelcomeReferred  = "🎉 You joined with a referral! +%d coins for you 🐽"
	MsgAlreadyJoined    = "👋 You're already part of the farm. Let's grow some pigs!"
	MsgPigBought        = "🎉 You just bought your first pig 🐖!\nTake good care of it and it might give you piglets!"
	MsgFed              = "✅ Your pig enjoyed the meal!\n%s\n💰 Coins: %d\n🔥 Streak: %d"
	MsgFedStreak        = "🍽 Pig fed! +%d coin(s)"
	MsgFedStreakBonus   = "🍽 Pig fed! +%d coin(s) and a %d coin streak bonus 🔥"
	MsgFedFeedUsed      = "🌾 Feed used: %d (left: %d)"
	MsgPregnant         = "💘 Your pig is now pregnant! Come back in %d days to check for piglets."
	MsgLitter           = "🎉 Your pig gave birth to %d piglet(s)!\n%s"
	MsgPigletSold       = "💰 Sold your %s piglet for %d coin(s)!\n🐖 Remaining piglets: %d"
	MsgMarketHeader     = "🛒 Piglet Market — Buy with your coins!\n\n"
	MsgMarketLine       = "%d. %s piglet — %d coins\n"
	MsgMarketFooter     = "\nUse /buymarket <number> to buy."
	MsgMarketBought     = "✅ You bought a %s piglet!\n💰 Coins left: %d"
	MsgReferral         = "📣 Share this link to earn %d coins for every friend who joins!\n🔗 %s\n\n👥 Total referrals: %d"
	MsgTasksHeader      = "📋 Daily Piggy Tasks:\n\n"
	MsgTaskCoinsReward  = "💰 You earned %d coins!"
	MsgTaskFeedReward   = "🌾 You received %d feed!"
	MsgMillStarted      = "🏭 Your feed mill %q is open!\n🔖 Mill code: %s\nShare the code so others can buy your feed."
	MsgProduced         = "🌾 Produced %d %s feed!\n📦 Stock: %d\n⏳ Next batch: %s"
	MsgMillUpgraded     = "⬆️ Mill upgraded to level %d for %d coins!\n💰 Coins left: %d"
	MsgMillRushed       = "⚡ Production rushed! You can make feed right now.\n💎 TON left: %s"
	MsgFeedListed       = "🏷 Listed %d %s feed at %d coins each.\n🔖 Buyers use: /buyfeed %s <amount>"
	MsgFeedMarketEmpty  = "🛒 The feed market is empty. Use /sellfeed to list some!"
	MsgFeedMarketHeader = "🛒 Feed Market\n\n"
	MsgFeedMarketLine   = "🏭 %s (%s) — %d %s feed at %d coins\n"
	MsgFeedBought       = "✅ Bought %d %s feed from %s for %d coins!\n🌾 Feed: %d\n💰 Coins left: %d"
	MsgTransferred      = "🚚 Moved %d feed to your farm.\n📦 Mill stock: %d\n🌾 Farm feed: %d"
	MsgTopBrandsEmpty   = "🏆 No brands yet. Use /startmill to open the first mill!"
	MsgTopBrandsHeader  = "🏆 Top Feed Brands\n\n"
	MsgTopBrandsLine    = "%d. %s (%s) — ⭐ %d royalty, 🧾 %d sales\n"
	MsgPlantStarted     = "🏭 Your pork plant is open! Cost: %s TON\nUse /processpig to turn piglets into TON."
	MsgProcessed        = "🥓 Processed a %s piglet into %s!\n💎 +%s TON (balance %s)\n🐖 Piglets left: %d"
	MsgPlantUpgraded    = "⬆️ Plant upgraded to level %d for %s TON!\n💎 TON left: %s"
	MsgWalletSet        = "✅ Wallet saved: %s"
	MsgExchanged        = "💱 Exchanged %d coins for %s TON!\n💰 Coins: %d\n💎 TON: %s"
	MsgClaimSent        = "📨 Claim for %s TON sent to %s. An admin will process it soon."
	MsgTonLogEmpty      = "📜 No ledger entries."
	MsgTonLogHeader     = "📜 TON ledger\n\n"
	MsgTonLogLine       = "%s %s %s %s TON\n"
	MsgDebited          = "✅ Debited %s TON from %s. Balance: %s"
	MsgCashedOut        = "✅ Cashed out %s TON from %s. Balance: %s"
)

// Usage strings
const (
	UsageStart      = "/start [referrer]"
	UsageSellPiglet = "/sellpiglet <number>\nExample: /sellpiglet 2"
	UsageBuyMarket  = "/buymarket <number>"
	UsageClaim      = "/claim <taskcode>"
	UsageSellFeed   = "/sellfeed <amount> <price>"
	UsageBuyFeed    = "/buyfeed <millcode> <amount>"
	UsageMillToFarm = "/milltofarm <amount>"
	UsageSetBrand   = "/setbrand <name>"
	UsageSetWallet  = "/setwallet <address>"
	UsageExchange   = "/exchangeton <coins>"
	UsageTonLog     = "/tonlog [player] [limit]"
	UsagePayUser    = "/payuser <player> <amount>"
	UsageCashout    = "/cashout <player>"
)
