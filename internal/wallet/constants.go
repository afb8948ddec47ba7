package wallet

// RecentLedgerEntries is the number of ledger lines shown in the wallet view.
const RecentLedgerEntries = 5

// Ledger sources
const (
	LedgerSourceExchange   = "exchange"
	LedgerSourceAdminDebit = "admin_debit"
	LedgerSourceCashout    = "cashout"
)

// ClaimSource tags claim requests; claims never write the ledger.
const ClaimSource = "claim"

// Log messages
const (
	LogMsgStatusCalled     = "Wallet called"
	LogMsgSetWalletCalled  = "SetWallet called"
	LogMsgExchangeCalled   = "ExchangeTon called"
	LogMsgClaimCalled      = "ClaimTon called"
	LogMsgTonLogCalled     = "TonLog called"
	LogMsgAdminDebitCalled = "AdminDebit called"
	LogMsgCashoutCalled    = "AdminCashout called"
	LogMsgWalletSet        = "Wallet address set"
	LogMsgExchanged        = "Coins exchanged for tokens"
	LogMsgClaimRequested   = "Token claim forwarded to administrators"
	LogMsgTokensDebited    = "Tokens debited by administrator"
	LogMsgAdminDenied      = "Admin operation denied"
	LogMsgOpRejected       = "Wallet operation rejected"
)
