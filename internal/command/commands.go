package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/osse101/PigFarmBot_Go/internal/domain"
)

// ArgKind is the value type of a command argument.
type ArgKind int

const (
	ArgString ArgKind = iota
	ArgInteger
)

// Arg describes one positional argument.
type Arg struct {
	Name        string
	Description string
	Kind        ArgKind
	Required    bool
}

// Command is one entry of the chat command surface.
type Command struct {
	Name        string
	Description string
	Args        []Arg
	Admin       bool

	run func(ctx context.Context, c Call) (string, error)
}

func (d *Dispatcher) table() []Command {
	return []Command{
		// Players
		{Name: "start", Description: "Join the farm", Args: []Arg{{Name: "referrer", Description: "Id of the friend who invited you"}}, run: d.start},
		{Name: "referral", Description: "Show your referral link", run: d.referral},
		{Name: "tasks", Description: "List the daily tasks", run: d.tasks},
		{Name: "claim", Description: "Claim a task reward", Args: []Arg{{Name: "taskcode", Description: "Task code", Required: true}}, run: d.claim},

		// Farm
		{Name: "buy", Description: "Buy your first pig", run: d.buy},
		{Name: "feed", Description: "Feed your pig", run: d.feed},
		{Name: "myfarm", Description: "Show your farm", run: d.myfarm},
		{Name: "breed", Description: "Breed your pig", run: d.breed},
		{Name: "checkbreed", Description: "Collect piglets when they are due", run: d.checkbreed},
		{Name: "sellpiglet", Description: "Sell a piglet", Args: []Arg{{Name: "number", Description: "Piglet number from /myfarm", Kind: ArgInteger, Required: true}}, run: d.sellpiglet},
		{Name: "market", Description: "Show the piglet market", run: d.market},
		{Name: "buymarket", Description: "Buy a piglet from the market", Args: []Arg{{Name: "number", Description: "Offer number from /market", Kind: ArgInteger, Required: true}}, run: d.buymarket},

		// Mill
		{Name: "startmill", Description: "Open a feed mill", run: d.startmill},
		{Name: "makefeed", Description: "Produce a feed batch", run: d.makefeed},
		{Name: "millstatus", Description: "Show your mill", run: d.millstatus},
		{Name: "upgrademill", Description: "Upgrade your mill", run: d.upgrademill},
		{Name: "rushmill", Description: "Skip the mill cooldown for TON", run: d.rushmill},
		{Name: "sellfeed", Description: "List feed on the market", Args: []Arg{
			{Name: "amount", Description: "Feed units", Kind: ArgInteger, Required: true},
			{Name: "price", Description: "Coins per unit", Kind: ArgInteger, Required: true},
		}, run: d.sellfeed},
		{Name: "feedmarket", Description: "Show the feed market", run: d.feedmarket},
		{Name: "buyfeed", Description: "Buy feed from a mill", Args: []Arg{
			{Name: "millcode", Description: "Seller mill code", Required: true},
			{Name: "amount", Description: "Feed units", Kind: ArgInteger, Required: true},
		}, run: d.buyfeed},
		{Name: "milltofarm", Description: "Move mill feed to your farm", Args: []Arg{{Name: "amount", Description: "Feed units", Kind: ArgInteger, Required: true}}, run: d.milltofarm},
		{Name: "brandstats", Description: "Show your brand", run: d.brandstats},
		{Name: "topbrands", Description: "Show the best brands", run: d.topbrands},
		{Name: "setbrand", Description: "Rename your brand", Args: []Arg{{Name: "name", Description: "New brand name", Required: true}}, run: d.setbrand},

		// Plant
		{Name: "startplant", Description: "Open a pork plant", run: d.startplant},
		{Name: "processpig", Description: "Process a piglet into TON", run: d.processpig},
		{Name: "plantstatus", Description: "Show your plant", run: d.plantstatus},
		{Name: "upgradeplant", Description: "Upgrade your plant", run: d.upgradeplant},

		// Wallet
		{Name: "wallet", Description: "Show your wallet", run: d.wallet},
		{Name: "setwallet", Description: "Save your TON wallet address", Args: []Arg{{Name: "address", Description: "TON address", Required: true}}, run: d.setwallet},
		{Name: "exchangeton", Description: "Exchange coins for TON", Args: []Arg{{Name: "coins", Description: "Coins to exchange", Kind: ArgInteger, Required: true}}, run: d.exchangeton},
		{Name: "claimton", Description: "Request a TON payout", run: d.claimton},

		// Admin
		{Name: "tonlog", Description: "Show the TON ledger", Admin: true, Args: []Arg{
			{Name: "player", Description: "Player id"},
			{Name: "limit", Description: "Number of lines", Kind: ArgInteger},
		}, run: d.tonlog},
		{Name: "payuser", Description: "Debit a player's TON after payout", Admin: true, Args: []Arg{
			{Name: "player", Description: "Player id", Required: true},
			{Name: "amount", Description: "TON amount", Required: true},
		}, run: d.payuser},
		{Name: "cashout", Description: "Debit a player's whole TON balance", Admin: true, Args: []Arg{{Name: "player", Description: "Player id", Required: true}}, run: d.cashout},
	}
}

func (d *Dispatcher) start(ctx context.Context, c Call) (string, error) {
	res, err := d.svc.Players.Register(ctx, c.Sender, c.Username, playerRef(c.Arg(0)))
	if errors.Is(err, domain.ErrAlreadyOwned) {
		return MsgAlreadyJoined, nil
	}
	if err != nil {
		return "", err
	}
	if res.ReferrerID != "" {
		return fmt.Sprintf(MsgWelcomeReferred, res.JoinBonus), nil
	}
	return fmt.Sprintf(MsgWelcome, res.JoinBonus), nil
}

func (d *Dispatcher) referral(ctx context.Context, c Call) (string, error) {
	res, err := d.svc.Players.Referral(ctx, c.Sender)
	if err != nil {
		return "", err
	}
	link := "/start " + c.Sender
	if d.opts.ReferralLink != "" {
		link = fmt.Sprintf(d.opts.ReferralLink, c.Sender)
	}
	return fmt.Sprintf(MsgReferral, res.BonusPerReferral, link, res.Referrals), nil
}

func (d *Dispatcher) tasks(ctx context.Context, c Call) (string, error) {
	res, err := d.svc.Players.Tasks(ctx, c.Sender)
	if err != nil {
		return "", err
	}
	return renderTasks(res), nil
}

func (d *Dispatcher) claim(ctx context.Context, c Call) (string, error) {
	code, err := c.Required(0, UsageClaim)
	if err != nil {
		return "", err
	}
	res, err := d.svc.Players.ClaimTask(ctx, c.Sender, strings.ToLower(code))
	if err != nil {
		return "", err
	}
	return renderTaskClaim(res), nil
}

func (d *Dispatcher) buy(ctx context.Context, c Call) (string, error) {
	res, err := d.svc.Farm.AcquirePig(ctx, c.Sender, c.Username)
	if err != nil {
		return "", err
	}
	if res.JoinBonus > 0 {
		return MsgPigBought + fmt.Sprintf("\n💰 Join bonus: %d coins", res.JoinBonus), nil
	}
	return MsgPigBought, nil
}

func (d *Dispatcher) feed(ctx context.Context, c Call) (string, error) {
	res, err := d.svc.Farm.FeedPig(ctx, c.Sender)
	if err != nil {
		return "", err
	}
	line := fmt.Sprintf(MsgFedStreak, res.CoinsEarned)
	if res.StreakBonus > 0 {
		line = fmt.Sprintf(MsgFedStreakBonus, res.CoinsEarned-res.StreakBonus, res.StreakBonus)
	}
	if res.FeedUsed > 0 {
		line += "\n" + fmt.Sprintf(MsgFedFeedUsed, res.FeedUsed, res.Feed)
	}
	return fmt.Sprintf(MsgFed, line, res.Coins, res.Streak), nil
}

func (d *Dispatcher) myfarm(ctx context.Context, c Call) (string, error) {
	res, err := d.svc.Farm.Status(ctx, c.Sender)
	if err != nil {
		return "", err
	}
	return renderFarm(res), nil
}

func (d *Dispatcher) breed(ctx context.Context, c Call) (string, error) {
	res, err := d.svc.Farm.Breed(ctx, c.Sender)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(MsgPregnant, res.DueDate.DaysSince(res.PregnantDate)), nil
}

func (d *Dispatcher) checkbreed(ctx context.Context, c Call) (string, error) {
	res, err := d.svc.Farm.CheckBreed(ctx, c.Sender)
	if err != nil {
		return "", err
	}
	return renderLitter(res), nil
}

func (d *Dispatcher) sellpiglet(ctx context.Context, c Call) (string, error) {
	n, err := c.Int(0, UsageSellPiglet)
	if err != nil {
		return "", err
	}
	res, err := d.svc.Piglets.Sell(ctx, c.Sender, n)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(MsgPigletSold, res.Type, res.CoinsEarned, res.Remaining), nil
}

func (d *Dispatcher) market(ctx context.Context, c Call) (string, error) {
	res, err := d.svc.Piglets.RefreshMarket(ctx, c.Sender)
	if err != nil {
		return "", err
	}
	return renderOffers(res), nil
}

func (d *Dispatcher) buymarket(ctx context.Context, c Call) (string, error) {
	n, err := c.Int(0, UsageBuyMarket)
	if err != nil {
		return "", err
	}
	res, err := d.svc.Piglets.BuyOffer(ctx, c.Sender, n)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(MsgMarketBought, res.Type, res.Coins), nil
}

func (d *Dispatcher) startmill(ctx context.Context, c Call) (string, error) {
	res, err := d.svc.Mills.Start(ctx, c.Sender, c.Username)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(MsgMillStarted, res.Brand, res.Code), nil
}

func (d *Dispatcher) makefeed(ctx context.Context, c Call) (string, error) {
	res, err := d.svc.Mills.Produce(ctx, c.Sender)
	if err != nil {
		return "", err
	}
	next := res.NextProduction.UTC().Format("2006-01-02 15:04 UTC")
	return fmt.Sprintf(MsgProduced, res.Batch.Amount, res.Batch.Type, res.StockTotal, next), nil
}

func (d *Dispatcher) millstatus(ctx context.Context, c Call) (string, error) {
	res, err := d.svc.Mills.Status(ctx, c.Sender)
	if err != nil {
		return "", err
	}
	return renderMill(res), nil
}

func (d *Dispatcher) upgrademill(ctx context.Context, c Call) (string, error) {
	res, err := d.svc.Mills.Upgrade(ctx, c.Sender)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(MsgMillUpgraded, res.Level, res.Cost, res.Coins), nil
}

func (d *Dispatcher) rushmill(ctx context.Context, c Call) (string, error) {
	res, err := d.svc.Mills.Rush(ctx, c.Sender)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(MsgMillRushed, ton(res.TonBalance)), nil
}

func (d *Dispatcher) sellfeed(ctx context.Context, c Call) (string, error) {
	amount, err := c.Int(0, UsageSellFeed)
	if err != nil {
		return "", err
	}
	price, err := c.Int(1, UsageSellFeed)
	if err != nil {
		return "", err
	}
	res, err := d.svc.Mills.SellFeed(ctx, c.Sender, amount, price)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(MsgFeedListed, res.Amount, res.Type, res.Price, res.MillCode), nil
}

func (d *Dispatcher) feedmarket(ctx context.Context, _ Call) (string, error) {
	res, err := d.svc.Mills.Market(ctx)
	if err != nil {
		return "", err
	}
	return renderFeedMarket(res), nil
}

func (d *Dispatcher) buyfeed(ctx context.Context, c Call) (string, error) {
	code, err := c.Required(0, UsageBuyFeed)
	if err != nil {
		return "", err
	}
	amount, err := c.Int(1, UsageBuyFeed)
	if err != nil {
		return "", err
	}
	res, err := d.svc.Mills.BuyFeed(ctx, c.Sender, code, amount)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(MsgFeedBought, res.Amount, res.Type, res.Brand, res.TotalCost, res.Feed, res.Coins), nil
}

func (d *Dispatcher) milltofarm(ctx context.Context, c Call) (string, error) {
	amount, err := c.Int(0, UsageMillToFarm)
	if err != nil {
		return "", err
	}
	res, err := d.svc.Mills.TransferToFarm(ctx, c.Sender, amount)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(MsgTransferred, res.Amount, res.StockTotal, res.Feed), nil
}

func (d *Dispatcher) brandstats(ctx context.Context, c Call) (string, error) {
	res, err := d.svc.Mills.BrandStats(ctx, c.Sender)
	if err != nil {
		return "", err
	}
	return renderBrand(res), nil
}

func (d *Dispatcher) topbrands(ctx context.Context, _ Call) (string, error) {
	res, err := d.svc.Mills.TopBrands(ctx)
	if err != nil {
		return "", err
	}
	return renderTopBrands(res), nil
}

func (d *Dispatcher) setbrand(ctx context.Context, c Call) (string, error) {
	name := c.Rest(0)
	if name == "" {
		return "", usage(UsageSetBrand)
	}
	res, err := d.svc.Mills.SetBrand(ctx, c.Sender, name)
	if err != nil {
		return "", err
	}
	return renderBrand(res), nil
}

func (d *Dispatcher) startplant(ctx context.Context, c Call) (string, error) {
	res, err := d.svc.Plants.Start(ctx, c.Sender, c.Username)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(MsgPlantStarted, ton(res.Cost)), nil
}

func (d *Dispatcher) processpig(ctx context.Context, c Call) (string, error) {
	res, err := d.svc.Plants.Process(ctx, c.Sender)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(MsgProcessed, res.Piglet.Type, res.Product, ton(res.Reward), ton(res.TonBalance), res.Remaining), nil
}

func (d *Dispatcher) plantstatus(ctx context.Context, c Call) (string, error) {
	res, err := d.svc.Plants.Status(ctx, c.Sender)
	if err != nil {
		return "", err
	}
	return renderPlant(res), nil
}

func (d *Dispatcher) upgradeplant(ctx context.Context, c Call) (string, error) {
	res, err := d.svc.Plants.Upgrade(ctx, c.Sender)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(MsgPlantUpgraded, res.Level, ton(res.Cost), ton(res.TonBalance)), nil
}

func (d *Dispatcher) wallet(ctx context.Context, c Call) (string, error) {
	res, err := d.svc.Wallets.Status(ctx, c.Sender)
	if err != nil {
		return "", err
	}
	return renderWallet(res), nil
}

func (d *Dispatcher) setwallet(ctx context.Context, c Call) (string, error) {
	addr, err := c.Required(0, UsageSetWallet)
	if err != nil {
		return "", err
	}
	res, err := d.svc.Wallets.SetWallet(ctx, c.Sender, addr)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(MsgWalletSet, res.Address), nil
}

func (d *Dispatcher) exchangeton(ctx context.Context, c Call) (string, error) {
	coins, err := c.Int(0, UsageExchange)
	if err != nil {
		return "", err
	}
	res, err := d.svc.Wallets.Exchange(ctx, c.Sender, coins)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(MsgExchanged, res.CoinsSpent, ton(res.Tokens), res.Coins, ton(res.TonBalance)), nil
}

func (d *Dispatcher) claimton(ctx context.Context, c Call) (string, error) {
	res, err := d.svc.Wallets.Claim(ctx, c.Sender)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(MsgClaimSent, ton(res.Amount), res.Wallet), nil
}

func (d *Dispatcher) tonlog(ctx context.Context, c Call) (string, error) {
	limit := DefaultTonLogLimit
	if c.Arg(1) != "" {
		n, err := c.Int(1, UsageTonLog)
		if err != nil {
			return "", err
		}
		limit = n
	}
	res, err := d.svc.Wallets.TonLog(ctx, c.Sender, playerRef(c.Arg(0)), limit)
	if err != nil {
		return "", err
	}
	return renderTonLog(res), nil
}

func (d *Dispatcher) payuser(ctx context.Context, c Call) (string, error) {
	target, err := c.Required(0, UsagePayUser)
	if err != nil {
		return "", err
	}
	amount, err := c.Decimal(1, UsagePayUser)
	if err != nil {
		return "", err
	}
	res, err := d.svc.Wallets.AdminDebit(ctx, c.Sender, playerRef(target), amount)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(MsgDebited, ton(res.Amount), res.PlayerID, ton(res.TonBalance)), nil
}

func (d *Dispatcher) cashout(ctx context.Context, c Call) (string, error) {
	target, err := c.Required(0, UsageCashout)
	if err != nil {
		return "", err
	}
	res, err := d.svc.Wallets.AdminCashout(ctx, c.Sender, playerRef(target))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(MsgCashedOut, ton(res.Amount), res.PlayerID, ton(res.TonBalance)), nil
}
