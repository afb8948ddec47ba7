package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/PigFarmBot_Go/internal/domain"
)

// title capitalises a catalog word for display. Casers hold state, so
// each call builds its own.
func title(s string) string {
	return cases.Title(language.English).String(s)
}

// ton renders a token amount the way players see it: two decimals. The
// stored value keeps full precision.
func ton(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatRemaining(d time.Duration) string {
	if d <= 0 {
		return "now"
	}
	d = d.Round(time.Minute)
	if d < time.Minute {
		return "less than a minute"
	}
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

var moodText = map[domain.Mood]string{
	domain.MoodHappy:   "😊 Happy",
	domain.MoodHungry:  "😐 Hungry",
	domain.MoodSad:     "😟 Sad",
	domain.MoodRanAway: "🏃 Ran Away",
}

func renderFarm(s *domain.FarmStatus) string {
	var b strings.Builder
	owner := s.Username
	if owner == "" {
		owner = "Farmer"
	}
	b.WriteString("🏡 Welcome to your farm!\n")
	fmt.Fprintf(&b, "👤 Owner: %s\n", owner)
	fmt.Fprintf(&b, "🐖 Pig Age: %d days\n", s.AgeDays)
	fmt.Fprintf(&b, "🔥 Streak: %d days\n", s.Streak)
	fmt.Fprintf(&b, "💰 Coins: %d\n", s.Coins)
	fmt.Fprintf(&b, "🌾 Feed: %d\n", s.Feed)
	fmt.Fprintf(&b, "💎 TON: %s\n", ton(s.TonBalance))
	fmt.Fprintf(&b, "❤️ Mood: %s\n", moodText[s.Mood])
	fmt.Fprintf(&b, "🐽 Piglets: %d\n", len(s.Piglets))
	for _, p := range s.Piglets {
		fmt.Fprintf(&b, "   %d. %s (%d days)\n", p.Index, title(string(p.Type)), p.Age)
	}
	switch {
	case s.ReadyToBirth:
		b.WriteString("🍼 Ready to give birth! Use /checkbreed to collect piglets.")
	case s.Pregnant:
		fmt.Fprintf(&b, "🤰 Pregnant (%d days in). %d day(s) until birth.", s.PregnantDays, s.DaysRemaining)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderLitter(r *domain.LitterResult) string {
	var parts []string
	for _, t := range domain.PigletTypes {
		if n := r.Counts[t]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", title(string(t)), n))
		}
	}
	return fmt.Sprintf(MsgLitter, r.TotalPiglets, strings.Join(parts, "\n"))
}

func renderOffers(offers []domain.MarketOffer) string {
	var b strings.Builder
	b.WriteString(MsgMarketHeader)
	for _, o := range offers {
		fmt.Fprintf(&b, MsgMarketLine, o.Index, title(string(o.Type)), o.Price)
	}
	b.WriteString(MsgMarketFooter)
	return b.String()
}

func renderTasks(tasks []domain.TaskStatus) string {
	var b strings.Builder
	b.WriteString(MsgTasksHeader)
	for _, t := range tasks {
		mark := "🔹"
		if t.Claimed {
			mark = "✅"
		}
		fmt.Fprintf(&b, "%s %s\n", mark, t.Title)
		if t.URL != "" {
			fmt.Fprintf(&b, "🔗 %s\n", t.URL)
		}
		var rewards []string
		if t.RewardCoins > 0 {
			rewards = append(rewards, fmt.Sprintf("%d coins", t.RewardCoins))
		}
		if t.RewardFeed > 0 {
			rewards = append(rewards, fmt.Sprintf("%d feed", t.RewardFeed))
		}
		fmt.Fprintf(&b, "🏆 Reward: %s\n", strings.Join(rewards, " + "))
		if !t.Claimed {
			fmt.Fprintf(&b, "➡️ Type /claim %s to receive reward\n", t.Code)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderTaskClaim(r *domain.TaskClaimResult) string {
	var lines []string
	if r.RewardCoins > 0 {
		lines = append(lines, fmt.Sprintf(MsgTaskCoinsReward, r.RewardCoins))
	}
	if r.RewardFeed > 0 {
		lines = append(lines, fmt.Sprintf(MsgTaskFeedReward, r.RewardFeed))
	}
	return strings.Join(lines, "\n")
}

func renderMill(s *domain.MillStatus) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏭 %s (code %s)\n", s.Brand, s.Code)
	fmt.Fprintf(&b, "⬆️ Level: %d/%d\n", s.Level, s.MaxLevel)
	fmt.Fprintf(&b, "🌾 Output: %d %s feed every %s\n", s.AmountPerBatch, s.FeedType, formatRemaining(s.Cooldown))
	if s.Ready {
		b.WriteString("✅ Ready to produce! Use /makefeed\n")
	} else {
		fmt.Fprintf(&b, "⏳ Next batch in %s\n", formatRemaining(s.Remaining))
	}
	fmt.Fprintf(&b, "📦 Stock: %d\n", s.StockTotal)
	for _, batch := range s.Stock {
		fmt.Fprintf(&b, "   • %d %s (%s)\n", batch.Amount, batch.Type, batch.Timestamp.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(&b, "⭐ Royalty: %d  🧾 Sales: %d\n", s.RoyaltyPoints, s.Sales)
	if s.AtMaxLevel {
		b.WriteString("🏆 Max level reached")
	} else {
		fmt.Fprintf(&b, "💰 Next upgrade: %d coins (/upgrademill)", s.NextUpgradeCost)
	}
	return b.String()
}

func renderFeedMarket(listings []domain.FeedListing) string {
	if len(listings) == 0 {
		return MsgFeedMarketEmpty
	}
	var b strings.Builder
	b.WriteString(MsgFeedMarketHeader)
	for _, l := range listings {
		fmt.Fprintf(&b, MsgFeedMarketLine, l.Brand, l.MillCode, l.Amount, l.Type, l.Price)
	}
	b.WriteString("\nUse /buyfeed <millcode> <amount> to buy.")
	return b.String()
}

func renderBrand(s *domain.BrandStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏷 %s (code %s)\n", s.Brand, s.Code)
	fmt.Fprintf(&b, "⬆️ Level: %d\n", s.Level)
	fmt.Fprintf(&b, "⭐ Royalty points: %d\n", s.RoyaltyPoints)
	fmt.Fprintf(&b, "🧾 Sales: %d\n", s.Sales)
	fmt.Fprintf(&b, "🛒 Active listings: %d (%d feed)", s.ActiveListings, s.ListedFeed)
	if s.Rank > 0 {
		fmt.Fprintf(&b, "\n🏆 Rank: #%d", s.Rank)
	}
	return b.String()
}

func renderTopBrands(ranks []domain.BrandRank) string {
	if len(ranks) == 0 {
		return MsgTopBrandsEmpty
	}
	var b strings.Builder
	b.WriteString(MsgTopBrandsHeader)
	for _, r := range ranks {
		fmt.Fprintf(&b, MsgTopBrandsLine, r.Rank, r.Brand, r.Code, r.RoyaltyPoints, r.Sales)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderPlant(s *domain.PlantStatus) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏭 Pork Plant — level %d/%d\n", s.Level, s.MaxLevel)
	for _, p := range s.Products {
		name := title(string(p.Product))
		switch {
		case !p.Unlocked:
			fmt.Fprintf(&b, "🔒 %s\n", name)
		case p.ClaimedToday:
			fmt.Fprintf(&b, "✅ %s: %s TON (done today, %d total)\n", name, ton(p.Reward), p.Processed)
		default:
			fmt.Fprintf(&b, "🥓 %s: %s TON (%d total)\n", name, ton(p.Reward), p.Processed)
		}
	}
	fmt.Fprintf(&b, "💎 TON earned: %s\n", ton(s.TonEarned))
	if s.AtMaxLevel {
		b.WriteString("🏆 Max level reached")
	} else {
		fmt.Fprintf(&b, "⬆️ Next upgrade: %s TON (/upgradeplant)", ton(s.UpgradeCost))
	}
	return b.String()
}

func renderWallet(s *domain.WalletStatus) string {
	var b strings.Builder
	addr := s.Address
	if addr == "" {
		addr = "not set (/setwallet <address>)"
	}
	fmt.Fprintf(&b, "👛 Wallet: %s\n", addr)
	fmt.Fprintf(&b, "💎 TON: %s\n", ton(s.TonBalance))
	fmt.Fprintf(&b, "💰 Coins: %d (%d coins = 1 TON)\n", s.Coins, s.ExchangeRate)
	fmt.Fprintf(&b, "📤 Minimum claim: %s TON", ton(s.MinClaim))
	if s.CanClaim {
		b.WriteString("\n✅ You can claim with /claimton")
	}
	if len(s.Recent) > 0 {
		b.WriteString("\n\n📜 Recent:")
		for _, e := range s.Recent {
			fmt.Fprintf(&b, "\n%s %s %s TON", e.Date, e.Source, signed(e.Amount))
		}
	}
	return b.String()
}

func renderTonLog(lines []domain.LedgerLine) string {
	if len(lines) == 0 {
		return MsgTonLogEmpty
	}
	var b strings.Builder
	b.WriteString(MsgTonLogHeader)
	for _, l := range lines {
		who := l.PlayerID
		if l.Username != "" {
			who = "@" + l.Username
		}
		fmt.Fprintf(&b, MsgTonLogLine, l.Date, who, l.Source, signed(l.Amount))
	}
	return strings.TrimRight(b.String(), "\n")
}

func signed(d decimal.Decimal) string {
	if d.IsNegative() {
		return ton(d)
	}
	return "+" + ton(d)
}
