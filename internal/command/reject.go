package command

import (
	"fmt"

	"github.com/osse101/PigFarmBot_Go/internal/catalog"
	"github.com/osse101/PigFarmBot_Go/internal/domain"
)

// rejectionText turns a business failure into the reply players see.
func rejectionText(cat *catalog.Catalog, de *domain.Error) string {
	switch de.Resource {
	case domain.ResourceCoins:
		return "💸 Not enough coins!"
	case domain.ResourceTokens:
		return "💎 Not enough TON!"
	case domain.ResourceFeed:
		return "🌾 Not enough feed! Buy some with /feedmarket."
	case domain.ResourceStock:
		return "📦 Your mill doesn't have that much feed."
	}

	switch de.Reason {
	case domain.ReasonNoPlayer:
		return "👋 You haven't joined yet. Use /start first!"
	case domain.ReasonNoPig, domain.ReasonNoFarm:
		return "🐷 You don't have a pig! Use /buy to start."
	case domain.ReasonNoMill:
		return "🏭 You don't have a feed mill. Use /startmill to open one."
	case domain.ReasonNoPlant:
		return "🏭 You don't have a pork plant. Use /startplant to open one."
	case domain.ReasonNoPiglets:
		return "😢 You don't have any piglets."
	case domain.ReasonListingNotFound:
		return "❌ No feed listing matches that mill code and amount."
	case domain.ReasonTaskNotFound:
		return "❌ Invalid task code."
	case domain.ReasonAlreadyOwned:
		return "😅 You already have one!"
	case domain.ReasonTaskAlreadyClaimed:
		return "🙅 You've already claimed this task."
	case domain.ReasonAlreadyFedToday:
		return "🍽 You already fed your pig today!"
	case domain.ReasonTooYoung:
		return fmt.Sprintf("🍼 Your pig must be at least %d days old to breed.", cat.Breeding.MinAgeDays)
	case domain.ReasonUnderfed:
		return fmt.Sprintf("🍽 Your pig must be well-fed (last %d days) to breed.", cat.Breeding.FedDaysRequired)
	case domain.ReasonAlreadyPregnant:
		return "🤰 Your pig is already pregnant."
	case domain.ReasonNotPregnant:
		return "🤰 Your pig is not pregnant right now."
	case domain.ReasonNotDueYet:
		return fmt.Sprintf("🍼 Not yet! Your pig needs %d more day(s) to give birth.", de.RemainingDays)
	case domain.ReasonCooling:
		return fmt.Sprintf("⏳ Your mill is cooling down. Next batch in %s.", formatRemaining(de.Remaining))
	case domain.ReasonMaxLevel:
		return "🏆 Already at max level!"
	case domain.ReasonNothingEligible:
		return "🐖 None of your piglets can be processed right now."
	case domain.ReasonWalletNotSet:
		return "👛 Set your wallet first with /setwallet <address>."
	case domain.ReasonBelowMinimum:
		return fmt.Sprintf("💎 You need at least %s TON to claim.", cat.Exchange.MinClaim.String())
	case domain.ReasonNoMarketOffers:
		return "❌ No market offers. Use /market first."
	case domain.ReasonSelfPurchase:
		return "🙃 You can't buy your own feed."
	case domain.ReasonNotAdmin:
		return "⛔ Admins only."
	case domain.ReasonBadIndex:
		return "❌ Invalid number."
	case domain.ReasonBadAmount:
		return "❌ Amount must be positive."
	case domain.ReasonBadAddress:
		return "❌ That doesn't look like a TON wallet address."
	case domain.ReasonBadName:
		return "❌ Brand names must be 1 to 32 characters."
	}
	return "❌ " + de.Error()
}
