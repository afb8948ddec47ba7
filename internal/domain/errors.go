package domain

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies a business failure. Every rejection the economy engine
// reports carries exactly one kind.
type Kind string

const (
	KindNotFound             Kind = "not_found"
	KindAlreadyExists        Kind = "already_exists"
	KindPreconditionFailed   Kind = "precondition_failed"
	KindInsufficientResource Kind = "insufficient_resource"
	KindInvalidArgument      Kind = "invalid_argument"
	KindUnauthorized         Kind = "unauthorized"
)

// Reason is the machine-readable sub-reason of a failure.
type Reason string

const (
	ReasonNoPlayer           Reason = "no_player"
	ReasonNoPig              Reason = "no_pig"
	ReasonNoFarm             Reason = "no_farm"
	ReasonNoMill             Reason = "no_mill"
	ReasonNoPlant            Reason = "no_plant"
	ReasonNoPiglets          Reason = "no_piglets"
	ReasonListingNotFound    Reason = "listing_not_found"
	ReasonTaskNotFound       Reason = "task_not_found"
	ReasonAlreadyOwned       Reason = "already_owned"
	ReasonTaskAlreadyClaimed Reason = "task_already_claimed"
	ReasonAlreadyFedToday    Reason = "already_fed_today"
	ReasonTooYoung           Reason = "too_young"
	ReasonUnderfed           Reason = "underfed"
	ReasonAlreadyPregnant    Reason = "already_pregnant"
	ReasonNotPregnant        Reason = "not_pregnant"
	ReasonNotDueYet          Reason = "not_due_yet"
	ReasonCooling            Reason = "cooling"
	ReasonMaxLevel           Reason = "max_level"
	ReasonNothingEligible    Reason = "nothing_eligible"
	ReasonWalletNotSet       Reason = "wallet_not_set"
	ReasonBelowMinimum       Reason = "below_minimum"
	ReasonNoMarketOffers     Reason = "no_market_offers"
	ReasonSelfPurchase       Reason = "self_purchase"
	ReasonNotAdmin           Reason = "not_admin"
	ReasonBadIndex           Reason = "bad_index"
	ReasonBadAmount          Reason = "bad_amount"
	ReasonBadAddress         Reason = "bad_address"
	ReasonBadName            Reason = "bad_name"
)

// Resource names the balance an InsufficientResource failure ran short of.
type Resource string

const (
	ResourceCoins  Resource = "coins"
	ResourceTokens Resource = "tokens"
	ResourceFeed   Resource = "feed"
	ResourceStock  Resource = "stock"
)

// Error message string constants - single source of truth for error messages
const (
	ErrMsgNoPlayer           = "player not found"
	ErrMsgNoPig              = "you don't have a pig"
	ErrMsgNoFarm             = "you don't have a farm"
	ErrMsgNoMill             = "you don't have a feed mill"
	ErrMsgNoPlant            = "you don't have a pork plant"
	ErrMsgNoPiglets          = "you don't have any piglets"
	ErrMsgListingNotFound    = "no matching feed listing"
	ErrMsgTaskNotFound       = "task not found"
	ErrMsgAlreadyOwned       = "already owned"
	ErrMsgTaskAlreadyClaimed = "task already claimed"
	ErrMsgAlreadyFedToday    = "pig already fed today"
	ErrMsgTooYoung           = "pig is too young to breed"
	ErrMsgUnderfed           = "pig was not fed on each of the previous days"
	ErrMsgAlreadyPregnant    = "pig is already pregnant"
	ErrMsgNotPregnant        = "pig is not pregnant"
	ErrMsgNotDueYet          = "piglets are not due yet"
	ErrMsgCooling            = "mill is cooling down"
	ErrMsgMaxLevel           = "already at max level"
	ErrMsgNothingEligible    = "no piglet is eligible for processing"
	ErrMsgWalletNotSet       = "wallet address not set"
	ErrMsgBelowMinimum       = "balance below minimum claim"
	ErrMsgNoMarketOffers     = "no market offers, refresh the market first"
	ErrMsgSelfPurchase       = "you cannot buy your own feed"
	ErrMsgNotAdmin           = "admin only"
	ErrMsgBadIndex           = "invalid index"
	ErrMsgBadAmount          = "amount must be positive"
	ErrMsgBadAddress         = "invalid wallet address"
	ErrMsgBadName            = "invalid name"
	ErrMsgInsufficient       = "not enough %s"

	// ErrMsgTxClosed is returned when a transaction is used after commit or rollback.
	ErrMsgTxClosed = "tx is closed"
)

var reasonMessages = map[Reason]string{
	ReasonNoPlayer:           ErrMsgNoPlayer,
	ReasonNoPig:              ErrMsgNoPig,
	ReasonNoFarm:             ErrMsgNoFarm,
	ReasonNoMill:             ErrMsgNoMill,
	ReasonNoPlant:            ErrMsgNoPlant,
	ReasonNoPiglets:          ErrMsgNoPiglets,
	ReasonListingNotFound:    ErrMsgListingNotFound,
	ReasonTaskNotFound:       ErrMsgTaskNotFound,
	ReasonAlreadyOwned:       ErrMsgAlreadyOwned,
	ReasonTaskAlreadyClaimed: ErrMsgTaskAlreadyClaimed,
	ReasonAlreadyFedToday:    ErrMsgAlreadyFedToday,
	ReasonTooYoung:           ErrMsgTooYoung,
	ReasonUnderfed:           ErrMsgUnderfed,
	ReasonAlreadyPregnant:    ErrMsgAlreadyPregnant,
	ReasonNotPregnant:        ErrMsgNotPregnant,
	ReasonNotDueYet:          ErrMsgNotDueYet,
	ReasonCooling:            ErrMsgCooling,
	ReasonMaxLevel:           ErrMsgMaxLevel,
	ReasonNothingEligible:    ErrMsgNothingEligible,
	ReasonWalletNotSet:       ErrMsgWalletNotSet,
	ReasonBelowMinimum:       ErrMsgBelowMinimum,
	ReasonNoMarketOffers:     ErrMsgNoMarketOffers,
	ReasonSelfPurchase:       ErrMsgSelfPurchase,
	ReasonNotAdmin:           ErrMsgNotAdmin,
	ReasonBadIndex:           ErrMsgBadIndex,
	ReasonBadAmount:          ErrMsgBadAmount,
	ReasonBadAddress:         ErrMsgBadAddress,
	ReasonBadName:            ErrMsgBadName,
}

// Error is a recoverable business failure. It never reflects a partial
// mutation: whoever returns it has left persisted state untouched.
//
// Matching with errors.Is compares only the non-empty fields of the target,
// so ErrPreconditionFailed matches every precondition failure while
// ErrNotDueYet matches only that reason.
type Error struct {
	Kind     Kind
	Reason   Reason
	Resource Resource

	// Remaining is set for time gates (cooldowns).
	Remaining time.Duration
	// RemainingDays is set for calendar gates (pregnancy).
	RemainingDays int
}

func (e *Error) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf(ErrMsgInsufficient, e.Resource)
	}
	msg, ok := reasonMessages[e.Reason]
	if !ok {
		msg = string(e.Kind)
	}
	switch {
	case e.Remaining > 0:
		return fmt.Sprintf("%s (%s remaining)", msg, e.Remaining.Round(time.Second))
	case e.RemainingDays > 0:
		return fmt.Sprintf("%s (%d days remaining)", msg, e.RemainingDays)
	}
	return msg
}

// Is reports whether target describes this error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != "" && t.Kind != e.Kind {
		return false
	}
	if t.Reason != "" && t.Reason != e.Reason {
		return false
	}
	if t.Resource != "" && t.Resource != e.Resource {
		return false
	}
	return true
}

// Kind-level sentinels
var (
	ErrNotFound             = &Error{Kind: KindNotFound}
	ErrAlreadyExists        = &Error{Kind: KindAlreadyExists}
	ErrPreconditionFailed   = &Error{Kind: KindPreconditionFailed}
	ErrInsufficientResource = &Error{Kind: KindInsufficientResource}
	ErrInvalidArgument      = &Error{Kind: KindInvalidArgument}
	ErrUnauthorized         = &Error{Kind: KindUnauthorized}
)

// Not found
var (
	ErrNoPlayer        = &Error{Kind: KindNotFound, Reason: ReasonNoPlayer}
	ErrNoPig           = &Error{Kind: KindNotFound, Reason: ReasonNoPig}
	ErrNoFarm          = &Error{Kind: KindNotFound, Reason: ReasonNoFarm}
	ErrNoMill          = &Error{Kind: KindNotFound, Reason: ReasonNoMill}
	ErrNoPlant         = &Error{Kind: KindNotFound, Reason: ReasonNoPlant}
	ErrNoPiglets       = &Error{Kind: KindNotFound, Reason: ReasonNoPiglets}
	ErrListingNotFound = &Error{Kind: KindNotFound, Reason: ReasonListingNotFound}
	ErrTaskNotFound    = &Error{Kind: KindNotFound, Reason: ReasonTaskNotFound}
)

// Already exists
var (
	ErrAlreadyOwned       = &Error{Kind: KindAlreadyExists, Reason: ReasonAlreadyOwned}
	ErrTaskAlreadyClaimed = &Error{Kind: KindAlreadyExists, Reason: ReasonTaskAlreadyClaimed}
)

// Preconditions
var (
	ErrAlreadyFedToday = &Error{Kind: KindPreconditionFailed, Reason: ReasonAlreadyFedToday}
	ErrTooYoung        = &Error{Kind: KindPreconditionFailed, Reason: ReasonTooYoung}
	ErrUnderfed        = &Error{Kind: KindPreconditionFailed, Reason: ReasonUnderfed}
	ErrAlreadyPregnant = &Error{Kind: KindPreconditionFailed, Reason: ReasonAlreadyPregnant}
	ErrNotPregnant     = &Error{Kind: KindPreconditionFailed, Reason: ReasonNotPregnant}
	ErrNotDueYet       = &Error{Kind: KindPreconditionFailed, Reason: ReasonNotDueYet}
	ErrCooling         = &Error{Kind: KindPreconditionFailed, Reason: ReasonCooling}
	ErrMaxLevel        = &Error{Kind: KindPreconditionFailed, Reason: ReasonMaxLevel}
	ErrNothingEligible = &Error{Kind: KindPreconditionFailed, Reason: ReasonNothingEligible}
	ErrWalletNotSet    = &Error{Kind: KindPreconditionFailed, Reason: ReasonWalletNotSet}
	ErrBelowMinimum    = &Error{Kind: KindPreconditionFailed, Reason: ReasonBelowMinimum}
	ErrNoMarketOffers  = &Error{Kind: KindPreconditionFailed, Reason: ReasonNoMarketOffers}
	ErrSelfPurchase    = &Error{Kind: KindPreconditionFailed, Reason: ReasonSelfPurchase}
)

// Insufficient resources
var (
	ErrInsufficientFunds  = &Error{Kind: KindInsufficientResource, Resource: ResourceCoins}
	ErrInsufficientTokens = &Error{Kind: KindInsufficientResource, Resource: ResourceTokens}
	ErrInsufficientFeed   = &Error{Kind: KindInsufficientResource, Resource: ResourceFeed}
	ErrInsufficientStock  = &Error{Kind: KindInsufficientResource, Resource: ResourceStock}
)

// Invalid arguments
var (
	ErrBadIndex   = &Error{Kind: KindInvalidArgument, Reason: ReasonBadIndex}
	ErrBadAmount  = &Error{Kind: KindInvalidArgument, Reason: ReasonBadAmount}
	ErrBadAddress = &Error{Kind: KindInvalidArgument, Reason: ReasonBadAddress}
	ErrBadName    = &Error{Kind: KindInvalidArgument, Reason: ReasonBadName}
)

var ErrNotAdmin = &Error{Kind: KindUnauthorized, Reason: ReasonNotAdmin}

// ErrTxClosed is returned by a store transaction used after Commit or Rollback.
var ErrTxClosed = errors.New(ErrMsgTxClosed)

// NewCoolingError reports a cooldown gate with the time left until it opens.
func NewCoolingError(remaining time.Duration) error {
	return &Error{Kind: KindPreconditionFailed, Reason: ReasonCooling, Remaining: remaining}
}

// NewNotDueError reports a calendar gate with the days left until it opens.
func NewNotDueError(days int) error {
	return &Error{Kind: KindPreconditionFailed, Reason: ReasonNotDueYet, RemainingDays: days}
}

// AsError extracts the business failure from err, if there is one.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
