package domain

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// PigletType is the rarity tier of a piglet.
type PigletType string

const (
	PigletNormal  PigletType = "normal"
	PigletSpotted PigletType = "spotted"
	PigletGolden  PigletType = "golden"
)

// PigletTypes lists the tiers from most to least rare.
var PigletTypes = []PigletType{PigletGolden, PigletSpotted, PigletNormal}

// Valid reports whether t is a known tier.
func (t PigletType) Valid() bool {
	return slices.Contains(PigletTypes, t)
}

// Product is a pork plant output.
type Product string

const (
	ProductMeat    Product = "meat"
	ProductSausage Product = "sausage"
	ProductBacon   Product = "bacon"
)

// Products lists plant outputs in processing priority order.
var Products = []Product{ProductBacon, ProductSausage, ProductMeat}

// Piglet is one offspring held in a player's inventory.
type Piglet struct {
	Type   PigletType `json:"type"`
	Age    int        `json:"age"`
	BornOn Date       `json:"born_on,omitempty"`
}

// EffectiveAge is the larger of the stored age and the days elapsed since birth.
func (p Piglet) EffectiveAge(today Date) int {
	if p.BornOn == "" {
		return p.Age
	}
	return max(p.Age, today.DaysSince(p.BornOn))
}

// Pig is the single breeding animal a player may own.
type Pig struct {
	BirthDate    Date   `json:"birth_date"`
	FedDates     []Date `json:"fed_dates"`
	Pregnant     bool   `json:"pregnant"`
	PregnantDate *Date  `json:"pregnant_date"`
}

// NewPig returns a pig born on the given date.
func NewPig(born Date) *Pig {
	return &Pig{BirthDate: born, FedDates: []Date{}}
}

// FedOn reports whether the pig was fed on d.
func (p *Pig) FedOn(d Date) bool {
	return slices.Contains(p.FedDates, d)
}

// LastFed returns the most recent feeding date.
func (p *Pig) LastFed() (Date, bool) {
	var last Date
	for _, d := range p.FedDates {
		if !d.Valid() {
			continue
		}
		if last == "" || last.Before(d) {
			last = d
		}
	}
	return last, last != ""
}

// AgeDays is the pig's age in whole days at today.
func (p *Pig) AgeDays(today Date) int {
	return today.DaysSince(p.BirthDate)
}

// StartPregnancy marks the pig pregnant as of d.
func (p *Pig) StartPregnancy(d Date) {
	p.Pregnant = true
	p.PregnantDate = &d
}

// EndPregnancy clears both pregnancy fields together.
func (p *Pig) EndPregnancy() {
	p.Pregnant = false
	p.PregnantDate = nil
}

// LedgerEntry is an append-only token movement.
type LedgerEntry struct {
	Date   Date            `json:"date"`
	Source string          `json:"source"`
	Amount decimal.Decimal `json:"amount"`
}

// PorkPlant converts piglets into tokens.
type PorkPlant struct {
	Level     int             `json:"level"`
	Processed map[Product]int `json:"processed"`
	TonEarned decimal.Decimal `json:"ton_earned"`
}

// PlayerRecord is the persisted state of one player.
type PlayerRecord struct {
	Username      string           `json:"username"`
	Coins         int              `json:"coins"`
	TonBalance    decimal.Decimal  `json:"ton_balance"`
	Feed          int              `json:"feed"`
	Streak        int              `json:"streak"`
	Referrals     int              `json:"referrals"`
	ReferredBy    string           `json:"referred_by,omitempty"`
	ClaimedTasks  []string         `json:"claimed_tasks"`
	Piglets       []Piglet         `json:"piglets"`
	Pig           *Pig             `json:"pig"`
	Plant         *PorkPlant       `json:"plant"`
	TonWallet     string           `json:"ton_wallet,omitempty"`
	TonLog        []LedgerEntry    `json:"ton_log"`
	LastProcessed map[Product]Date `json:"last_processed"`
}

// NewPlayerRecord returns an empty record with every collection initialised.
func NewPlayerRecord(username string) *PlayerRecord {
	p := &PlayerRecord{Username: username}
	p.normalize()
	return p
}

// HasClaimed reports whether the task code was already claimed.
func (p *PlayerRecord) HasClaimed(code string) bool {
	return slices.Contains(p.ClaimedTasks, code)
}

// AppendLedger records a token movement. Entries are never edited afterwards.
func (p *PlayerRecord) AppendLedger(d Date, source string, amount decimal.Decimal) {
	p.TonLog = append(p.TonLog, LedgerEntry{Date: d, Source: source, Amount: amount})
}

// Debit removes coins, failing without mutation when the balance is short.
func (p *PlayerRecord) Debit(coins int) error {
	if coins < 0 {
		return ErrBadAmount
	}
	if p.Coins < coins {
		return ErrInsufficientFunds
	}
	p.Coins -= coins
	return nil
}

// DebitTokens removes tokens, failing without mutation when the balance is short.
func (p *PlayerRecord) DebitTokens(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrBadAmount
	}
	if p.TonBalance.LessThan(amount) {
		return ErrInsufficientTokens
	}
	p.TonBalance = p.TonBalance.Sub(amount)
	return nil
}

// normalize applies the documented defaults for absent fields.
func (p *PlayerRecord) normalize() {
	if p.ClaimedTasks == nil {
		p.ClaimedTasks = []string{}
	}
	if p.Piglets == nil {
		p.Piglets = []Piglet{}
	}
	if p.TonLog == nil {
		p.TonLog = []LedgerEntry{}
	}
	if p.LastProcessed == nil {
		p.LastProcessed = map[Product]Date{}
	}
	if p.Pig != nil {
		if p.Pig.FedDates == nil {
			p.Pig.FedDates = []Date{}
		}
		// pregnant_date is set exactly while pregnant
		if !p.Pig.Pregnant || p.Pig.PregnantDate == nil {
			p.Pig.Pregnant = false
			p.Pig.PregnantDate = nil
		}
	}
	if p.Plant != nil && p.Plant.Processed == nil {
		p.Plant.Processed = map[Product]int{}
	}
	for i := range p.Piglets {
		if p.Piglets[i].Type == "" {
			p.Piglets[i].Type = PigletNormal
		}
	}
}

// Players is the player record family, keyed by player id.
type Players map[string]*PlayerRecord

// Ensure returns the record for id, creating it with joinBonus coins when
// absent. The second result reports whether the record was created.
func (ps Players) Ensure(id, username string, joinBonus int) (*PlayerRecord, bool) {
	if p, ok := ps[id]; ok {
		if p.Username == "" {
			p.Username = username
		}
		return p, false
	}
	p := NewPlayerRecord(username)
	p.Coins = joinBonus
	ps[id] = p
	return p, true
}

// DecodePlayers parses a player document. An empty document is an empty family.
func DecodePlayers(data []byte) (Players, error) {
	players := Players{}
	if len(data) == 0 {
		return players, nil
	}
	if err := json.Unmarshal(data, &players); err != nil {
		return nil, fmt.Errorf("failed to decode players: %w", err)
	}
	for id, p := range players {
		if p == nil {
			delete(players, id)
			continue
		}
		p.normalize()
	}
	return players, nil
}

// Encode serialises the family.
func (ps Players) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(ps, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode players: %w", err)
	}
	return data, nil
}
