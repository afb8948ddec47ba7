package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// FeedType is the grade of a produced feed batch.
type FeedType string

const (
	FeedBasic    FeedType = "basic"
	FeedEnriched FeedType = "enriched"
	FeedPremium  FeedType = "premium"
)

// MillEpoch is the production stamp of a mill that may produce immediately.
var MillEpoch = time.Unix(0, 0).UTC()

// FeedBatch is one production run sitting in a mill's stock.
type FeedBatch struct {
	Amount    int       `json:"amount"`
	Type      FeedType  `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// Mill is a player's feed mill.
type Mill struct {
	Level          int         `json:"level"`
	LastProduction time.Time   `json:"last_production"`
	Stock          []FeedBatch `json:"stock"`
	Brand          string      `json:"brand"`
	Code           string      `json:"code"`
	RoyaltyPoints  int         `json:"royalty_points"`
	Sales          int         `json:"sales"`
}

// StockTotal is the summed amount over all batches.
func (m *Mill) StockTotal() int {
	total := 0
	for _, b := range m.Stock {
		total += b.Amount
	}
	return total
}

// TakeStock removes amount units oldest-first. A partially consumed batch
// keeps its type and timestamp and only shrinks. The consumed portions are
// returned in the order they were taken. Stock is untouched on failure.
func (m *Mill) TakeStock(amount int) ([]FeedBatch, error) {
	if amount <= 0 {
		return nil, ErrBadAmount
	}
	if m.StockTotal() < amount {
		return nil, ErrInsufficientStock
	}

	var taken []FeedBatch
	remaining := amount
	for i := 0; i < len(m.Stock) && remaining > 0; i++ {
		b := &m.Stock[i]
		n := min(b.Amount, remaining)
		if n == 0 {
			continue
		}
		taken = append(taken, FeedBatch{Amount: n, Type: b.Type, Timestamp: b.Timestamp})
		b.Amount -= n
		remaining -= n
	}

	kept := m.Stock[:0]
	for _, b := range m.Stock {
		if b.Amount > 0 {
			kept = append(kept, b)
		}
	}
	m.Stock = kept
	return taken, nil
}

// FeedListing is an open offer on the feed market.
type FeedListing struct {
	ID       string    `json:"id"`
	Seller   string    `json:"seller"`
	MillCode string    `json:"mill_code"`
	Amount   int       `json:"amount"`
	Price    int       `json:"price"`
	Type     FeedType  `json:"type"`
	Brand    string    `json:"brand"`
	Sales    int       `json:"sales"`
	ListedAt time.Time `json:"listed_at"`
}

// MillDocument is the mill record family: every mill plus the feed market.
type MillDocument struct {
	Mills  map[string]*Mill `json:"mills"`
	Market []FeedListing    `json:"market"`
}

// NewMillDocument returns an empty family.
func NewMillDocument() *MillDocument {
	return &MillDocument{Mills: map[string]*Mill{}, Market: []FeedListing{}}
}

// MillByCode finds the owner of a mill by its public code.
func (d *MillDocument) MillByCode(code string) (string, *Mill, bool) {
	for id, m := range d.Mills {
		if m.Code != "" && m.Code == code {
			return id, m, true
		}
	}
	return "", nil, false
}

// RemoveListing drops the listing at index i.
func (d *MillDocument) RemoveListing(i int) {
	d.Market = append(d.Market[:i], d.Market[i+1:]...)
}

// DecodeMills parses a mill document. An empty document is an empty family.
func DecodeMills(data []byte) (*MillDocument, error) {
	doc := NewMillDocument()
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to decode mills: %w", err)
	}
	if doc.Mills == nil {
		doc.Mills = map[string]*Mill{}
	}
	if doc.Market == nil {
		doc.Market = []FeedListing{}
	}
	for id, m := range doc.Mills {
		if m == nil {
			delete(doc.Mills, id)
			continue
		}
		if m.Stock == nil {
			m.Stock = []FeedBatch{}
		}
		if m.LastProduction.IsZero() {
			m.LastProduction = MillEpoch
		}
	}
	return doc, nil
}

// Encode serialises the family.
func (d *MillDocument) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode mills: %w", err)
	}
	return data, nil
}
