package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMill_TakeStockSplitsOldestFirst(t *testing.T) {
	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(24 * time.Hour)
	m := &Mill{Stock: []FeedBatch{
		{Amount: 10, Type: FeedBasic, Timestamp: t1},
		{Amount: 20, Type: FeedEnriched, Timestamp: t2},
	}}

	taken, err := m.TakeStock(15)
	require.NoError(t, err)

	assert.Equal(t, []FeedBatch{
		{Amount: 10, Type: FeedBasic, Timestamp: t1},
		{Amount: 5, Type: FeedEnriched, Timestamp: t2},
	}, taken)
	assert.Equal(t, []FeedBatch{{Amount: 15, Type: FeedEnriched, Timestamp: t2}}, m.Stock,
		"partially consumed batch keeps its type and timestamp")
	assert.Equal(t, 15, m.StockTotal())
}

func TestMill_TakeStockFailsWithoutMutation(t *testing.T) {
	m := &Mill{Stock: []FeedBatch{{Amount: 4, Type: FeedBasic}}}

	_, err := m.TakeStock(5)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	_, err = m.TakeStock(0)
	assert.ErrorIs(t, err, ErrBadAmount)
	assert.Equal(t, 4, m.StockTotal())
}

func TestMill_TakeAllEmptiesStock(t *testing.T) {
	m := &Mill{Stock: []FeedBatch{{Amount: 4}, {Amount: 6}}}
	_, err := m.TakeStock(10)
	require.NoError(t, err)
	assert.Empty(t, m.Stock)
}

func TestDecodeMills_Defaults(t *testing.T) {
	doc, err := DecodeMills([]byte(`{"mills": {"1": {"level": 1}, "2": null}}`))
	require.NoError(t, err)

	assert.Len(t, doc.Mills, 1)
	assert.Equal(t, MillEpoch, doc.Mills["1"].LastProduction)
	assert.NotNil(t, doc.Mills["1"].Stock)
	assert.NotNil(t, doc.Market)

	empty, err := DecodeMills(nil)
	require.NoError(t, err)
	assert.Empty(t, empty.Mills)
}

func TestMillDocument_MillByCode(t *testing.T) {
	doc := NewMillDocument()
	doc.Mills["7"] = &Mill{Code: "AB12CD34"}
	doc.Mills["8"] = &Mill{}

	id, m, ok := doc.MillByCode("AB12CD34")
	require.True(t, ok)
	assert.Equal(t, "7", id)
	assert.Same(t, doc.Mills["7"], m)

	_, _, ok = doc.MillByCode("")
	assert.False(t, ok)
}
