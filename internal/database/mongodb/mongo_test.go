package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/repository"
)

func TestFamilyDocument_KeepsBodyAsText(t *testing.T) {
	raw, err := bson.Marshal(familyDocument{Family: "players", Body: `{"1":{"ton_balance":"0.1"}}`})
	require.NoError(t, err)

	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	assert.Equal(t, "players", m["_id"])
	assert.IsType(t, "", m["body"])
}

// Requires a replica set, e.g. MONGO_TEST_URI=mongodb://localhost:27017/?replicaSet=rs0
func TestStore_Integration(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if testing.Short() || uri == "" {
		t.Skip("Skipping MongoDB integration test; set MONGO_TEST_URI to run it")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbName := "pigfarm_test_" + time.Now().Format("150405")
	store, err := NewStore(ctx, uri, dbName)
	require.NoError(t, err)
	defer store.Close(ctx)

	require.NoError(t, repository.WithTx(ctx, store, repository.Both, func(tx repository.Tx) error {
		p := domain.NewPlayerRecord("erin")
		p.Coins = 3
		tx.Players()["5"] = p
		tx.Mills().Mills["5"] = &domain.Mill{Brand: "Erin Mills", LastProduction: domain.MillEpoch}
		return nil
	}))

	require.NoError(t, repository.View(ctx, store, repository.Both, func(tx repository.Tx) error {
		assert.Equal(t, 3, tx.Players()["5"].Coins)
		assert.Equal(t, "Erin Mills", tx.Mills().Mills["5"].Brand)
		return nil
	}))
}
