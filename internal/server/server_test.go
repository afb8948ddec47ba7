package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PigFarmBot_Go/internal/catalog"
	"github.com/osse101/PigFarmBot_Go/internal/clock"
	"github.com/osse101/PigFarmBot_Go/internal/command"
	"github.com/osse101/PigFarmBot_Go/internal/database/memory"
	"github.com/osse101/PigFarmBot_Go/internal/farm"
	"github.com/osse101/PigFarmBot_Go/internal/handler"
	"github.com/osse101/PigFarmBot_Go/internal/mill"
	"github.com/osse101/PigFarmBot_Go/internal/piglet"
	"github.com/osse101/PigFarmBot_Go/internal/plant"
	"github.com/osse101/PigFarmBot_Go/internal/player"
	"github.com/osse101/PigFarmBot_Go/internal/wallet"
)

const testAPIKey = "test-key"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store, _ := memory.NewStore()
	cat := catalog.Default()
	clk := clock.NewFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	svc := command.Services{
		Players: player.NewService(store, cat, nil),
		Farm:    farm.NewService(store, cat, clk, nil, nil),
		Piglets: piglet.NewService(store, cat, clk, nil, nil),
		Mills:   mill.NewService(store, cat, clk, nil),
		Plants:  plant.NewService(store, cat, clk, nil),
		Wallets: wallet.NewService(store, cat, clk, wallet.NewAdminSet([]string{"1"}), nil),
	}
	return NewRouter(Config{APIKey: testAPIKey, Version: "test", AdminIDs: []string{"1"}}, Deps{
		Services:   svc,
		Dispatcher: command.NewDispatcher(svc, cat, command.Options{}),
		Health:     handler.StoreHealth{Store: store},
	})
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf).WithContext(context.Background())
	req.Header.Set(HeaderAPIKey, testAPIKey)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_PublicEndpoints(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/healthz", "/readyz", "/version", "/metrics"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, APIBasePath+"/feed/market", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_FarmFlow(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodGet, APIBasePath+"/farm/42", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, r, http.MethodPost, APIBasePath+"/players/start", handler.StartRequest{PlayerID: "42", Username: "piggy"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, r, http.MethodPost, APIBasePath+"/farm/buy", handler.NamedPlayerRequest{PlayerID: "42"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, r, http.MethodPost, APIBasePath+"/farm/feed", handler.PlayerRequest{PlayerID: "42"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, r, http.MethodPost, APIBasePath+"/farm/feed", handler.PlayerRequest{PlayerID: "42"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, r, http.MethodGet, APIBasePath+"/farm/42", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var status map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	assert.Equal(t, "happy", status["mood"])
	assert.Equal(t, float64(3), status["coins"])
}

func TestRouter_Command(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodPost, APIBasePath+"/command", handler.CommandRequest{Sender: "9", Username: "bacon", Command: "start"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.CommandResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp.Reply, "Welcome to Pig Farm")
}

func TestRouter_AdminRequiresListedCaller(t *testing.T) {
	r := newTestRouter(t)

	admin := func(adminHeader string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
		req := httptest.NewRequest(http.MethodPost, APIBasePath+"/admin/tonlog", &buf)
		req.Header.Set(HeaderAPIKey, testAPIKey)
		if adminHeader != "" {
			req.Header.Set(HeaderAdminID, adminHeader)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	t.Run("body alone is not enough", func(t *testing.T) {
		rec := do(t, r, http.MethodPost, APIBasePath+"/admin/tonlog", handler.TonLogRequest{AdminID: "1"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unlisted header", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, admin("2", handler.TonLogRequest{}).Code)
	})

	t.Run("body names someone else", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, admin("1", handler.TonLogRequest{AdminID: "2"}).Code)
	})

	t.Run("listed header", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, admin("1", handler.TonLogRequest{Limit: 5}).Code)
		assert.Equal(t, http.StatusOK, admin("1", handler.TonLogRequest{AdminID: "1"}).Code)
	})
}
