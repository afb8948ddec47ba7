package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/PigFarmBot_Go/internal/database/memory"
	"github.com/osse101/PigFarmBot_Go/internal/handler"
)

type failingChecker struct{}

func (failingChecker) CheckHealth(context.Context) error { return errors.New("unreachable") }

func TestHealthEndpoints(t *testing.T) {
	rec := httptest.NewRecorder()
	handler.HandleHealthz()(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	store, _ := memory.NewStore()
	rec = httptest.NewRecorder()
	handler.HandleReadyz(handler.StoreHealth{Store: store})(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.HandleReadyz(failingChecker{})(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "unavailable")
}

func TestHealthCheckers(t *testing.T) {
	store, _ := memory.NewStore()
	ok := handler.HealthCheckers{handler.StoreHealth{Store: store}}
	assert.NoError(t, ok.CheckHealth(context.Background()))

	failing := handler.HealthCheckers{handler.StoreHealth{Store: store}, failingChecker{}}
	assert.EqualError(t, failing.CheckHealth(context.Background()), "unreachable")
}

func TestHandleVersion(t *testing.T) {
	rec := httptest.NewRecorder()
	handler.HandleVersion("1.2.3")(rec, httptest.NewRequest(http.MethodGet, "/version", nil))
	assert.Contains(t, rec.Body.String(), `"version":"1.2.3"`)
}
