package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PigFarmBot_Go/internal/handler"
)

func TestCommandHandler_Execute(t *testing.T) {
	handler.InitValidator()

	d := &MockDispatcher{}
	d.On("Dispatch", mock.Anything, "42", "piggy", "sellpiglet", []string{"2"}).Return("💰 Sold", nil)
	d.On("Dispatch", mock.Anything, "42", "piggy", "feed", []string(nil)).Return("", errors.New("store down"))
	h := handler.NewCommandHandler(d)

	rec := postJSON(t, h.Execute, handler.CommandRequest{Sender: "42", Username: "piggy", Command: "sellpiglet", Args: []string{"2"}})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.CommandResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "💰 Sold", resp.Reply)

	rec = postJSON(t, h.Execute, handler.CommandRequest{Sender: "42", Username: "piggy", Command: "feed"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = postJSON(t, h.Execute, handler.CommandRequest{Sender: "has space", Command: "feed"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	d.AssertExpectations(t)
}
