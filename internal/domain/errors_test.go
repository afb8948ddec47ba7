package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_MatchesKindAndReason(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewNotDueError(2))

	assert.ErrorIs(t, err, ErrNotDueYet)
	assert.ErrorIs(t, err, ErrPreconditionFailed)
	assert.NotErrorIs(t, err, ErrCooling)
	assert.NotErrorIs(t, err, ErrNotFound)

	de, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, 2, de.RemainingDays)
	assert.Equal(t, "piglets are not due yet (2 days remaining)", de.Error())
}

func TestError_Resources(t *testing.T) {
	assert.ErrorIs(t, ErrInsufficientTokens, ErrInsufficientResource)
	assert.NotErrorIs(t, ErrInsufficientTokens, ErrInsufficientFunds)
	assert.Equal(t, "not enough coins", ErrInsufficientFunds.Error())
}

func TestError_Cooling(t *testing.T) {
	err := NewCoolingError(90 * time.Minute)
	assert.ErrorIs(t, err, ErrCooling)
	assert.Equal(t, "mill is cooling down (1h30m0s remaining)", err.Error())
}

func TestAsError_PlainErrors(t *testing.T) {
	_, ok := AsError(errors.New("disk"))
	assert.False(t, ok)
}
