package testkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/PigFarmBot_Go/internal/event"
)

func TestScriptedRandom_RepeatsLastValue(t *testing.T) {
	r := NewScriptedRandom([]float64{0.1, 0.9}, []int{4, 1})
	assert.Equal(t, 0.1, r.Float64())
	assert.Equal(t, 0.9, r.Float64())
	assert.Equal(t, 0.9, r.Float64())
	assert.Equal(t, 1, r.IntN(3))
	assert.Equal(t, 1, r.IntN(3))
	assert.Equal(t, 0, NewScriptedRandom(nil, nil).IntN(5))
}

func TestRecordingBus(t *testing.T) {
	bus := NewRecordingBus()
	delivered := 0
	bus.Subscribe("a", func(context.Context, event.Event) error {
		delivered++
		return nil
	})

	_ = bus.Publish(context.Background(), event.Event{Type: "a", Payload: 1})
	_ = bus.Publish(context.Background(), event.Event{Type: "b"})
	_ = bus.Publish(context.Background(), event.Event{Type: "a", Payload: 2})

	assert.Equal(t, []string{"a", "b", "a"}, bus.Types())
	last, ok := bus.Last("a")
	assert.True(t, ok)
	assert.Equal(t, 2, last.Payload)
	assert.Equal(t, 2, delivered)
}
