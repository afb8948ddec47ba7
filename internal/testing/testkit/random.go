// Package testkit holds test doubles shared by the engine packages.
package testkit

import (
	"sync"

	"github.com/osse101/PigFarmBot_Go/internal/utils"
)

// ScriptedRandom replays fixed draws. When a script runs out the last value
// repeats; an empty script yields zero.
type ScriptedRandom struct {
	mu     sync.Mutex
	floats []float64
	ints   []int
}

// NewScriptedRandom returns a source replaying floats for Float64 and ints for IntN.
func NewScriptedRandom(floats []float64, ints []int) *ScriptedRandom {
	return &ScriptedRandom{floats: floats, ints: ints}
}

func (r *ScriptedRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	if len(r.floats) > 1 {
		r.floats = r.floats[1:]
	}
	return v
}

// IntN returns the next scripted value reduced modulo n.
func (r *ScriptedRandom) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.ints) == 0 || n <= 0 {
		return 0
	}
	v := r.ints[0]
	if len(r.ints) > 1 {
		r.ints = r.ints[1:]
	}
	return v % n
}

// Factory returns a constructor handing out r on every call, matching the
// per-operation factories the services take.
func (r *ScriptedRandom) Factory() func() utils.Random {
	return func() utils.Random { return r }
}
