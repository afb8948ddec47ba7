package discord

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrNotConnected is reported while the gateway session is down
var ErrNotConnected = errors.New("discord gateway not connected")

// HealthStatus represents the bot's health status
type HealthStatus struct {
	Status           string    `json:"status"`
	Uptime           string    `json:"uptime"`
	Connected        bool      `json:"connected"`
	CommandsReceived int64     `json:"commands_received"`
	LastCommandTime  time.Time `json:"last_command_time,omitempty"`
}

// commandStats counts handled interactions
type commandStats struct {
	started  time.Time
	received atomic.Int64
	mu       sync.Mutex
	last     time.Time
}

func (c *commandStats) record() {
	c.received.Add(1)
	c.mu.Lock()
	c.last = time.Now()
	c.mu.Unlock()
}

// Health reports connection state and command counters.
func (b *Bot) Health() HealthStatus {
	connected := b.Session != nil && b.Session.DataReady

	b.stats.mu.Lock()
	last := b.stats.last
	b.stats.mu.Unlock()

	status := "healthy"
	if !connected {
		status = "degraded"
	}
	return HealthStatus{
		Status:           status,
		Uptime:           time.Since(b.stats.started).Round(time.Second).String(),
		Connected:        connected,
		CommandsReceived: b.stats.received.Load(),
		LastCommandTime:  last,
	}
}

// CheckHealth fails while the gateway is disconnected.
func (b *Bot) CheckHealth(context.Context) error {
	if !b.Health().Connected {
		return ErrNotConnected
	}
	return nil
}
