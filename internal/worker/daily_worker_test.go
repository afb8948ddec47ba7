package worker

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PigFarmBot_Go/internal/catalog"
	"github.com/osse101/PigFarmBot_Go/internal/clock"
	"github.com/osse101/PigFarmBot_Go/internal/database/memory"
	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/event"
	"github.com/osse101/PigFarmBot_Go/internal/farm"
	"github.com/osse101/PigFarmBot_Go/internal/metrics"
	"github.com/osse101/PigFarmBot_Go/internal/notify"
	"github.com/osse101/PigFarmBot_Go/internal/testing/testkit"
)

type stubRoller struct {
	res *domain.RolloverResult
	err error
}

func (s *stubRoller) Rollover(context.Context) (*domain.RolloverResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := *s.res
	out.Hungry = append([]string(nil), s.res.Hungry...)
	return &out, nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages map[string]string
	failFor  string
}

func (n *recordingNotifier) Deliver(_ context.Context, recipient, message string) error {
	if recipient == n.failFor {
		return errors.New("dm closed")
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.messages == nil {
		n.messages = map[string]string{}
	}
	n.messages[recipient] = message
	return nil
}

func newPublisher(t *testing.T) (*event.ResilientPublisher, *testkit.RecordingBus) {
	t.Helper()
	bus := testkit.NewRecordingBus()
	p, err := event.NewResilientPublisher(bus, 1, time.Millisecond, filepath.Join(t.TempDir(), "dead.jsonl"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })
	return p, bus
}

func TestNewDailyWorker_Schedule(t *testing.T) {
	w, err := NewDailyWorker(&stubRoller{}, nil, nil, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultSchedule, w.schedule)

	_, err = NewDailyWorker(&stubRoller{}, nil, nil, "every day")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid daily job schedule")
}

func TestDailyWorker_RunOnce(t *testing.T) {
	roller := &stubRoller{res: &domain.RolloverResult{
		DailyRolloverPayload: domain.DailyRolloverPayload{Date: "2025-03-12", PigletsAged: 4, PlayersScanned: 3},
		Hungry:               []string{"1", "2", "3"},
	}}
	notifier := &recordingNotifier{failFor: "2"}
	publisher, bus := newPublisher(t)
	require.NoError(t, metrics.NewEventMetricsCollector().Register(bus))

	w, err := NewDailyWorker(roller, notifier, publisher, DefaultSchedule)
	require.NoError(t, err)
	defer func() { require.NoError(t, w.Shutdown(context.Background())) }()

	rollovers := testutil.ToFloat64(metrics.DailyRollovers)
	reminders := testutil.ToFloat64(metrics.HungerReminders)

	res, err := w.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, res.RemindersSent)
	assert.Equal(t, map[string]string{"1": notify.MsgHungryReminder, "3": notify.MsgHungryReminder}, notifier.messages)
	assert.Equal(t, rollovers+1, testutil.ToFloat64(metrics.DailyRollovers))
	assert.Equal(t, reminders+2, testutil.ToFloat64(metrics.HungerReminders))

	evt, ok := bus.Last(domain.EventTypeDailyRolloverComplete)
	require.True(t, ok)
	payload, err := event.DecodePayload[domain.DailyRolloverPayload](evt.Payload)
	require.NoError(t, err)
	assert.Equal(t, domain.Date("2025-03-12"), payload.Date)
	assert.Equal(t, 2, payload.RemindersSent)
	assert.Equal(t, 4, payload.PigletsAged)
}

func TestDailyWorker_RunOnceWithoutNotifier(t *testing.T) {
	roller := &stubRoller{res: &domain.RolloverResult{Hungry: []string{"1"}}}
	w, err := NewDailyWorker(roller, nil, nil, DefaultSchedule)
	require.NoError(t, err)

	res, err := w.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.RemindersSent)
	require.NoError(t, w.Shutdown(context.Background()))
}

func TestDailyWorker_RolloverError(t *testing.T) {
	publisher, bus := newPublisher(t)
	w, err := NewDailyWorker(&stubRoller{err: errors.New("store offline")}, &recordingNotifier{}, publisher, DefaultSchedule)
	require.NoError(t, err)

	_, err = w.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to roll over farms")
	assert.Empty(t, bus.Types())
	require.NoError(t, w.Shutdown(context.Background()))
}

func TestDailyWorker_WithFarmService(t *testing.T) {
	store, _ := memory.NewStore()
	clk := clock.NewFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	svc := farm.NewService(store, catalog.Default(), clk, nil, nil)
	ctx := context.Background()

	for _, id := range []string{"1", "2"} {
		_, err := svc.AcquirePig(ctx, id, "p"+id)
		require.NoError(t, err)
	}
	clk.AdvanceDays(1)
	_, err := svc.FeedPig(ctx, "2")
	require.NoError(t, err)
	clk.AdvanceDays(1)

	notifier := &recordingNotifier{}
	w, err := NewDailyWorker(svc, notifier, nil, DefaultSchedule)
	require.NoError(t, err)

	res, err := w.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, res.Hungry)
	assert.Equal(t, 1, res.RemindersSent)
	assert.Contains(t, notifier.messages, "1")
	require.NoError(t, w.Shutdown(ctx))
}

func TestDailyWorker_StartAndShutdown(t *testing.T) {
	checker := testkit.NewGoroutineChecker(t)

	w, err := NewDailyWorker(&stubRoller{res: &domain.RolloverResult{}}, &recordingNotifier{}, nil, "@every 1h")
	require.NoError(t, err)
	require.NoError(t, w.Start())
	require.Len(t, w.cron.Entries(), 1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, w.Shutdown(ctx))

	checker.Check(0)
}
