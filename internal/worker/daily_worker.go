package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/event"
	"github.com/osse101/PigFarmBot_Go/internal/logger"
	"github.com/osse101/PigFarmBot_Go/internal/notify"
)

// Roller is the slice of the farm service the daily job needs.
type Roller interface {
	Rollover(ctx context.Context) (*domain.RolloverResult, error)
}

// DailyWorker persists piglet ages and reminds owners of hungry pigs once a
// day, on a cron schedule evaluated in UTC.
type DailyWorker struct {
	farm      Roller
	notifier  notify.Notifier
	publisher *event.ResilientPublisher
	schedule  string
	cron      *cron.Cron
	pool      *Pool
	poolOnce  sync.Once
	running   sync.Mutex
}

// NewDailyWorker validates the schedule and prepares the worker. notifier and
// publisher may be nil.
func NewDailyWorker(farm Roller, notifier notify.Notifier, publisher *event.ResilientPublisher, schedule string) (*DailyWorker, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid daily job schedule %q: %w", schedule, err)
	}

	cl := cronLogger{log: slog.Default()}
	return &DailyWorker{
		farm:      farm,
		notifier:  notifier,
		publisher: publisher,
		schedule:  schedule,
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		pool: NewPool(DefaultReminderWorkers, DefaultReminderQueue),
	}, nil
}

// Start schedules the rollover and starts the reminder pool.
func (w *DailyWorker) Start() error {
	if _, err := w.cron.AddFunc(w.schedule, w.scheduledRun); err != nil {
		return fmt.Errorf("failed to schedule daily rollover: %w", err)
	}
	w.startPool()
	w.cron.Start()

	entries := w.cron.Entries()
	if len(entries) > 0 {
		logger.Info(LogMsgDailyRolloverScheduled, "schedule", w.schedule, "next_run_at", entries[0].Next)
	}
	return nil
}

func (w *DailyWorker) scheduledRun() {
	ctx, cancel := context.WithTimeout(context.Background(), RolloverTimeout)
	defer cancel()
	ctx = logger.WithRequestID(ctx, logger.GenerateRequestID())

	if _, err := w.RunOnce(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgDailyRolloverFailed, "error", err)
	}
}

// RunOnce performs one rollover: piglet ages are persisted, every owner of a
// hungry pig gets a reminder, and a completion event is published.
func (w *DailyWorker) RunOnce(ctx context.Context) (*domain.RolloverResult, error) {
	w.running.Lock()
	defer w.running.Unlock()

	log := logger.FromContext(ctx)
	log.Info(LogMsgDailyRolloverStarting)

	res, err := w.farm.Rollover(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to roll over farms: %w", err)
	}

	w.startPool()
	res.RemindersSent = w.remind(ctx, res.Hungry)

	log.Info(LogMsgDailyRolloverCompleted,
		"date", res.Date,
		"players_scanned", res.PlayersScanned,
		"piglets_aged", res.PigletsAged,
		"reminders_sent", res.RemindersSent)

	if w.publisher != nil {
		w.publisher.PublishWithRetry(ctx, event.NewDailyRolloverEvent(ctx, res.DailyRolloverPayload))
	}
	return res, nil
}

// remind fans the reminders out over the pool and returns how many were
// delivered.
func (w *DailyWorker) remind(ctx context.Context, recipients []string) int {
	if w.notifier == nil || len(recipients) == 0 {
		return 0
	}

	var (
		sent atomic.Int64
		wg   sync.WaitGroup
	)
	for i, id := range recipients {
		job := &reminderJob{parent: ctx, notifier: w.notifier, recipient: id, sent: &sent, done: wg.Done}
		wg.Add(1)
		if !w.pool.Enqueue(ctx, job) {
			wg.Done()
			logger.FromContext(ctx).Warn(LogMsgDailyRolloverInterrupted, "pending", len(recipients)-i)
			break
		}
	}
	wg.Wait()
	return int(sent.Load())
}

func (w *DailyWorker) startPool() {
	w.poolOnce.Do(w.pool.Start)
}

// Shutdown stops the schedule, waits for an in-flight rollover and drains
// queued reminders.
func (w *DailyWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgDailyWorkerStopping)

	stopped := w.cron.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
		log.Warn(LogMsgDailyWorkerStopTimeout)
		return ctx.Err()
	}

	done := make(chan struct{})
	go func() {
		w.pool.Stop()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgDailyWorkerStopped)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgDailyWorkerStopTimeout)
		return ctx.Err()
	}
}

// reminderJob delivers one hunger reminder.
type reminderJob struct {
	parent    context.Context
	notifier  notify.Notifier
	recipient string
	sent      *atomic.Int64
	done      func()
}

func (j *reminderJob) Process(context.Context) error {
	defer j.done()

	ctx := logger.WithPlayerID(j.parent, j.recipient)
	if err := j.notifier.Deliver(ctx, j.recipient, notify.MsgHungryReminder); err != nil {
		logger.FromContext(ctx).Warn(LogMsgReminderFailed, "error", err)
		return nil
	}
	j.sent.Add(1)
	return nil
}

// cronLogger routes cron's own logging through slog.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
