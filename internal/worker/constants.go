package worker

import "time"

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// ============================================================================
// Log Messages - Daily Worker
// ============================================================================

// Log messages for daily worker operations
const (
	LogMsgDailyRolloverStarting    = "Daily rollover starting"
	LogMsgDailyRolloverCompleted   = "Daily rollover completed"
	LogMsgDailyRolloverFailed      = "Daily rollover failed"
	LogMsgDailyRolloverScheduled   = "Daily rollover scheduled"
	LogMsgReminderFailed           = "Hunger reminder delivery failed"
	LogMsgDailyWorkerStopping      = "Shutting down daily worker"
	LogMsgDailyWorkerStopped       = "Daily worker shutdown complete"
	LogMsgDailyWorkerStopTimeout   = "Daily worker shutdown timeout, a rollover may still be running"
	LogMsgDailyRolloverInterrupted = "Daily rollover interrupted before all reminders were sent"
)

// ============================================================================
// Defaults
// ============================================================================

const (
	// DefaultSchedule runs the rollover at midnight UTC.
	DefaultSchedule = "0 0 * * *"

	// DefaultReminderWorkers bounds concurrent reminder deliveries.
	DefaultReminderWorkers = 4
	DefaultReminderQueue   = 64

	// RolloverTimeout caps one scheduled run.
	RolloverTimeout = 10 * time.Minute
)
