package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// ServiceName tags every log line
	ServiceName = "pigfarm"

	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older log files kept next to the new one
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgStartingPigFarm     = "Starting PigFarm"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Event System
// =============================================================================

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

// Log messages for event handler registration
const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgNotifySubscriberRegistered = "Notification subscriber registered"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
)

// =============================================================================
// Store and Catalog
// =============================================================================

const (
	LogMsgStoreOpened            = "Store opened"
	LogMsgMigrationsApplied      = "Database migrations applied"
	LogMsgCatalogOfferTTLApplied = "Market offer TTL overridden from environment"
	ErrMsgUnknownStoreBackend    = "unknown store backend"
	ErrMsgFailedOpenStore        = "failed to open store"
	ErrMsgFailedLoadCatalog      = "failed to load catalog"
)

// =============================================================================
// Notifications
// =============================================================================

const (
	LogMsgNotifiersConfigured = "Notifiers configured"
	NotifierNameLog           = "log"
	NotifierNameDiscord       = "discord"
	NotifierNameWebhook       = "webhook"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgDailyWorkerFailed          = "Daily worker shutdown failed"
	LogMsgBotStopFailed              = "Discord bot shutdown failed"
	LogMsgStoreCloseFailed           = "Store close failed"
)
