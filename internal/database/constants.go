package database

// DefaultMinConnections is kept warm whenever a pool size is configured.
const DefaultMinConnections = 2

const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToMigrate         = "failed to apply migrations"
)

const (
	LogMsgConnected         = "Connected to PostgreSQL"
	LogMsgMigrationsApplied = "Database migrations applied"
)
