package config

import "time"

// Store backends selectable with STORE_BACKEND
const (
	StoreBackendJSON     = "json"
	StoreBackendMemory   = "memory"
	StoreBackendPostgres = "postgres"
	StoreBackendMongo    = "mongo"
)

const (
	// Configuration file paths
	ConfigPathCatalog = "configs/economy.yaml"

	DefaultPort            = 8080
	DefaultDataDir         = "data"
	DefaultDeadLetterPath  = "data/events_deadletter.jsonl"
	DefaultDailyJobSpec    = "0 0 * * *"
	DefaultMongoDB         = "pigfarm"
	DefaultDBMaxConns      = 20
	DefaultDBMaxIdleTime   = 5 * time.Minute
	DefaultDBMaxLifetime   = 30 * time.Minute
	DefaultEventMaxRetries = 5
	DefaultEventRetryDelay = 2 * time.Second
)
