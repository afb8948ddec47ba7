package plant

// Ledger sources
const (
	LedgerSourceStart   = "plant_start"
	LedgerSourceUpgrade = "plant_upgrade"
	LedgerSourcePrefix  = "plant_"
)

// Log messages
const (
	LogMsgStartCalled   = "StartPlant called"
	LogMsgProcessCalled = "ProcessPiglet called"
	LogMsgStatusCalled  = "PlantStatus called"
	LogMsgUpgradeCalled = "UpgradePlant called"
	LogMsgPlantStarted  = "Plant started"
	LogMsgProcessed     = "Piglet processed"
	LogMsgPlantUpgraded = "Plant upgraded"
	LogMsgOpRejected    = "Plant operation rejected"
)
