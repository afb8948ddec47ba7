package farm

// Log messages
const (
	LogMsgAcquirePigCalled = "AcquirePig called"
	LogMsgFeedPigCalled    = "FeedPig called"
	LogMsgBreedCalled      = "Breed called"
	LogMsgCheckBreedCalled = "CheckBreed called"
	LogMsgStatusCalled     = "Status called"
	LogMsgRolloverStarted  = "Daily rollover started"
	LogMsgRolloverFinished = "Daily rollover finished"

	LogMsgPigAcquired  = "Pig acquired"
	LogMsgPigFed       = "Pig fed"
	LogMsgPigBred      = "Pig bred"
	LogMsgLitterBorn   = "Litter born"
	LogMsgOpRejected   = "Farm operation rejected"
	LogMsgPlayerJoined = "Player joined through pig purchase"
)

// Event item names
const (
	ItemPig       = "pig"
	ItemMeal      = "meal"
	ItemBreeding  = "breeding"
	ItemJoinBonus = "join_bonus"
)
