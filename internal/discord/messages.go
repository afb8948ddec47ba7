package discord

// Log messages
const (
	LogMsgBotReady             = "Discord bot is ready"
	LogMsgBotRunning           = "Discord bot is now running"
	LogMsgCheckingCommands     = "Checking Discord commands..."
	LogMsgCommandsUnchanged    = "Commands unchanged, skipping registration"
	LogMsgCommandsChanged      = "Commands changed, updating..."
	LogMsgCommandsUpdated      = "Commands updated successfully"
	LogMsgDeferFailed          = "Failed to send deferred response"
	LogMsgEditFailed           = "Failed to edit interaction response"
	LogMsgDispatchFailed       = "Command dispatch failed"
	LogMsgMissingInteractionBy = "Interaction without a user, ignoring"
)

// FooterPigFarm is the footer of every command reply embed
const FooterPigFarm = "PigFarm"

// Embed colours
const (
	ColorReply = 0xf4a6b8
	ColorError = 0xe74c3c
)
