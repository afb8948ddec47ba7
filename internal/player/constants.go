package player

// Log messages
const (
	LogMsgRegisterCalled    = "Register called"
	LogMsgPlayerJoined      = "Player joined"
	LogMsgReferralCredited  = "Referral credited"
	LogMsgReferralCalled    = "Referral called"
	LogMsgTasksCalled       = "Tasks called"
	LogMsgClaimTaskCalled   = "ClaimTask called"
	LogMsgTaskClaimed       = "Task claimed"
	LogMsgReferrerIgnored   = "Referrer ignored"
	LogMsgRegisterRejected  = "Register rejected"
	LogMsgClaimTaskRejected = "ClaimTask rejected"
)

// Event item names
const (
	ItemJoinBonus = "join_bonus"
)
