package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished = "events_published_total"
)

// Business metric names
const (
	MetricNameCommandsTotal   = "commands_total"
	MetricNameCoinsEarned     = "coins_earned_total"
	MetricNameCoinsSpent      = "coins_spent_total"
	MetricNamePigletsBorn     = "piglets_born_total"
	MetricNamePigletsTraded   = "piglets_traded_total"
	MetricNameFeedProduced    = "feed_produced_total"
	MetricNameFeedTraded      = "feed_traded_units_total"
	MetricNameTokensMoved     = "tokens_moved_total"
	MetricNameDailyRollovers  = "daily_rollovers_total"
	MetricNameHungerReminders = "hunger_reminders_sent_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished = "Total number of events published"
)

// Business metric help text
const (
	HelpTextCommandsTotal   = "Total number of chat commands by outcome"
	HelpTextCoinsEarned     = "Total coins credited to players"
	HelpTextCoinsSpent      = "Total coins debited from players"
	HelpTextPigletsBorn     = "Total number of piglets born"
	HelpTextPigletsTraded   = "Total number of piglets sold to or bought from the market"
	HelpTextFeedProduced    = "Total feed units produced by mills"
	HelpTextFeedTraded      = "Total feed units bought on the feed market"
	HelpTextTokensMoved     = "Total tokens moved, by event type"
	HelpTextDailyRollovers  = "Total number of completed daily rollovers"
	HelpTextHungerReminders = "Total number of hunger reminders sent"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelSource    = "source"
	LabelDirection = "direction"
	LabelCommand   = "command"
	LabelOutcome   = "outcome"
)

// Label values
const (
	DirectionSold   = "sold"
	DirectionBought = "bought"
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadInvalid = "Event payload could not be decoded"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
