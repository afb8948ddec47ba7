package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCommandsTotal,
			Help: HelpTextCommandsTotal,
		},
		[]string{LabelCommand, LabelOutcome},
	)

	CoinsEarned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCoinsEarned,
			Help: HelpTextCoinsEarned,
		},
		[]string{LabelSource},
	)

	CoinsSpent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCoinsSpent,
			Help: HelpTextCoinsSpent,
		},
		[]string{LabelSource},
	)

	PigletsBorn = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePigletsBorn,
			Help: HelpTextPigletsBorn,
		},
		[]string{LabelType},
	)

	PigletsTraded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePigletsTraded,
			Help: HelpTextPigletsTraded,
		},
		[]string{LabelType, LabelDirection},
	)

	FeedProduced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFeedProduced,
			Help: HelpTextFeedProduced,
		},
		[]string{LabelType},
	)

	FeedTraded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameFeedTraded,
			Help: HelpTextFeedTraded,
		},
	)

	TokensMoved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTokensMoved,
			Help: HelpTextTokensMoved,
		},
		[]string{LabelType},
	)

	DailyRollovers = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDailyRollovers,
			Help: HelpTextDailyRollovers,
		},
	)

	HungerReminders = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameHungerReminders,
			Help: HelpTextHungerReminders,
		},
	)
)
