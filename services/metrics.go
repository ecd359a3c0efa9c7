package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	logsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lunajoy_logs_submitted_total",
		Help: "Mental health logs successfully persisted.",
	})
	eventsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lunajoy_realtime_events_published_total",
		Help: "Realtime events enqueued to a joined session.",
	})
	eventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lunajoy_realtime_events_dropped_total",
		Help: "Realtime events dropped because a session's queue was full.",
	})
	sessionsJoined = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lunajoy_realtime_sessions",
		Help: "Sessions currently joined to a room.",
	})
)
