package notifier

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifier_events_published_total",
			Help: "Total number of notification events published",
		},
		[]string{"type", "target"},
	)

	EventsDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifier_events_dropped_total",
			Help: "Total number of notification deliveries dropped after a publish failure",
		},
		[]string{"type", "target"},
	)
)
