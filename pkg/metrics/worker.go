package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EmailsProcessed counts pipeline runs by terminal outcome.
	EmailsProcessed = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "fulfillment_emails_processed_total",
			Help: "Payment emails run through the fulfillment pipeline, by outcome.",
		},
		[]string{"outcome"},
	)

	// ProvisioningDuration observes outbound partner API call latency.
	ProvisioningDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fulfillment_provisioning_call_seconds",
			Help:    "Duration of partner API calls, by operation and status.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "status"},
	)

	// PollCycles counts mailbox poll cycles.
	PollCycles = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Name: "fulfillment_poll_cycles_total",
			Help: "Completed mailbox poll cycles.",
		},
	)

	// PollCycleErrors counts poll cycles that failed before processing messages.
	PollCycleErrors = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Name: "fulfillment_poll_cycle_errors_total",
			Help: "Poll cycles aborted by a mailbox connection or search failure.",
		},
	)
)
