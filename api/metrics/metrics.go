package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CheckoutRequestsTotal counts checkout attempts by outcome.
	CheckoutRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bayanlab",
		Subsystem: "commerce",
		Name:      "checkout_requests_total",
		Help:      "Checkout session requests by tier and outcome.",
	}, []string{"tier", "outcome"})

	// WebhookRequestsTotal counts Stripe webhook requests by event type and status.
	WebhookRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bayanlab",
		Subsystem: "commerce",
		Name:      "webhook_requests_total",
		Help:      "Total Stripe webhook requests by event type and HTTP status.",
	}, []string{"event_type", "status"})

	WebhookDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bayanlab",
		Subsystem: "commerce",
		Name:      "webhook_duration_seconds",
		Help:      "Stripe webhook processing duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"event_type"})

	// ProvisioningTotal counts key provisioning attempts and outcomes.
	ProvisioningTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bayanlab",
		Subsystem: "commerce",
		Name:      "provisioning_total",
		Help:      "API key provisioning calls by outcome.",
	}, []string{"outcome"})

	NotificationTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bayanlab",
		Subsystem: "commerce",
		Name:      "notification_total",
		Help:      "Purchase emails by outcome.",
	}, []string{"outcome"})

	// DataAPICacheTotal counts data API cache lookups.
	DataAPICacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bayanlab",
		Subsystem: "commerce",
		Name:      "data_api_cache_total",
		Help:      "Data API cache lookups by resource and result (hit/miss).",
	}, []string{"resource", "result"})
)
