// Package metrics provides Prometheus metrics for the resume-review pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "resume_review",
		Name:      "uploads_total",
		Help:      "Document uploads by outcome (stored, rejected_type, rejected_size, error).",
	}, []string{"outcome"})

	analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "resume_review",
		Name:      "analyses_total",
		Help:      "Analysis runs by outcome (ok, failed).",
	}, []string{"outcome"})

	deliveryAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "resume_review",
		Name:      "delivery_attempts_total",
		Help:      "Report delivery attempts by outcome (sent, retrying, exhausted).",
	}, []string{"outcome"})

	deliveryBatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "resume_review",
		Name:      "delivery_batch_size",
		Help:      "Number of due submissions claimed per ProcessDue run.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
	})
)

// RecordUpload counts one upload with the given outcome.
func RecordUpload(outcome string) {
	uploadsTotal.WithLabelValues(outcome).Inc()
}

// RecordAnalysis counts one analysis run with the given outcome.
func RecordAnalysis(outcome string) {
	analysesTotal.WithLabelValues(outcome).Inc()
}

// RecordDeliveryAttempt counts one delivery attempt with the given outcome.
func RecordDeliveryAttempt(outcome string) {
	deliveryAttemptsTotal.WithLabelValues(outcome).Inc()
}

// RecordDeliveryBatch records the size of one claimed delivery batch.
func RecordDeliveryBatch(n int) {
	deliveryBatchSize.Observe(float64(n))
}
