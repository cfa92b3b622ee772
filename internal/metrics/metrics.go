package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DocumentsFlattened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plaintext_documents_flattened_total",
			Help: "Total documents converted to plain text",
		},
		[]string{"format", "status"},
	)

	FlattenLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "plaintext_flatten_latency_seconds",
			Help:    "Time spent parsing and flattening a document",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"format"},
	)

	FlattenedBytes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plaintext_flattened_bytes_total",
			Help: "Total bytes of plain text produced",
		},
		[]string{"format"},
	)

	TranslationsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plaintext_translations_resolved_total",
			Help: "Translatable components resolved, by outcome (hit, fallback, missing)",
		},
		[]string{"locale", "outcome"},
	)
)
