package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	answerRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "linkai",
		Subsystem: "chatbot",
		Name:      "answer_requests_total",
		Help:      "Answer requests by outcome (answered, no_information, cached).",
	}, []string{"outcome"})

	candidateCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "linkai",
		Subsystem: "retrieval",
		Name:      "candidates_total",
		Help:      "Merged candidates by source.",
	}, []string{"source"})

	generateDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "linkai",
		Subsystem: "chatbot",
		Name:      "generate_duration_seconds",
		Help:      "Latency of answer generation including fallbacks.",
		Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
	})

	indexSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "linkai",
		Subsystem: "retrieval",
		Name:      "index_records",
		Help:      "Number of records in the in-memory patent index.",
	})
)
