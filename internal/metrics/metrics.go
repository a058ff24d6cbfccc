package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// QuestionsTotal counts submissions by final outcome: answered,
	// retrieval_error or completion_error.
	QuestionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ragqa",
		Name:      "questions_total",
		Help:      "Questions handled, labeled by outcome.",
	}, []string{"outcome"})

	// RetrievalTotal counts retriever invocations by result.
	RetrievalTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ragqa",
		Subsystem: "retrieval",
		Name:      "calls_total",
		Help:      "Retrieval tool invocations, labeled by result (ok, not_found, tool_error, unexpected).",
	}, []string{"result"})

	RetrievalDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ragqa",
		Subsystem: "retrieval",
		Name:      "duration_seconds",
		Help:      "Wall time of one retrieval tool invocation.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	})

	CompletionTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ragqa",
		Subsystem: "completion",
		Name:      "calls_total",
		Help:      "Completion API calls, labeled by result (ok, error).",
	}, []string{"result"})

	CompletionDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ragqa",
		Subsystem: "completion",
		Name:      "duration_seconds",
		Help:      "Wall time of one completion API call.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 60},
	})
)

// Register adds the collectors to the default registry once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			QuestionsTotal,
			RetrievalTotal,
			RetrievalDurationSeconds,
			CompletionTotal,
			CompletionDurationSeconds,
		)
	})
}
