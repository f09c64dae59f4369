package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		streamsStarted,
		streamsFinished,
		streamTokens,
		malformedLines,
		generationSpeed,
	)
}

// Stream outcomes.
const (
	OutcomeCompleted = "completed"
	OutcomeFailed    = "failed"
	OutcomeCancelled = "cancelled"
)

var (
	streamsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_streams_started_total",
			Help: "Chat completion streams opened, per model.",
		},
		[]string{"model"},
	)

	streamsFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_streams_finished_total",
			Help: "Chat completion streams finished, per model and outcome.",
		},
		[]string{"model", "outcome"},
	)

	streamTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_stream_tokens_total",
			Help: "Token events received from the model server, per model.",
		},
		[]string{"model"},
	)

	malformedLines = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_stream_malformed_lines_total",
			Help: "Stream lines skipped because they did not decode.",
		},
	)

	generationSpeed = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chat_generation_tokens_per_second",
			Help:    "Generation speed reported by terminal stream events.",
			Buckets: []float64{1, 2, 5, 10, 20, 40, 80, 160},
		},
		[]string{"model"},
	)
)

func StreamStarted(model string) {
	streamsStarted.WithLabelValues(model).Inc()
}

func StreamFinished(model, outcome string) {
	streamsFinished.WithLabelValues(model, outcome).Inc()
}

func TokenReceived(model string) {
	streamTokens.WithLabelValues(model).Inc()
}

func MalformedLine() {
	malformedLines.Inc()
}

func ObserveGenerationSpeed(model string, tokensPerSecond float64) {
	generationSpeed.WithLabelValues(model).Observe(tokensPerSecond)
}
