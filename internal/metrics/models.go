package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(modelListFetches) }

// Model list sources.
const (
	SourceLive  = "live"
	SourceCache = "cache"
	SourceNone  = "none"
)

var modelListFetches = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "model_list_fetches_total",
		Help: "Model list lookups by the source that answered them.",
	},
	[]string{"source"},
)

func ModelListServed(source string) {
	modelListFetches.WithLabelValues(source).Inc()
}
