package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Query compilation metrics.
var (
	CompiledQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compiled_queries_total",
			Help:      "Total number of compiled search documents",
		},
		[]string{"entity", "keywords"}, // keywords: "text" / "match_all"
	)

	CompiledFiltersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compiled_filters_total",
			Help:      "Filters seen by the compiler, by outcome",
		},
		[]string{"kind"}, // "match" / "range" / "dropped"
	)

	CompileDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "compile_duration_seconds",
			Help:      "Time spent compiling a search document",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005},
		},
		[]string{"entity"},
	)
)

var registerOnce sync.Once

// Register registers all collectors with the default registry. Safe to call
// more than once; must be called from main before serving.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestDuration,
			httpRequestsTotal,
			CompiledQueriesTotal,
			CompiledFiltersTotal,
			CompileDuration,
		)
	})
}
