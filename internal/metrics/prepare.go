package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Prepare outcome labels.
const (
	StatusOK               = "ok"
	StatusTypeMismatch     = "type_mismatch"
	StatusInvalidParameter = "invalid_parameter"
	StatusUnsupported      = "unsupported"
	StatusError            = "error"
)

// Request preparation metrics.
var (
	PrepareRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prepare_requests_total",
			Help:      "Total number of request preparations by operation and outcome",
		},
		[]string{"operation", "status"},
	)

	PrepareVectorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prepare_vectors_total",
			Help:      "Total number of vectors carried by prepared requests",
		},
		[]string{"operation"},
	)
)

var registerPrepare sync.Once

// RegisterPrepareMetrics registers the preparation metrics with the default
// registry. Safe to call more than once.
func RegisterPrepareMetrics() {
	registerPrepare.Do(func() {
		prometheus.MustRegister(PrepareRequestsTotal, PrepareVectorsTotal)
	})
}
