// Package metrics defines the Prometheus collectors of the process.
package metrics

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "filmorate"

// Cache lookup results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Metrics groups the application collectors.
type Metrics struct {
	// CacheRequests counts ranking cache lookups by result.
	CacheRequests *prometheus.CounterVec
	// StorageErrors counts failed storage statements by operation.
	StorageErrors *prometheus.CounterVec
}

// New creates the collectors and registers them, together with the Go and
// process collectors, on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ranking_cache",
			Name:      "requests_total",
			Help:      "Popularity ranking cache lookups by result.",
		}, []string{"result"}),
		StorageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "errors_total",
			Help:      "Failed storage operations by operation name.",
		}, []string{"op"}),
	}
	reg.MustRegister(
		m.CacheRequests,
		m.StorageErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RegisterDBStats exports connection pool statistics of db under dbName.
func RegisterDBStats(reg prometheus.Registerer, db *sql.DB, dbName string) error {
	return reg.Register(collectors.NewDBStatsCollector(db, dbName))
}
