package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	SyncPasses      *prometheus.CounterVec
	EntitiesSynced  *prometheus.CounterVec
	SyncDuration    prometheus.Histogram
	HistoryRecorded *prometheus.CounterVec
	ErrorsCount     *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		SyncPasses: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_passes_total",
			Help:      "The total number of completed sync passes per job",
		}, []string{"job"}),
		EntitiesSynced: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entities_synced_total",
			Help:      "The total number of upserted entities per category",
		}, []string{"category"}),
		SyncDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sync_pass_duration_seconds",
			Help:      "Time taken by a full sync pass",
			Buckets:   prometheus.DefBuckets,
		}),
		HistoryRecorded: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_rows_recorded_total",
			Help:      "The total number of appended history rows per table",
		}, []string{"table"}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
