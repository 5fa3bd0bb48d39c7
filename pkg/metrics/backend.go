package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/lintang-b-s/osm-places/pkg/datastructure"
	"github.com/lintang-b-s/osm-places/pkg/searcher"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	backendQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "places",
			Name:      "backend_queries_total",
			Help:      "Total number of backend queries",
		},
		[]string{"backend", "operation", "kind", "mode", "status"},
	)

	backendQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "places",
			Name:      "backend_query_duration_seconds",
			Help:      "Backend query duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"backend", "operation"},
	)

	backendRowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "places",
			Name:      "backend_rows_total",
			Help:      "Total number of features returned by backend queries",
		},
		[]string{"backend", "kind"},
	)
)

func init() {
	prometheus.MustRegister(backendQueriesTotal)
	prometheus.MustRegister(backendQueryDuration)
	prometheus.MustRegister(backendRowsTotal)
}

type instrumentedBackend struct {
	next searcher.Backend
}

// InstrumentBackend wraps a backend so every lookup and query is counted and timed.
func InstrumentBackend(next searcher.Backend) searcher.Backend {
	return &instrumentedBackend{next: next}
}

func (b *instrumentedBackend) Name() string {
	return b.next.Name()
}

func (b *instrumentedBackend) Lookup(ctx context.Context, kind datastructure.Kind, id int64) (datastructure.RawFeature, error) {
	start := time.Now()
	f, err := b.next.Lookup(ctx, kind, id)
	b.observe("lookup", kind.String(), "", start, err)
	return f, err
}

func (b *instrumentedBackend) Query(ctx context.Context, criteria datastructure.SearchCriteria) ([]datastructure.RawFeature, error) {
	start := time.Now()
	features, err := b.next.Query(ctx, criteria)
	b.observe("query", criteria.Kind.String(), criteria.Mode.String(), start, err)
	if err == nil {
		backendRowsTotal.WithLabelValues(b.next.Name(), criteria.Kind.String()).Add(float64(len(features)))
	}
	return features, err
}

func (b *instrumentedBackend) observe(operation, kind, mode string, start time.Time, err error) {
	status := "ok"
	switch {
	case errors.Is(err, datastructure.ErrFeatureNotFound):
		status = "not_found"
	case err != nil:
		status = "error"
	}
	backendQueriesTotal.WithLabelValues(b.next.Name(), operation, kind, mode, status).Inc()
	backendQueryDuration.WithLabelValues(b.next.Name(), operation).Observe(time.Since(start).Seconds())
}
