package backend_di

import (
	"fmt"

	"github.com/lintang-b-s/osm-places/pkg/backend/overpass"
	"github.com/lintang-b-s/osm-places/pkg/backend/warehouse"
	"github.com/lintang-b-s/osm-places/pkg/di/config"
	"github.com/lintang-b-s/osm-places/pkg/kvdb"
	"github.com/lintang-b-s/osm-places/pkg/metrics"
	"github.com/lintang-b-s/osm-places/pkg/searcher"
	"github.com/lintang-b-s/osm-places/pkg/version"

	"go.uber.org/zap"
)

// New opens the backend selected by BACKEND, instrumented with metrics.
func New(cfg *config.Config, log *zap.Logger) (searcher.Backend, func(), error) {
	var (
		backend searcher.Backend
		cleanup = func() {}
	)

	switch cfg.Backend {
	case "overpass":
		backend = overpass.New(overpass.Config{
			URL:               cfg.OverpassURL,
			Timeout:           cfg.OverpassTimeout,
			RequestsPerSecond: cfg.OverpassRPS,
			UserAgent:         version.UserAgent(cfg.BaseURL, cfg.Contact),
		}, log)
	case "warehouse":
		w, err := warehouse.Open(cfg.WarehousePath, log)
		if err != nil {
			return nil, nil, err
		}
		backend = w
		cleanup = func() { _ = w.Close() }
	case "kv":
		kv, err := kvdb.Open(cfg.KVPath, log)
		if err != nil {
			return nil, nil, err
		}
		backend = kv
		cleanup = func() { _ = kv.Close() }
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	log.Info("using backend", zap.String("backend", backend.Name()))

	return metrics.InstrumentBackend(backend), cleanup, nil
}
