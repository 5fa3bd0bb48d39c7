package searcher_di

import (
	"github.com/lintang-b-s/osm-places/pkg/di/config"
	"github.com/lintang-b-s/osm-places/pkg/docs"
	"github.com/lintang-b-s/osm-places/pkg/http/usecases"
	"github.com/lintang-b-s/osm-places/pkg/place"
	"github.com/lintang-b-s/osm-places/pkg/searcher"

	"go.uber.org/zap"
)

func NewProjector(cfg *config.Config) *place.Projector {
	return place.NewProjector(cfg.BaseURL)
}

func New(cfg *config.Config, backend searcher.Backend, projector *place.Projector, log *zap.Logger) usecases.Searcher {
	return searcher.NewSearcher(backend, projector, cfg.MaxSearchResults, log)
}

func NewReadme(cfg *config.Config) *docs.Readme {
	return docs.NewReadme(cfg.ReadmePath, "places.pub")
}
