//go:build wireinject

//go:generate wire
package di

import (
	"context"

	backend_di "github.com/lintang-b-s/osm-places/pkg/di/backend"
	"github.com/lintang-b-s/osm-places/pkg/di/config"
	shortcontext "github.com/lintang-b-s/osm-places/pkg/di/context"
	logger_di "github.com/lintang-b-s/osm-places/pkg/di/logger"
	searcher_di "github.com/lintang-b-s/osm-places/pkg/di/searcher"
	"github.com/lintang-b-s/osm-places/pkg/docs"
	placesHttp "github.com/lintang-b-s/osm-places/pkg/http"
	"github.com/lintang-b-s/osm-places/pkg/http/http-router/controllers"
	"github.com/lintang-b-s/osm-places/pkg/http/usecases"
	"github.com/lintang-b-s/osm-places/pkg/place"

	"github.com/google/wire"
	"go.uber.org/zap"
)

var defaultSet = wire.NewSet(
	shortcontext.New,
	config.New,
	logger_di.New,
	backend_di.New,
	searcher_di.NewProjector,
	searcher_di.New,
	searcher_di.NewReadme,
)

var placesSet = wire.NewSet(
	defaultSet,
	NewPlaceService,
	NewPlacesAPIServer,
)

func NewPlaceService(log *zap.Logger, searcher usecases.Searcher, projector *place.Projector) controllers.PlaceService {
	return usecases.New(log, searcher, projector)
}

func NewPlacesAPIServer(ctx context.Context, log *zap.Logger,
	placeService controllers.PlaceService, readme *docs.Readme) (*placesHttp.Server, error) {
	api := placesHttp.NewServer(log)

	apiService, err := api.Use(
		ctx, log, placeService, readme,
	)
	if err != nil {
		return nil, err
	}

	return apiService, nil
}

func InitializePlacesService() (*placesHttp.Server, func(), error) {

	panic(wire.Build(placesSet))
}
