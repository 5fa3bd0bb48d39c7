package usecases

import (
	"context"

	"github.com/lintang-b-s/osm-places/pkg/datastructure"
	"github.com/lintang-b-s/osm-places/pkg/searcher"
)

type Searcher interface {
	Search(ctx context.Context, req searcher.Request) ([]datastructure.PlaceSummary, error)
	Lookup(ctx context.Context, kind datastructure.Kind, id int64) (datastructure.RawFeature, error)
}

type Projector interface {
	Project(raw datastructure.RawFeature) datastructure.Place
	BaseURL() string
}
