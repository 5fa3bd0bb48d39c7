package controllers

import (
	"context"

	"github.com/lintang-b-s/osm-places/pkg/datastructure"
	"github.com/lintang-b-s/osm-places/pkg/searcher"
)

type PlaceService interface {
	GetPlace(ctx context.Context, kind, id string) (datastructure.Place, error)
	Search(ctx context.Context, params searcher.RawParams, requestURI string) (datastructure.Collection, error)
}

type HomePage interface {
	Page() ([]byte, error)
}
