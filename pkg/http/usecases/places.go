package usecases

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/lintang-b-s/osm-places/pkg/datastructure"
	"github.com/lintang-b-s/osm-places/pkg/searcher"

	"go.uber.org/zap"
)

type PlaceService struct {
	log       *zap.Logger
	searcher  Searcher
	projector Projector
}

func New(log *zap.Logger, searcher Searcher, projector Projector) *PlaceService {
	return &PlaceService{
		log:       log,
		searcher:  searcher,
		projector: projector,
	}
}

// GetPlace looks up one osm object and projects it into a Place document.
func (s *PlaceService) GetPlace(ctx context.Context, kind, id string) (datastructure.Place, error) {
	k, osmID, err := searcher.ValidateLookup(kind, id)
	if err != nil {
		return datastructure.Place{}, err
	}

	raw, err := s.searcher.Lookup(ctx, k, osmID)
	if err != nil {
		return datastructure.Place{}, err
	}
	return s.projector.Project(raw), nil
}

// Search validates the query parameters, runs the bounded search and wraps the summaries in a
// Collection whose id is the request uri on the public base url.
func (s *PlaceService) Search(ctx context.Context, params searcher.RawParams, requestURI string) (datastructure.Collection, error) {
	req, err := searcher.ValidateRequest(params)
	if err != nil {
		return datastructure.Collection{}, err
	}

	items, err := s.searcher.Search(ctx, req)
	if err != nil {
		return datastructure.Collection{}, err
	}
	s.log.Debug("search finished",
		zap.String("q", params.Query),
		zap.String("bbox", params.BBox),
		zap.Int("results", len(items)))

	id := s.projector.BaseURL() + requestURI
	return datastructure.NewCollection(id, collectionName(s.projector.BaseURL(), params), items), nil
}

func collectionName(baseURL string, params searcher.RawParams) string {
	site := baseURL
	if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
		site = u.Host
	}

	parts := []string{site + " search results"}
	if params.Query != "" {
		parts = append(parts, fmt.Sprintf("for query %q", params.Query))
	}
	if params.BBox != "" {
		parts = append(parts, fmt.Sprintf("inside bounding box (%s)", params.BBox))
	}
	return strings.Join(parts, " ")
}
