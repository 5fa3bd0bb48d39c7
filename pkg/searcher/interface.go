package searcher

import (
	"context"

	"github.com/lintang-b-s/osm-places/pkg/datastructure"
)

// Backend is a geodata store the searcher can query. Implementations own their timeouts and retries.
type Backend interface {
	Name() string
	// Lookup returns datastructure.ErrFeatureNotFound when no element has that kind and id.
	Lookup(ctx context.Context, kind datastructure.Kind, id int64) (datastructure.RawFeature, error)
	// Query returns at most criteria.Limit features, in a backend-defined order.
	Query(ctx context.Context, criteria datastructure.SearchCriteria) ([]datastructure.RawFeature, error)
}

type Summarizer interface {
	Summarize(raw datastructure.RawFeature) datastructure.PlaceSummary
}
