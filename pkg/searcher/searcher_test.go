package searcher

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lintang-b-s/osm-places/pkg/apperr"
	"github.com/lintang-b-s/osm-places/pkg/datastructure"
	"github.com/lintang-b-s/osm-places/pkg/geo"
	"github.com/lintang-b-s/osm-places/pkg/place"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryBackend answers queries by filtering a fixed feature list with SearchCriteria.Matches.
type memoryBackend struct {
	features []datastructure.RawFeature
	issued   []datastructure.SearchCriteria
	queryErr error
	overflow int // extra rows returned beyond the limit
}

func (m *memoryBackend) Name() string {
	return "memory"
}

func (m *memoryBackend) Lookup(ctx context.Context, kind datastructure.Kind, id int64) (datastructure.RawFeature, error) {
	for _, f := range m.features {
		if f.Kind == kind && f.ID == id {
			return f, nil
		}
	}
	return datastructure.RawFeature{}, datastructure.ErrFeatureNotFound
}

func (m *memoryBackend) Query(ctx context.Context, criteria datastructure.SearchCriteria) ([]datastructure.RawFeature, error) {
	m.issued = append(m.issued, criteria)
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	results := []datastructure.RawFeature{}
	for _, f := range m.features {
		if len(results) >= criteria.Limit+m.overflow {
			break
		}
		if criteria.Matches(f) {
			results = append(results, f)
		}
	}
	return results, nil
}

func named(kind datastructure.Kind, id int64, name string, lat, lon float64) datastructure.RawFeature {
	f := datastructure.NewRawFeature(kind, id, map[string]string{"name": name})
	f.Position = &datastructure.Position{Lat: lat, Lon: lon}
	return f
}

func newTestSearcher(backend Backend) *Searcher {
	return NewSearcher(backend, place.NewProjector("https://places.pub"), DefaultMaxResults, zap.NewNop())
}

func TestSearchOrdersExactBeforePartial(t *testing.T) {
	backend := &memoryBackend{features: []datastructure.RawFeature{
		named(datastructure.KindRelation, 1, "Park Avenue District", 41.1, -8.6),
		named(datastructure.KindNode, 2, "Parking Norte", 41.1, -8.6),
		named(datastructure.KindWay, 3, "PARK", 41.1, -8.6),
		named(datastructure.KindNode, 4, "park", 41.1, -8.6),
		named(datastructure.KindWay, 5, "City Park", 41.1, -8.6),
		named(datastructure.KindRelation, 6, "Park", 41.1, -8.6),
		named(datastructure.KindNode, 7, "Cafe Luna", 41.1, -8.6),
	}}
	se := newTestSearcher(backend)

	results, err := se.Search(context.Background(), Request{Term: "park"})
	require.NoError(t, err)

	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{
		"https://places.pub/node/4",
		"https://places.pub/way/3",
		"https://places.pub/relation/6",
		"https://places.pub/node/2",
		"https://places.pub/way/5",
		"https://places.pub/relation/1",
	}, ids)

	require.Len(t, backend.issued, 6)
	for i, c := range backend.issued {
		wantMode := datastructure.MatchExact
		if i >= 3 {
			wantMode = datastructure.MatchPartial
		}
		assert.Equal(t, wantMode, c.Mode)
		assert.Equal(t, datastructure.Kinds[i%3], c.Kind)
	}
}

func TestSearchNeverReturnsExactMatchTwice(t *testing.T) {
	backend := &memoryBackend{features: []datastructure.RawFeature{
		named(datastructure.KindNode, 1, "Cafe Luna", 41.1, -8.6),
		named(datastructure.KindNode, 2, "Cafe Luna Nova", 41.1, -8.6),
	}}
	se := newTestSearcher(backend)

	results, err := se.Search(context.Background(), Request{Term: "cafe luna"})
	require.NoError(t, err)

	seen := map[string]int{}
	for _, r := range results {
		seen[r.ID]++
	}
	assert.Equal(t, map[string]int{"https://places.pub/node/1": 1, "https://places.pub/node/2": 1}, seen)
}

func TestSearchBudgetConsumedByExactPoints(t *testing.T) {
	features := make([]datastructure.RawFeature, 0, 130)
	for i := 0; i < 120; i++ {
		features = append(features, named(datastructure.KindNode, int64(i), "park", 41.5, -8.5))
	}
	for i := 0; i < 10; i++ {
		features = append(features, named(datastructure.KindWay, int64(i), "Park Way", 41.5, -8.5))
	}
	backend := &memoryBackend{features: features}
	se := newTestSearcher(backend)

	bb := geo.NewBoundingBox(-9, 41, -8, 42)
	results, err := se.Search(context.Background(), Request{Term: "park", BoundingBox: &bb})
	require.NoError(t, err)

	assert.Len(t, results, 100)
	require.Len(t, backend.issued, 1)
	assert.Equal(t, datastructure.KindNode, backend.issued[0].Kind)
	assert.Equal(t, datastructure.MatchExact, backend.issued[0].Mode)
	assert.Equal(t, 100, backend.issued[0].Limit)
	assert.Equal(t, &bb, backend.issued[0].BoundingBox)
}

func TestSearchLimitIsRemainingBudget(t *testing.T) {
	features := []datastructure.RawFeature{}
	for i := 0; i < 60; i++ {
		features = append(features, named(datastructure.KindNode, int64(i), "Praça", 41.1, -8.6))
	}
	for i := 0; i < 60; i++ {
		features = append(features, named(datastructure.KindWay, int64(i), "Praça da Liberdade", 41.1, -8.6))
	}
	backend := &memoryBackend{features: features}
	se := newTestSearcher(backend)

	results, err := se.Search(context.Background(), Request{Term: "praça"})
	require.NoError(t, err)
	assert.Len(t, results, 100)

	limits := []int{}
	for _, c := range backend.issued {
		limits = append(limits, c.Limit)
	}
	// exact node, exact way, exact relation, partial node, partial way; partial relation is skipped.
	assert.Equal(t, []int{100, 40, 40, 40, 40}, limits)
}

func TestSearchWithoutTermUsesAnyMode(t *testing.T) {
	backend := &memoryBackend{features: []datastructure.RawFeature{
		named(datastructure.KindNode, 1, "Inside", 41.5, -8.5),
		named(datastructure.KindNode, 2, "Outside", 10, 10),
		datastructure.NewRawFeature(datastructure.KindWay, 3, map[string]string{"highway": "residential"}),
	}}
	se := newTestSearcher(backend)

	bb := geo.NewBoundingBox(-9, 41, -8, 42)
	results, err := se.Search(context.Background(), Request{BoundingBox: &bb})
	require.NoError(t, err)

	assert.Equal(t, []datastructure.PlaceSummary{{ID: "https://places.pub/node/1", Type: "Place", Name: "Inside"}}, results)
	require.Len(t, backend.issued, 3)
	for _, c := range backend.issued {
		assert.Equal(t, datastructure.MatchAny, c.Mode)
		assert.Empty(t, c.Term)
	}
}

func TestSearchBackendErrors(t *testing.T) {
	t.Run("query failure is terminal", func(t *testing.T) {
		backend := &memoryBackend{queryErr: errors.New("overpass error 504")}
		se := newTestSearcher(backend)

		_, err := se.Search(context.Background(), Request{Term: "park"})
		require.Error(t, err)
		assert.Equal(t, apperr.KindBackend, apperr.KindOf(err))
		assert.Len(t, backend.issued, 1)
	})

	t.Run("more rows than the limit", func(t *testing.T) {
		features := []datastructure.RawFeature{}
		for i := 0; i < 105; i++ {
			features = append(features, named(datastructure.KindNode, int64(i), "park", 0, 0))
		}
		backend := &memoryBackend{features: features, overflow: 5}
		se := newTestSearcher(backend)

		_, err := se.Search(context.Background(), Request{Term: "park"})
		require.Error(t, err)
		assert.Equal(t, apperr.KindBackend, apperr.KindOf(err))
	})
}

func TestSearchResultCountNeverExceedsMax(t *testing.T) {
	for _, max := range []int{1, 7, 100} {
		t.Run(fmt.Sprintf("max %d", max), func(t *testing.T) {
			features := []datastructure.RawFeature{}
			for _, kind := range datastructure.Kinds {
				for i := 0; i < 50; i++ {
					features = append(features, named(kind, int64(i), "Rua", 0, 0))
					features = append(features, named(kind, int64(100+i), "Rua Nova", 0, 0))
				}
			}
			se := NewSearcher(&memoryBackend{features: features}, place.NewProjector(""), max, nil)

			results, err := se.Search(context.Background(), Request{Term: "rua"})
			require.NoError(t, err)
			assert.Len(t, results, max)
		})
	}
}

func TestLookup(t *testing.T) {
	backend := &memoryBackend{features: []datastructure.RawFeature{
		named(datastructure.KindNode, 1, "Cafe Luna", 41.14961, -8.61099),
	}}
	se := newTestSearcher(backend)

	t.Run("found", func(t *testing.T) {
		f, err := se.Lookup(context.Background(), datastructure.KindNode, 1)
		require.NoError(t, err)
		assert.Equal(t, "Cafe Luna", f.Name())
	})

	t.Run("missing id is not found, not a backend error", func(t *testing.T) {
		_, err := se.Lookup(context.Background(), datastructure.KindNode, 999)
		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
		assert.NotEqual(t, apperr.KindBackend, apperr.KindOf(err))
	})
}

type failingLookupBackend struct {
	memoryBackend
}

func (f *failingLookupBackend) Lookup(ctx context.Context, kind datastructure.Kind, id int64) (datastructure.RawFeature, error) {
	return datastructure.RawFeature{}, errors.New("connection reset")
}

func TestLookupBackendError(t *testing.T) {
	se := newTestSearcher(&failingLookupBackend{})
	_, err := se.Lookup(context.Background(), datastructure.KindWay, 1)
	require.Error(t, err)
	assert.Equal(t, apperr.KindBackend, apperr.KindOf(err))
}
