package overpass

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lintang-b-s/osm-places/pkg/datastructure"
	"github.com/lintang-b-s/osm-places/pkg/geo"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchQuery(t *testing.T) {
	bb := geo.NewBoundingBox(-9, 41, -8, 42.5)

	tests := []struct {
		name     string
		criteria datastructure.SearchCriteria
		want     string
	}{
		{
			name:     "exact with bounding box",
			criteria: datastructure.SearchCriteria{Term: "park", BoundingBox: &bb, Kind: datastructure.KindNode, Mode: datastructure.MatchExact, Limit: 100},
			want:     "[out:json][timeout:25];\nnode(41,-9,42.5,-8)[\"name\"~\"^park$\",i];\nout tags 100;",
		},
		{
			name:     "partial excludes exact",
			criteria: datastructure.SearchCriteria{Term: "park", Kind: datastructure.KindWay, Mode: datastructure.MatchPartial, Limit: 7},
			want:     "[out:json][timeout:25];\nway[\"name\"~\"park\",i][\"name\"!~\"^park$\",i];\nout tags 7;",
		},
		{
			name:     "any named feature",
			criteria: datastructure.SearchCriteria{BoundingBox: &bb, Kind: datastructure.KindRelation, Mode: datastructure.MatchAny, Limit: 1},
			want:     "[out:json][timeout:25];\nrelation(41,-9,42.5,-8)[\"name\"];\nout tags 1;",
		},
		{
			name:     "term is escaped",
			criteria: datastructure.SearchCriteria{Term: `St. "Mary" (old)`, Kind: datastructure.KindNode, Mode: datastructure.MatchExact, Limit: 3},
			want:     "[out:json][timeout:25];\nnode[\"name\"~\"^St\\\\. \\\"Mary\\\" \\\\(old\\\\)$\",i];\nout tags 3;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, searchQuery(tt.criteria, 25*time.Second))
		})
	}
}

func TestLookupQuery(t *testing.T) {
	assert.Equal(t, "[out:json][timeout:60];\nway(123);\nout geom;", lookupQuery(datastructure.KindWay, 123, time.Minute))
}

func newTestServer(t *testing.T, status int, body string, gotQuery *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "osm-places/test", r.Header.Get("User-Agent"))
		assert.NoError(t, r.ParseForm())
		if gotQuery != nil {
			*gotQuery = r.PostForm.Get("data")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(url string) *Client {
	return New(Config{URL: url, Timeout: 5 * time.Second, UserAgent: "osm-places/test"}, nil)
}

func TestLookupNode(t *testing.T) {
	var query string
	srv := newTestServer(t, http.StatusOK, `{
		"version": 0.6,
		"elements": [
			{"type": "node", "id": 4242, "lat": 41.149614, "lon": -8.610994,
			 "timestamp": "2024-05-01T10:00:00Z",
			 "tags": {"name": "Cafe Luna", "addr:city": "Porto"}}
		]
	}`, &query)

	f, err := newTestClient(srv.URL).Lookup(context.Background(), datastructure.KindNode, 4242)
	require.NoError(t, err)

	assert.Contains(t, query, "node(4242);")
	assert.Equal(t, datastructure.KindNode, f.Kind)
	assert.Equal(t, int64(4242), f.ID)
	assert.Equal(t, "Cafe Luna", f.Name())
	require.NotNil(t, f.Position)
	assert.Equal(t, 41.149614, f.Position.Lat)
	assert.Nil(t, f.Geometry)
	require.NotNil(t, f.Updated)
	assert.Equal(t, 2024, f.Updated.Year())
}

func TestLookupClosedWay(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{
		"elements": [
			{"type": "way", "id": 7,
			 "bounds": {"minlat": 41.0, "minlon": -8.6, "maxlat": 41.2, "maxlon": -8.4},
			 "geometry": [{"lat": 41.0, "lon": -8.6}, {"lat": 41.0, "lon": -8.4}, {"lat": 41.2, "lon": -8.4}, {"lat": 41.0, "lon": -8.6}],
			 "tags": {"name": "Quarteirão"}}
		]
	}`, nil)

	f, err := newTestClient(srv.URL).Lookup(context.Background(), datastructure.KindWay, 7)
	require.NoError(t, err)

	require.NotNil(t, f.Position)
	assert.InDelta(t, 41.1, f.Position.Lat, 1e-3)
	assert.InDelta(t, -8.5, f.Position.Lon, 1e-3)
	polygon, ok := f.Geometry.(orb.Polygon)
	require.True(t, ok)
	assert.Len(t, polygon[0], 4)
}

func TestLookupRelation(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{
		"elements": [
			{"type": "relation", "id": 9, "tags": {"name": "Linha Azul"},
			 "members": [
				{"type": "node", "ref": 1, "role": "stop", "lat": 41.1, "lon": -8.6},
				{"type": "way", "ref": 2, "role": "", "geometry": [{"lat": 41.1, "lon": -8.6}, null, {"lat": 41.2, "lon": -8.5}]},
				{"type": "relation", "ref": 3, "role": "subarea"}
			 ]}
		]
	}`, nil)

	f, err := newTestClient(srv.URL).Lookup(context.Background(), datastructure.KindRelation, 9)
	require.NoError(t, err)

	collection, ok := f.Geometry.(orb.Collection)
	require.True(t, ok)
	require.Len(t, collection, 2)
	assert.Equal(t, orb.Point{-8.6, 41.1}, collection[0])
	assert.Equal(t, orb.LineString{{-8.6, 41.1}, {-8.5, 41.2}}, collection[1])
	assert.Nil(t, f.Position)
}

func TestLookupNotFound(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"version": 0.6, "elements": []}`, nil)

	_, err := newTestClient(srv.URL).Lookup(context.Background(), datastructure.KindNode, 1)
	assert.ErrorIs(t, err, datastructure.ErrFeatureNotFound)
}

func TestUpstreamError(t *testing.T) {
	srv := newTestServer(t, http.StatusTooManyRequests, `rate limited`, nil)

	_, err := newTestClient(srv.URL).Query(context.Background(), datastructure.SearchCriteria{
		Term: "park", Kind: datastructure.KindNode, Mode: datastructure.MatchExact, Limit: 10,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overpass error 429")
	assert.NotErrorIs(t, err, datastructure.ErrFeatureNotFound)
}

func TestQuery(t *testing.T) {
	var query string
	srv := newTestServer(t, http.StatusOK, `{
		"elements": [
			{"type": "node", "id": 1, "tags": {"name": "Park"}},
			{"type": "node", "id": 2, "tags": {"name": "PARK"}}
		]
	}`, &query)

	features, err := newTestClient(srv.URL).Query(context.Background(), datastructure.SearchCriteria{
		Term: "park", Kind: datastructure.KindNode, Mode: datastructure.MatchExact, Limit: 10,
	})
	require.NoError(t, err)

	assert.Contains(t, query, "out tags 10;")
	require.Len(t, features, 2)
	assert.Equal(t, "PARK", features[1].Name())
}

func TestQueryZeroLimitSkipsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	defer srv.Close()

	features, err := newTestClient(srv.URL).Query(context.Background(), datastructure.SearchCriteria{
		Kind: datastructure.KindNode, Mode: datastructure.MatchAny,
	})
	require.NoError(t, err)
	assert.Empty(t, features)
}

func TestMalformedElement(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"elements": [{"type": "area", "id": 3600000001}]}`, nil)

	_, err := newTestClient(srv.URL).Query(context.Background(), datastructure.SearchCriteria{
		Kind: datastructure.KindRelation, Mode: datastructure.MatchAny, Limit: 5,
	})
	assert.Error(t, err)
}
