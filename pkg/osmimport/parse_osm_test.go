package osmimport

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lintang-b-s/osm-places/pkg/datastructure"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceScanner struct {
	objects []osm.Object
	pos     int
}

func (s *sliceScanner) Scan() bool {
	s.pos++
	return s.pos <= len(s.objects)
}

func (s *sliceScanner) Object() osm.Object { return s.objects[s.pos-1] }
func (s *sliceScanner) Err() error         { return nil }
func (s *sliceScanner) Close() error       { return nil }

func opener(objects ...osm.Object) Opener {
	return func(_ context.Context, _ osm.Type) (osm.Scanner, error) {
		return &sliceScanner{objects: objects}, nil
	}
}

type memorySink struct {
	mu       sync.Mutex
	features []datastructure.RawFeature
	batches  int
	err      error
}

func (s *memorySink) SaveFeatures(_ context.Context, features []datastructure.RawFeature) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.batches++
	s.features = append(s.features, features...)
	return nil
}

func (s *memorySink) find(kind datastructure.Kind, id int64) (datastructure.RawFeature, bool) {
	for _, f := range s.features {
		if f.Kind == kind && f.ID == id {
			return f, true
		}
	}
	return datastructure.RawFeature{}, false
}

func fixture() []osm.Object {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return []osm.Object{
		&osm.Node{ID: 1, Lat: 0, Lon: 0},
		&osm.Node{ID: 2, Lat: 0, Lon: 1},
		&osm.Node{ID: 3, Lat: 1, Lon: 1},
		&osm.Node{ID: 4, Lat: 1, Lon: 0},
		&osm.Node{ID: 5, Lat: 45.5, Lon: -73.5, Timestamp: ts,
			Tags: osm.Tags{{Key: "name", Value: "Cafe Luna"}, {Key: "amenity", Value: "cafe"}}},
		&osm.Node{ID: 6, Lat: 2, Lon: 2},
		// closed ring
		&osm.Way{ID: 10, Nodes: osm.WayNodes{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 1}},
			Tags: osm.Tags{{Key: "name", Value: "Square"}}},
		// unnamed, only a relation member
		&osm.Way{ID: 11, Nodes: osm.WayNodes{{ID: 3}, {ID: 6}}},
		// unnamed and unreferenced
		&osm.Way{ID: 12, Nodes: osm.WayNodes{{ID: 1}, {ID: 6}}},
		&osm.Relation{ID: 20, Timestamp: ts,
			Tags: osm.Tags{{Key: "name", Value: "District"}},
			Members: osm.Members{
				{Type: osm.TypeWay, Ref: 11, Role: "outer"},
				{Type: osm.TypeNode, Ref: 6, Role: "label"},
				{Type: osm.TypeWay, Ref: 99},
			}},
		&osm.Relation{ID: 21, Members: osm.Members{{Type: osm.TypeWay, Ref: 12}}},
	}
}

func TestImport(t *testing.T) {
	sink := &memorySink{}
	im := NewImporter(sink, Config{BatchSize: 2, Workers: 2}, nil)

	stats, err := im.Import(context.Background(), opener(fixture()...))
	require.NoError(t, err)
	assert.Equal(t, Stats{Nodes: 1, Ways: 1, Relations: 1}, stats)
	assert.Equal(t, 3, stats.Total())
	assert.Len(t, sink.features, 3)
	assert.Equal(t, 2, sink.batches)

	cafe, ok := sink.find(datastructure.KindNode, 5)
	require.True(t, ok)
	assert.Equal(t, "cafe", cafe.Tags["amenity"])
	assert.Equal(t, &datastructure.Position{Lat: 45.5, Lon: -73.5}, cafe.Position)
	assert.Nil(t, cafe.Geometry)
	require.NotNil(t, cafe.Updated)
	assert.Equal(t, "2024-01-02T03:04:05Z", cafe.Updated.Format(time.RFC3339))

	square, ok := sink.find(datastructure.KindWay, 10)
	require.True(t, ok)
	poly, isPoly := square.Geometry.(orb.Polygon)
	require.True(t, isPoly)
	assert.Len(t, poly[0], 5)
	require.NotNil(t, square.Position)
	assert.InDelta(t, 0.5, square.Position.Lat, 1e-3)
	assert.InDelta(t, 0.5, square.Position.Lon, 1e-3)
	assert.Nil(t, square.Updated)

	district, ok := sink.find(datastructure.KindRelation, 20)
	require.True(t, ok)
	collection, isCollection := district.Geometry.(orb.Collection)
	require.True(t, isCollection)
	assert.Equal(t, orb.Collection{orb.LineString{{1, 1}, {2, 2}}, orb.Point{2, 2}}, collection)
	require.NotNil(t, district.Updated)

	_, ok = sink.find(datastructure.KindWay, 11)
	assert.False(t, ok)
	_, ok = sink.find(datastructure.KindRelation, 21)
	assert.False(t, ok)
}

func TestImportSinkError(t *testing.T) {
	errDisk := errors.New("disk full")
	sink := &memorySink{err: errDisk}
	im := NewImporter(sink, Config{BatchSize: 1}, nil)

	_, err := im.Import(context.Background(), opener(fixture()...))
	assert.ErrorIs(t, err, errDisk)
}

func TestImportOpenError(t *testing.T) {
	errOpen := errors.New("no such file")
	im := NewImporter(&memorySink{}, Config{}, nil)

	_, err := im.Import(context.Background(), func(context.Context, osm.Type) (osm.Scanner, error) {
		return nil, errOpen
	})
	assert.ErrorIs(t, err, errOpen)
}

func TestWayGeometry(t *testing.T) {
	tests := []struct {
		name string
		ls   orb.LineString
		want orb.Geometry
	}{
		{name: "empty", ls: orb.LineString{}, want: nil},
		{name: "single node", ls: orb.LineString{{1, 2}}, want: orb.Point{1, 2}},
		{name: "open", ls: orb.LineString{{0, 0}, {1, 1}}, want: orb.LineString{{0, 0}, {1, 1}}},
		{
			name: "closed",
			ls:   orb.LineString{{0, 0}, {1, 0}, {1, 1}, {0, 0}},
			want: orb.Polygon{orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 0}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wayGeometry(tt.ls))
		})
	}
}

func TestLineStringSkipsMissingNodes(t *testing.T) {
	coords := map[osm.NodeID]orb.Point{1: {0, 0}, 3: {2, 2}}
	ls := lineString([]osm.NodeID{1, 2, 3}, coords)
	assert.Equal(t, orb.LineString{{0, 0}, {2, 2}}, ls)
}
