package datastructure

import (
	"errors"
	"fmt"
	"time"

	"github.com/paulmach/orb"
)

var (
	ErrFeatureNotFound = errors.New("feature not found")
)

// Kind is the OSM element type. A point feature is an OSM node.
type Kind string

const (
	KindNode     Kind = "node"
	KindWay      Kind = "way"
	KindRelation Kind = "relation"
)

// Kinds is the fixed order in which geometry kinds are searched.
var Kinds = []Kind{KindNode, KindWay, KindRelation}

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindNode, KindWay, KindRelation:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown osm element type %q", s)
}

func (k Kind) String() string {
	return string(k)
}

type Position struct {
	Lat float64 `msgpack:"lat"`
	Lon float64 `msgpack:"lon"`
}

// RawFeature is an OSM element as a backend returns it. Tags have no fixed schema and any key may be absent.
type RawFeature struct {
	ID       int64
	Kind     Kind
	Tags     map[string]string
	Position *Position    // nil when the backend has no coordinates for the element
	Geometry orb.Geometry // nil for nodes and for elements fetched without geometry
	Updated  *time.Time
}

func NewRawFeature(kind Kind, id int64, tags map[string]string) RawFeature {
	if tags == nil {
		tags = map[string]string{}
	}
	return RawFeature{
		ID:   id,
		Kind: kind,
		Tags: tags,
	}
}

func (f RawFeature) Name() string {
	return f.Tags["name"]
}

// Bound is the feature's extent: its geometry's bound when it has one, otherwise its position.
func (f RawFeature) Bound() (orb.Bound, bool) {
	if f.Geometry != nil {
		if c, ok := f.Geometry.(orb.Collection); !ok || len(c) > 0 {
			return f.Geometry.Bound(), true
		}
	}
	if f.Position != nil {
		return orb.Point{f.Position.Lon, f.Position.Lat}.Bound(), true
	}
	return orb.Bound{}, false
}
