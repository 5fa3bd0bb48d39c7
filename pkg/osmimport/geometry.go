package osmimport

import (
	"github.com/lintang-b-s/osm-places/pkg/datastructure"
	"github.com/lintang-b-s/osm-places/pkg/geo"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// lineString resolves node ids to coordinates, skipping nodes missing from the extract.
func lineString(nodeIDs []osm.NodeID, coords map[osm.NodeID]orb.Point) orb.LineString {
	ls := make(orb.LineString, 0, len(nodeIDs))
	for _, id := range nodeIDs {
		if p, ok := coords[id]; ok {
			ls = append(ls, p)
		}
	}
	return ls
}

func wayGeometry(ls orb.LineString) orb.Geometry {
	switch {
	case len(ls) == 0:
		return nil
	case len(ls) == 1:
		return ls[0]
	case geo.IsClosedRing(ls):
		return orb.Polygon{orb.Ring(ls)}
	}
	return ls
}

func relationGeometry(members osm.Members, coords map[osm.NodeID]orb.Point,
	wayLines map[osm.WayID]orb.LineString) orb.Geometry {
	collection := orb.Collection{}
	for _, m := range members {
		switch m.Type {
		case osm.TypeNode:
			if p, ok := coords[osm.NodeID(m.Ref)]; ok {
				collection = append(collection, p)
			}
		case osm.TypeWay:
			if ls := wayLines[osm.WayID(m.Ref)]; len(ls) > 1 {
				collection = append(collection, ls)
			}
		}
	}
	if len(collection) == 0 {
		return nil
	}
	return collection
}

// setGeometry stores g on f and places f at the centre of its bound.
func setGeometry(f *datastructure.RawFeature, g orb.Geometry) {
	if g == nil {
		return
	}
	f.Geometry = g
	lat, lon := geo.BoundCenter(g.Bound())
	f.Position = &datastructure.Position{Lat: lat, Lon: lon}
}
