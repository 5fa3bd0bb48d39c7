package overpass

import (
	"fmt"
	"time"

	"github.com/lintang-b-s/osm-places/pkg/datastructure"
	"github.com/lintang-b-s/osm-places/pkg/geo"

	"github.com/paulmach/orb"
)

// response is the Overpass JSON envelope: { version, generator, osm3s, elements, remark }.
type response struct {
	Version   float64   `json:"version"`
	Generator string    `json:"generator"`
	Remark    string    `json:"remark"`
	Elements  []element `json:"elements"`
}

type latLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type bounds struct {
	MinLat float64 `json:"minlat"`
	MinLon float64 `json:"minlon"`
	MaxLat float64 `json:"maxlat"`
	MaxLon float64 `json:"maxlon"`
}

type member struct {
	Type     string    `json:"type"`
	Ref      int64     `json:"ref"`
	Role     string    `json:"role"`
	Lat      *float64  `json:"lat"`
	Lon      *float64  `json:"lon"`
	Geometry []*latLon `json:"geometry"`
}

type element struct {
	Type      string            `json:"type"`
	ID        int64             `json:"id"`
	Lat       *float64          `json:"lat"`
	Lon       *float64          `json:"lon"`
	Timestamp string            `json:"timestamp"`
	Tags      map[string]string `json:"tags"`
	Bounds    *bounds           `json:"bounds"`
	Geometry  []*latLon         `json:"geometry"`
	Members   []member          `json:"members"`
}

func (e element) toRawFeature() (datastructure.RawFeature, error) {
	kind, err := datastructure.ParseKind(e.Type)
	if err != nil {
		return datastructure.RawFeature{}, fmt.Errorf("overpass element %d: %w", e.ID, err)
	}

	f := datastructure.NewRawFeature(kind, e.ID, e.Tags)

	switch {
	case e.Lat != nil && e.Lon != nil:
		f.Position = &datastructure.Position{Lat: *e.Lat, Lon: *e.Lon}
	case e.Bounds != nil:
		lat, lon := geo.BoundCenter(orb.Bound{
			Min: orb.Point{e.Bounds.MinLon, e.Bounds.MinLat},
			Max: orb.Point{e.Bounds.MaxLon, e.Bounds.MaxLat},
		})
		f.Position = &datastructure.Position{Lat: lat, Lon: lon}
	}

	switch kind {
	case datastructure.KindWay:
		f.Geometry = wayGeometry(e.Geometry)
	case datastructure.KindRelation:
		f.Geometry = relationGeometry(e.Members)
	}

	if e.Timestamp != "" {
		if ts, err := time.Parse(time.RFC3339, e.Timestamp); err == nil {
			f.Updated = &ts
		}
	}
	return f, nil
}

func lineString(points []*latLon) orb.LineString {
	ls := make(orb.LineString, 0, len(points))
	for _, p := range points {
		if p == nil {
			continue
		}
		ls = append(ls, orb.Point{p.Lon, p.Lat})
	}
	return ls
}

// wayGeometry returns a Polygon for closed ways and a LineString otherwise.
func wayGeometry(points []*latLon) orb.Geometry {
	ls := lineString(points)
	if len(ls) == 0 {
		return nil
	}
	if geo.IsClosedRing(ls) {
		return orb.Polygon{orb.Ring(ls)}
	}
	return ls
}

func relationGeometry(members []member) orb.Geometry {
	collection := orb.Collection{}
	for _, m := range members {
		switch m.Type {
		case "node":
			if m.Lat != nil && m.Lon != nil {
				collection = append(collection, orb.Point{*m.Lon, *m.Lat})
			}
		case "way":
			if ls := lineString(m.Geometry); len(ls) > 0 {
				collection = append(collection, ls)
			}
		}
	}
	if len(collection) == 0 {
		return nil
	}
	return collection
}
