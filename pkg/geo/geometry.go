package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// BoundingBox is a lon/lat rectangle, ordered the way the bbox query parameter is: west, south, east, north.
type BoundingBox struct {
	MinLon float64 `json:"min_lon"`
	MinLat float64 `json:"min_lat"`
	MaxLon float64 `json:"max_lon"`
	MaxLat float64 `json:"max_lat"`
}

func NewBoundingBox(minLon, minLat, maxLon, maxLat float64) BoundingBox {
	return BoundingBox{
		MinLon: minLon,
		MinLat: minLat,
		MaxLon: maxLon,
		MaxLat: maxLat,
	}
}

// Intersects reports whether the box and b share at least one point. Touching edges count.
func (bb BoundingBox) Intersects(b orb.Bound) bool {
	if b.Max.Lon() < bb.MinLon || b.Min.Lon() > bb.MaxLon {
		return false
	}
	if b.Max.Lat() < bb.MinLat || b.Min.Lat() > bb.MaxLat {
		return false
	}
	return true
}

// Overpass wants (south, west, north, east).
func (bb BoundingBox) SouthWestNorthEast() (float64, float64, float64, float64) {
	return bb.MinLat, bb.MinLon, bb.MaxLat, bb.MaxLon
}

// https://www.movable-type.co.uk/scripts/latlong.html
func MidPoint(lat1, lon1 float64, lat2, lon2 float64) (float64, float64) {
	p1LatRad := degToRad(lat1)
	p2LatRad := degToRad(lat2)

	diffLon := degToRad(lon2 - lon1)

	bx := math.Cos(p2LatRad) * math.Cos(diffLon)
	by := math.Cos(p2LatRad) * math.Sin(diffLon)

	newLon := degToRad(lon1) + math.Atan2(by, math.Cos(p1LatRad)+bx)
	newLat := math.Atan2(math.Sin(p1LatRad)+math.Sin(p2LatRad), math.Sqrt((math.Cos(p1LatRad)+bx)*(math.Cos(p1LatRad)+bx)+by*by))

	return radToDeg(newLat), radToDeg(newLon)
}

// BoundCenter returns the geographic midpoint of the bound's south-west and north-east corners as lat, lon.
func BoundCenter(b orb.Bound) (float64, float64) {
	return MidPoint(b.Min.Lat(), b.Min.Lon(), b.Max.Lat(), b.Max.Lon())
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180.0
}

func radToDeg(r float64) float64 {
	return 180.0 * r / math.Pi
}

// IsClosedRing reports whether a way's node list forms a polygon ring.
func IsClosedRing(ls orb.LineString) bool {
	return len(ls) >= 4 && ls[0].Equal(ls[len(ls)-1])
}
