// Package normalize turns raw osm tags into the typed pieces of a Place document.
// Every function is total: missing or malformed tags give an absent result, never an error.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lintang-b-s/osm-places/pkg/datastructure"
)

const (
	nameLangPrefix = "name:"
	coordScale     = 1e5
)

// maxAltitude is far beyond any point on or above earth and well inside int range.
const maxAltitude = 100000

var (
	langSubtag = regexp.MustCompile(`^[a-z]{2,8}(-[A-Za-z0-9]+)*$`)
)

// LocalizedNames collects name:<lang> tags keyed by language subtag. Returns nil, never an empty map.
func LocalizedNames(tags map[string]string) map[string]string {
	var names map[string]string
	for key, value := range tags {
		lang, ok := strings.CutPrefix(key, nameLangPrefix)
		if !ok || value == "" || !langSubtag.MatchString(lang) {
			continue
		}
		if names == nil {
			names = make(map[string]string)
		}
		names[lang] = value
	}
	return names
}

// PostalAddress builds a vCard address from addr:* tags, nil when none of them is set.
func PostalAddress(tags map[string]string) *datastructure.PostalAddress {
	address := datastructure.PostalAddress{
		Type:          "vcard:Address",
		StreetAddress: StreetAddress(tags["addr:housenumber"], tags["addr:street"]),
		Locality:      tags["addr:city"],
		Region:        tags["addr:state"],
		PostalCode:    tags["addr:postcode"],
		CountryName:   tags["addr:country"],
	}
	if address.IsEmpty() {
		return nil
	}
	return &address
}

func StreetAddress(number, street string) string {
	switch {
	case number != "" && street != "":
		return number + " " + street
	case street != "":
		return street
	default:
		return number
	}
}

// RoundCoord rounds to 5 decimal places, half away from zero.
func RoundCoord(v float64) float64 {
	return math.Round(v*coordScale) / coordScale
}

func Coordinates(pos *datastructure.Position) *datastructure.Coordinates {
	if pos == nil || !isFinite(pos.Lat) || !isFinite(pos.Lon) {
		return nil
	}
	return &datastructure.Coordinates{
		Latitude:  RoundCoord(pos.Lat),
		Longitude: RoundCoord(pos.Lon),
	}
}

// Elevation reads the ele tag. A trailing meter unit is tolerated ("312 m").
// Values beyond maxAltitude meters in either direction are treated as absent.
func Elevation(tags map[string]string) *datastructure.Elevation {
	ele, ok := ParseNumber(strings.TrimSuffix(strings.TrimSpace(tags["ele"]), "m"))
	if !ok {
		return nil
	}
	ele = math.Round(ele)
	if math.Abs(ele) > maxAltitude {
		return nil
	}
	return &datastructure.Elevation{
		Altitude: int(ele),
		Units:    datastructure.ElevationUnits,
	}
}

// ParseNumber parses a finite decimal number, rejecting NaN and infinities.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(v) {
		return 0, false
	}
	return v, true
}

func Name(tags map[string]string) string {
	return tags["name"]
}

func Summary(tags map[string]string) string {
	return tags["description"]
}

func Image(tags map[string]string) string {
	return tags["image"]
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
