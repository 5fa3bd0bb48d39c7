package datastructure

import (
	"github.com/paulmach/orb/geojson"
)

const (
	ActivityStreamsContext = "https://www.w3.org/ns/activitystreams"
	PublicAudience         = "as:Public"
	ElevationUnits         = "m"
)

// PlaceContext is the JSON-LD context of a Place document.
var PlaceContext = []any{
	ActivityStreamsContext,
	map[string]string{
		"dcterms": "http://purl.org/dc/terms/",
		"vcard":   "http://www.w3.org/2006/vcard/ns#",
		"geojson": "https://purl.org/geojson/vocab#",
	},
}

// Coordinates model info
// @Description latitude and longitude rounded to 5 decimal places. both or none.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Elevation model info
// @Description altitude in whole meters, from osm tag ele.
type Elevation struct {
	Altitude int    `json:"altitude"`
	Units    string `json:"units"`
}

// PostalAddress model info
// @Description vCard address built from osm addr:* tags.
type PostalAddress struct {
	Type          string `json:"type"`
	StreetAddress string `json:"vcard:street-address,omitempty"`
	Locality      string `json:"vcard:locality,omitempty"`
	Region        string `json:"vcard:region,omitempty"`
	PostalCode    string `json:"vcard:postal-code,omitempty"`
	CountryName   string `json:"vcard:country-name,omitempty"`
}

func (a PostalAddress) IsEmpty() bool {
	return a.StreetAddress == "" && a.Locality == "" && a.Region == "" && a.PostalCode == "" && a.CountryName == ""
}

type Link struct {
	Type string `json:"type"`
	Href string `json:"href"`
	Name string `json:"name"`
}

// Place model info
// @Description ActivityStreams Place document for one osm node, way or relation.
// Optional fields are omitted entirely when the osm object has no data for them.
type Place struct {
	Context []any             `json:"@context"`
	Type    string            `json:"type"`
	ID      string            `json:"id"`
	To      string            `json:"to"`
	Name    string            `json:"name,omitempty"`
	NameMap map[string]string `json:"nameMap,omitempty"`
	Summary string            `json:"summary,omitempty"`
	Image   string            `json:"image,omitempty"`

	*Coordinates // latitude, longitude
	*Elevation   // altitude, units

	Address  *PostalAddress    `json:"vcard:hasAddress,omitempty"`
	Geometry *geojson.Geometry `json:"geojson:geometry,omitempty"`
	Updated  string            `json:"updated,omitempty"`
	License  Link              `json:"dcterms:license"`
	Source   Link              `json:"dcterms:source"`
}

// PlaceSummary model info
// @Description lightweight search result item.
type PlaceSummary struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
}

// Collection model info
// @Description search results.
type Collection struct {
	Context    string         `json:"@context"`
	Type       string         `json:"type"`
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	TotalItems int            `json:"totalItems"`
	Items      []PlaceSummary `json:"items"`
}

func NewCollection(id, name string, items []PlaceSummary) Collection {
	if items == nil {
		items = []PlaceSummary{}
	}
	return Collection{
		Context:    ActivityStreamsContext,
		Type:       "Collection",
		ID:         id,
		Name:       name,
		TotalItems: len(items),
		Items:      items,
	}
}
