// Package place projects raw osm features into ActivityStreams Place documents.
package place

import (
	"fmt"
	"strings"

	"github.com/lintang-b-s/osm-places/pkg/datastructure"
	"github.com/lintang-b-s/osm-places/pkg/normalize"
)

const (
	DefaultBaseURL = "https://places.pub"
	osmBaseURL     = "https://www.openstreetmap.org"
)

var odbLicense = datastructure.Link{
	Type: "Link",
	Href: "https://opendatacommons.org/licenses/odbl/1-0/",
	Name: "Open Database License (ODbL) v1.0",
}

type Projector struct {
	baseURL string
}

func NewProjector(baseURL string) *Projector {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Projector{baseURL: strings.TrimRight(baseURL, "/")}
}

func (p *Projector) BaseURL() string {
	return p.baseURL
}

// Identifier returns <base>/<kind>/<id>.
func (p *Projector) Identifier(kind datastructure.Kind, id int64) string {
	return fmt.Sprintf("%s/%s/%d", p.baseURL, kind, id)
}

// Project builds the full Place document. It never fails: tags that are missing or
// unparseable only leave the corresponding field out.
func (p *Projector) Project(raw datastructure.RawFeature) datastructure.Place {
	tags := raw.Tags
	if tags == nil {
		tags = map[string]string{}
	}

	b := newBuilder(p.Identifier(raw.Kind, raw.ID)).
		name(normalize.Name(tags)).
		nameMap(normalize.LocalizedNames(tags)).
		summary(normalize.Summary(tags)).
		image(normalize.Image(tags)).
		coordinates(normalize.Coordinates(raw.Position)).
		elevation(normalize.Elevation(tags)).
		address(normalize.PostalAddress(tags)).
		updated(raw.Updated)

	// nodes never carry a geometry section, even when the backend sent one.
	if raw.Kind != datastructure.KindNode {
		b.geometry(raw.Geometry)
	}

	return b.provenance(odbLicense, source(raw.Kind, raw.ID)).build()
}

// Summarize builds the lightweight item used in search results.
func (p *Projector) Summarize(raw datastructure.RawFeature) datastructure.PlaceSummary {
	return datastructure.PlaceSummary{
		ID:   p.Identifier(raw.Kind, raw.ID),
		Type: "Place",
		Name: raw.Name(),
	}
}

func source(kind datastructure.Kind, id int64) datastructure.Link {
	return datastructure.Link{
		Type: "Link",
		Href: fmt.Sprintf("%s/%s/%d", osmBaseURL, kind, id),
		Name: fmt.Sprintf("OpenStreetMap %s %d", kind, id),
	}
}
