package place

import (
	"time"

	"github.com/lintang-b-s/osm-places/pkg/datastructure"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// builder sets each optional field of a Place only when its source value is present and valid,
// so no empty placeholder reaches the document.
type builder struct {
	place datastructure.Place
}

func newBuilder(id string) *builder {
	return &builder{
		place: datastructure.Place{
			Context: datastructure.PlaceContext,
			Type:    "Place",
			ID:      id,
			To:      datastructure.PublicAudience,
		},
	}
}

func (b *builder) name(name string) *builder {
	b.place.Name = name
	return b
}

func (b *builder) nameMap(names map[string]string) *builder {
	if len(names) > 0 {
		b.place.NameMap = names
	}
	return b
}

func (b *builder) summary(summary string) *builder {
	b.place.Summary = summary
	return b
}

func (b *builder) image(image string) *builder {
	b.place.Image = image
	return b
}

func (b *builder) coordinates(c *datastructure.Coordinates) *builder {
	b.place.Coordinates = c
	return b
}

func (b *builder) elevation(e *datastructure.Elevation) *builder {
	b.place.Elevation = e
	return b
}

func (b *builder) address(a *datastructure.PostalAddress) *builder {
	if a != nil && !a.IsEmpty() {
		b.place.Address = a
	}
	return b
}

func (b *builder) geometry(g orb.Geometry) *builder {
	if g == nil {
		return b
	}
	if c, ok := g.(orb.Collection); ok && len(c) == 0 {
		return b
	}
	b.place.Geometry = geojson.NewGeometry(g)
	return b
}

func (b *builder) updated(t *time.Time) *builder {
	if t != nil && !t.IsZero() {
		b.place.Updated = t.UTC().Format(time.RFC3339)
	}
	return b
}

func (b *builder) provenance(license, source datastructure.Link) *builder {
	b.place.License = license
	b.place.Source = source
	return b
}

func (b *builder) build() datastructure.Place {
	return b.place
}
