package datastructure

import (
	"strings"

	"github.com/lintang-b-s/osm-places/pkg/geo"

	"golang.org/x/text/cases"
)

type MatchMode int

const (
	MatchExact MatchMode = iota
	MatchPartial
	MatchAny
)

func (m MatchMode) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchPartial:
		return "partial"
	case MatchAny:
		return "any"
	}
	return "unknown"
}

// SearchCriteria is one backend query of a search request. Backends render it into their own query language;
// Matches is the reference semantics each rendering must agree with.
type SearchCriteria struct {
	Term        string
	BoundingBox *geo.BoundingBox
	Kind        Kind
	Mode        MatchMode
	Limit       int
}

// FoldName case-folds a name or search term. Backends compare folded strings.
func FoldName(s string) string {
	return cases.Fold().String(s)
}

func (c SearchCriteria) Matches(f RawFeature) bool {
	if f.Kind != c.Kind {
		return false
	}
	name := f.Name()
	if name == "" {
		return false
	}

	switch c.Mode {
	case MatchExact:
		if FoldName(name) != FoldName(c.Term) {
			return false
		}
	case MatchPartial:
		folded, term := FoldName(name), FoldName(c.Term)
		if folded == term || !strings.Contains(folded, term) {
			return false
		}
	case MatchAny:
	default:
		return false
	}

	if c.BoundingBox == nil {
		return true
	}
	bound, ok := f.Bound()
	if !ok {
		return false
	}
	return c.BoundingBox.Intersects(bound)
}
