package overpass

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lintang-b-s/osm-places/pkg/datastructure"
)

var qlString = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// escapeTerm makes a search term safe inside a quoted Overpass regular expression.
func escapeTerm(term string) string {
	return qlString.Replace(regexp.QuoteMeta(term))
}

func header(timeout time.Duration) string {
	return fmt.Sprintf("[out:json][timeout:%d];\n", int(timeout.Seconds()))
}

func lookupQuery(kind datastructure.Kind, id int64, timeout time.Duration) string {
	return fmt.Sprintf("%s%s(%d);\nout geom;", header(timeout), kind, id)
}

// searchQuery renders one search step. Partial matches exclude exact ones in the query itself,
// so an element never comes back from both steps.
func searchQuery(c datastructure.SearchCriteria, timeout time.Duration) string {
	var sb strings.Builder
	sb.WriteString(header(timeout))
	sb.WriteString(string(c.Kind))

	if c.BoundingBox != nil {
		s, w, n, e := c.BoundingBox.SouthWestNorthEast()
		fmt.Fprintf(&sb, "(%s,%s,%s,%s)", formatCoord(s), formatCoord(w), formatCoord(n), formatCoord(e))
	}

	term := escapeTerm(c.Term)
	switch c.Mode {
	case datastructure.MatchExact:
		fmt.Fprintf(&sb, `["name"~"^%s$",i]`, term)
	case datastructure.MatchPartial:
		fmt.Fprintf(&sb, `["name"~"%s",i]["name"!~"^%s$",i]`, term, term)
	default:
		sb.WriteString(`["name"]`)
	}

	fmt.Fprintf(&sb, ";\nout tags %d;", c.Limit)
	return sb.String()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
