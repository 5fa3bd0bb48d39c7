package warehouse

import (
	"strings"

	"github.com/lintang-b-s/osm-places/pkg/datastructure"
)

// buildSearchQuery renders criteria as SQL. Names are compared case-folded through the
// name_folded column; partial matches exclude exact ones.
func buildSearchQuery(c datastructure.SearchCriteria) (string, []any) {
	where := []string{"kind = ?"}
	args := []any{string(c.Kind)}

	switch c.Mode {
	case datastructure.MatchExact:
		where = append(where, "name_folded = ?")
		args = append(args, datastructure.FoldName(c.Term))
	case datastructure.MatchPartial:
		term := datastructure.FoldName(c.Term)
		where = append(where, "instr(name_folded, ?) > 0", "name_folded <> ?")
		args = append(args, term, term)
	default:
		where = append(where, "name <> ''")
	}

	if bb := c.BoundingBox; bb != nil {
		where = append(where, "max_lon >= ?", "min_lon <= ?", "max_lat >= ?", "min_lat <= ?")
		args = append(args, bb.MinLon, bb.MaxLon, bb.MinLat, bb.MaxLat)
	}

	args = append(args, c.Limit)
	return "SELECT " + featureColumns + " FROM features WHERE " + strings.Join(where, " AND ") +
		" ORDER BY id LIMIT ?", args
}
