package searcher

import (
	"github.com/lintang-b-s/osm-places/pkg/datastructure"
)

// BuildCriteria turns a validated request into the query for one geometry kind and match mode.
// The bounding box, when present, is AND-ed with the name condition in every mode.
func BuildCriteria(req Request, kind datastructure.Kind, mode datastructure.MatchMode, limit int) datastructure.SearchCriteria {
	if limit < 0 {
		limit = 0
	}
	c := datastructure.SearchCriteria{
		Kind:  kind,
		Mode:  mode,
		Limit: limit,
	}
	if mode != datastructure.MatchAny {
		c.Term = req.Term
	}
	if req.BoundingBox != nil {
		bb := *req.BoundingBox
		c.BoundingBox = &bb
	}
	return c
}

type step struct {
	kind datastructure.Kind
	mode datastructure.MatchMode
}

// searchPlan lists the queries of a request in priority order: every kind for exact matches,
// then every kind for partial matches. Without a term there is a single pass matching any named feature.
func searchPlan(req Request) []step {
	modes := []datastructure.MatchMode{datastructure.MatchExact, datastructure.MatchPartial}
	if req.Term == "" {
		modes = []datastructure.MatchMode{datastructure.MatchAny}
	}

	plan := make([]step, 0, len(modes)*len(datastructure.Kinds))
	for _, mode := range modes {
		for _, kind := range datastructure.Kinds {
			plan = append(plan, step{kind: kind, mode: mode})
		}
	}
	return plan
}
