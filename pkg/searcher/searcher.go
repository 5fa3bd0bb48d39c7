package searcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/lintang-b-s/osm-places/pkg/apperr"
	"github.com/lintang-b-s/osm-places/pkg/datastructure"

	"go.uber.org/zap"
)

const (
	DefaultMaxResults = 100
)

type Searcher struct {
	backend    Backend
	summarizer Summarizer
	maxResults int
	log        *zap.Logger
}

func NewSearcher(backend Backend, summarizer Summarizer, maxResults int, log *zap.Logger) *Searcher {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Searcher{
		backend:    backend,
		summarizer: summarizer,
		maxResults: maxResults,
		log:        log,
	}
}

// Search runs the request's queries one after another against a shared budget of maxResults.
// A query is only issued while budget remains, and its limit is the remaining budget, so the
// total never exceeds maxResults. Exact matches come before partial ones; within a mode the
// order is node, way, relation.
func (se *Searcher) Search(ctx context.Context, req Request) ([]datastructure.PlaceSummary, error) {
	budget := NewBudget(se.maxResults)
	results := make([]datastructure.PlaceSummary, 0)

	for _, st := range searchPlan(req) {
		if budget.Exhausted() {
			se.log.Debug("search budget exhausted, skipping query",
				zap.String("kind", st.kind.String()), zap.String("mode", st.mode.String()))
			continue
		}

		criteria := BuildCriteria(req, st.kind, st.mode, budget.Remaining())
		features, err := se.backend.Query(ctx, criteria)
		if err != nil {
			return nil, apperr.Backend(fmt.Sprintf("%s %s query for %s", se.backend.Name(), st.mode, st.kind), err)
		}
		if len(features) > criteria.Limit {
			return nil, apperr.Backend(fmt.Sprintf("%s %s query for %s", se.backend.Name(), st.mode, st.kind),
				fmt.Errorf("backend returned %d features for limit %d", len(features), criteria.Limit))
		}

		se.log.Debug("search query done",
			zap.String("kind", st.kind.String()), zap.String("mode", st.mode.String()),
			zap.Int("limit", criteria.Limit), zap.Int("results", len(features)))

		budget.Consume(len(features))
		for _, f := range features {
			results = append(results, se.summarizer.Summarize(f))
		}
	}

	return results, nil
}

// Lookup fetches a single osm element. A missing element is a NotFound error, anything else
// the backend reports is a Backend error.
func (se *Searcher) Lookup(ctx context.Context, kind datastructure.Kind, id int64) (datastructure.RawFeature, error) {
	feature, err := se.backend.Lookup(ctx, kind, id)
	if errors.Is(err, datastructure.ErrFeatureNotFound) {
		return datastructure.RawFeature{}, apperr.NotFound(fmt.Sprintf("No object with type %s and id %d found", kind, id))
	}
	if err != nil {
		return datastructure.RawFeature{}, apperr.Backend(fmt.Sprintf("%s lookup %s/%d", se.backend.Name(), kind, id), err)
	}
	return feature, nil
}
