package searcher

// Budget is the result count still available to one search request. It is shared by the
// request's queries, which run one after another.
type Budget struct {
	remaining int
}

func NewBudget(max int) *Budget {
	return &Budget{remaining: max}
}

func (b *Budget) Remaining() int {
	return b.remaining
}

func (b *Budget) Exhausted() bool {
	return b.remaining <= 0
}

func (b *Budget) Consume(n int) {
	b.remaining -= n
}
