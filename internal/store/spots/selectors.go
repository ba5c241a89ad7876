package spots

import (
	"github.com/memodb-io/rentspot/internal/store"
)

func identity(t *store.Table[Spot]) *store.Table[Spot] { return t }

// MakeSelectAll builds a selector returning every cached spot ordered by id.
// Each selector keeps its own memo: the result is shared between calls while
// the table is unchanged, and callers must not mutate it.
func MakeSelectAll() func(*store.Table[Spot]) []Spot {
	return store.CreateSelector(identity, func(t *store.Table[Spot]) []Spot {
		return t.Values()
	})
}

// SelectByID looks a single spot up in the table.
func SelectByID(t *store.Table[Spot], id int64) (Spot, bool) {
	return t.Get(id)
}
