package reviews

import (
	"github.com/memodb-io/rentspot/internal/store"
)

func identity(t *store.Table[Review]) *store.Table[Review] { return t }

// MakeSelectAll builds a selector returning every cached review ordered by id.
// Each selector keeps its own memo: the result is shared between calls while
// the table is unchanged, and callers must not mutate it.
func MakeSelectAll() func(*store.Table[Review]) []Review {
	return store.CreateSelector(identity, func(t *store.Table[Review]) []Review {
		return t.Values()
	})
}

// MakeSelectBySpot builds a memoized selector for the reviews of one spot.
func MakeSelectBySpot(spotID int64) func(*store.Table[Review]) []Review {
	return store.CreateSelector(identity, func(t *store.Table[Review]) []Review {
		out := []Review{}
		for _, r := range t.Values() {
			if r.SpotID == spotID {
				out = append(out, r)
			}
		}
		return out
	})
}
