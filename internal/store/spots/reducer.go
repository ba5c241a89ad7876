package spots

import (
	"github.com/memodb-io/rentspot/internal/store"
	"github.com/memodb-io/rentspot/internal/store/reviews"
)

const (
	TypeLoadSpots       = "spots/loadSpots"
	TypeRemoveSpot      = "spots/removeSpot"
	TypeAddReviewToSpot = "spots/addReviewToSpot"
)

// LoadSpots upserts spots as the server returned them.
type LoadSpots struct {
	Spots []Spot
}

func (LoadSpots) ActionType() string { return TypeLoadSpots }

type RemoveSpot struct {
	SpotID int64
}

func (RemoveSpot) ActionType() string { return TypeRemoveSpot }

// AddReviewToSpot merges reviews into a loaded spot's embedded collection.
type AddReviewToSpot struct {
	SpotID  int64
	Reviews []reviews.Review
}

func (AddReviewToSpot) ActionType() string { return TypeAddReviewToSpot }

// Reducer is pure: unknown actions return the table unchanged.
func Reducer(t *store.Table[Spot], action store.Action) *store.Table[Spot] {
	switch a := action.(type) {
	case LoadSpots:
		return load(t, a.Spots)
	case RemoveSpot:
		return t.Remove(a.SpotID)
	case AddReviewToSpot:
		return t.Update(a.SpotID, func(s Spot) Spot {
			s.Reviews = store.MergeByID(s.Reviews, a.Reviews)
			return s
		})
	case reviews.AddReviews:
		for _, r := range a.Reviews {
			t = t.Update(r.SpotID, func(s Spot) Spot {
				s.Reviews = store.MergeByID(s.Reviews, []reviews.Review{r})
				return s
			})
		}
		return t
	case reviews.RemoveReview:
		for _, s := range t.Values() {
			if !hasReview(s, a.ReviewID) {
				continue
			}
			t = t.Update(s.ID, func(s Spot) Spot {
				s.Reviews = store.RemoveByID(s.Reviews, a.ReviewID)
				return s
			})
		}
		return t
	default:
		return t
	}
}

// load replaces each spot with the server's version. Embedded reviews survive
// when the incoming record carries none.
func load(t *store.Table[Spot], incoming []Spot) *store.Table[Spot] {
	if len(incoming) == 0 {
		return t
	}
	rows := make([]Spot, 0, len(incoming))
	for _, s := range incoming {
		if s.Reviews == nil {
			if old, ok := t.Get(s.ID); ok {
				s.Reviews = old.Reviews
			}
		}
		rows = append(rows, s)
	}
	return t.Put(rows...)
}

func hasReview(s Spot, reviewID int64) bool {
	for _, r := range s.Reviews {
		if r.ID == reviewID {
			return true
		}
	}
	return false
}
