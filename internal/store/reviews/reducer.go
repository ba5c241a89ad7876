package reviews

import "github.com/memodb-io/rentspot/internal/store"

const (
	TypeAddReviews   = "reviews/addReviews"
	TypeRemoveReview = "reviews/removeReview"
)

// AddReviews upserts reviews into the table. Other slices react to it too:
// the spots slice attaches each review to its loaded parent spot.
type AddReviews struct {
	Reviews []Review
}

func (AddReviews) ActionType() string { return TypeAddReviews }

// RemoveReview drops a review everywhere it is cached.
type RemoveReview struct {
	ReviewID int64
}

func (RemoveReview) ActionType() string { return TypeRemoveReview }

// Reducer is pure: unknown actions return the table unchanged.
func Reducer(t *store.Table[Review], action store.Action) *store.Table[Review] {
	switch a := action.(type) {
	case AddReviews:
		return t.Put(a.Reviews...)
	case RemoveReview:
		return t.Remove(a.ReviewID)
	default:
		return t
	}
}
