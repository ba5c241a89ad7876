package reviews

import (
	"context"
	"fmt"
	"net/http"

	"github.com/memodb-io/rentspot/internal/store"
	"go.uber.org/zap"
)

type listResponse struct {
	Reviews []Review `json:"Reviews"`
}

// Actions holds the asynchronous tasks of the reviews slice. Each task talks
// to the API and dispatches only after a 2xx response; failures leave the
// store untouched and are returned to the caller.
type Actions struct {
	api store.API
	log *zap.Logger
}

func NewActions(api store.API, log *zap.Logger) *Actions {
	if log == nil {
		log = zap.NewNop()
	}
	return &Actions{api: api, log: log}
}

func (a *Actions) FetchAll(ctx context.Context, d store.Dispatcher) ([]Review, error) {
	var out listResponse
	if err := store.Call(ctx, a.api, http.MethodGet, "/api/reviews", nil, &out); err != nil {
		a.log.Warn("fetch reviews failed", zap.Error(err))
		return nil, err
	}
	d.Dispatch(AddReviews{Reviews: out.Reviews})
	return out.Reviews, nil
}

func (a *Actions) FetchOne(ctx context.Context, d store.Dispatcher, id int64) (*Review, error) {
	var out Review
	if err := store.Call(ctx, a.api, http.MethodGet, fmt.Sprintf("/api/reviews/%d", id), nil, &out); err != nil {
		a.log.Warn("fetch review failed", zap.Int64("review_id", id), zap.Error(err))
		return nil, err
	}
	d.Dispatch(AddReviews{Reviews: []Review{out}})
	return &out, nil
}

// Create posts a review for spotID and caches the server's version of it.
func (a *Actions) Create(ctx context.Context, d store.Dispatcher, spotID int64, p Payload) (*Review, error) {
	var out Review
	if err := store.Call(ctx, a.api, http.MethodPost, fmt.Sprintf("/api/spots/%d/reviews", spotID), p, &out); err != nil {
		a.log.Warn("create review failed", zap.Int64("spot_id", spotID), zap.Error(err))
		return nil, err
	}
	if out.SpotID == 0 {
		out.SpotID = spotID
	}
	d.Dispatch(AddReviews{Reviews: []Review{out}})
	return &out, nil
}

func (a *Actions) Update(ctx context.Context, d store.Dispatcher, id int64, p Patch) (*Review, error) {
	var out Review
	if err := store.Call(ctx, a.api, http.MethodPut, fmt.Sprintf("/api/reviews/%d", id), p, &out); err != nil {
		a.log.Warn("update review failed", zap.Int64("review_id", id), zap.Error(err))
		return nil, err
	}
	d.Dispatch(AddReviews{Reviews: []Review{out}})
	return &out, nil
}

func (a *Actions) Delete(ctx context.Context, d store.Dispatcher, id int64) error {
	if err := store.Call(ctx, a.api, http.MethodDelete, fmt.Sprintf("/api/reviews/%d", id), nil, nil); err != nil {
		a.log.Warn("delete review failed", zap.Int64("review_id", id), zap.Error(err))
		return err
	}
	d.Dispatch(RemoveReview{ReviewID: id})
	return nil
}

// AddImage attaches an image URL to a review. The cached review is not
// touched; refetch it to see the image.
func (a *Actions) AddImage(ctx context.Context, reviewID int64, url string) (*Image, error) {
	var out Image
	body := map[string]string{"url": url}
	if err := store.Call(ctx, a.api, http.MethodPost, fmt.Sprintf("/api/reviews/%d/images", reviewID), body, &out); err != nil {
		a.log.Warn("add review image failed", zap.Int64("review_id", reviewID), zap.Error(err))
		return nil, err
	}
	return &out, nil
}
