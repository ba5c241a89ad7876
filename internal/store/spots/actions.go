package spots

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/memodb-io/rentspot/internal/store"
	"github.com/memodb-io/rentspot/internal/store/reviews"
	"go.uber.org/zap"
)

type listResponse struct {
	Spots []Spot `json:"Spots"`
	Page  int    `json:"page"`
	Size  int    `json:"size"`
}

type reviewsResponse struct {
	Reviews []reviews.Review `json:"Reviews"`
}

// Actions holds the asynchronous tasks of the spots slice. Each task talks to
// the API and dispatches only after a 2xx response; failures leave the store
// untouched and are returned to the caller.
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

func (q ListQuery) path() string {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Size > 0 {
		v.Set("size", strconv.Itoa(q.Size))
	}
	if q.MinPrice != nil {
		v.Set("minPrice", strconv.FormatFloat(*q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice != nil {
		v.Set("maxPrice", strconv.FormatFloat(*q.MaxPrice, 'f', -1, 64))
	}
	if len(v) == 0 {
		return "/api/spots"
	}
	return "/api/spots?" + v.Encode()
}

func (a *Actions) FetchAll(ctx context.Context, d store.Dispatcher, q ListQuery) ([]Spot, error) {
	var out listResponse
	if err := store.Call(ctx, a.api, http.MethodGet, q.path(), nil, &out); err != nil {
		a.log.Warn("fetch spots failed", zap.Error(err))
		return nil, err
	}
	d.Dispatch(LoadSpots{Spots: out.Spots})
	return out.Spots, nil
}

func (a *Actions) FetchOne(ctx context.Context, d store.Dispatcher, id int64) (*Spot, error) {
	var out Spot
	if err := store.Call(ctx, a.api, http.MethodGet, fmt.Sprintf("/api/spots/%d", id), nil, &out); err != nil {
		a.log.Warn("fetch spot failed", zap.Int64("spot_id", id), zap.Error(err))
		return nil, err
	}
	d.Dispatch(LoadSpots{Spots: []Spot{out}})
	return &out, nil
}

// FetchReviews loads the reviews of a spot into its embedded collection.
// Nothing changes when the spot itself is not cached.
func (a *Actions) FetchReviews(ctx context.Context, d store.Dispatcher, spotID int64) ([]reviews.Review, error) {
	var out reviewsResponse
	if err := store.Call(ctx, a.api, http.MethodGet, fmt.Sprintf("/api/spots/%d/reviews", spotID), nil, &out); err != nil {
		a.log.Warn("fetch spot reviews failed", zap.Int64("spot_id", spotID), zap.Error(err))
		return nil, err
	}
	d.Dispatch(AddReviewToSpot{SpotID: spotID, Reviews: out.Reviews})
	return out.Reviews, nil
}

func (a *Actions) Create(ctx context.Context, d store.Dispatcher, p Payload) (*Spot, error) {
	var out Spot
	if err := store.Call(ctx, a.api, http.MethodPost, "/api/spots", p, &out); err != nil {
		a.log.Warn("create spot failed", zap.Error(err))
		return nil, err
	}
	d.Dispatch(LoadSpots{Spots: []Spot{out}})
	return &out, nil
}

func (a *Actions) Update(ctx context.Context, d store.Dispatcher, id int64, p Patch) (*Spot, error) {
	var out Spot
	if err := store.Call(ctx, a.api, http.MethodPut, fmt.Sprintf("/api/spots/%d", id), p, &out); err != nil {
		a.log.Warn("update spot failed", zap.Int64("spot_id", id), zap.Error(err))
		return nil, err
	}
	d.Dispatch(LoadSpots{Spots: []Spot{out}})
	return &out, nil
}

func (a *Actions) Delete(ctx context.Context, d store.Dispatcher, id int64) error {
	if err := store.Call(ctx, a.api, http.MethodDelete, fmt.Sprintf("/api/spots/%d", id), nil, nil); err != nil {
		a.log.Warn("delete spot failed", zap.Int64("spot_id", id), zap.Error(err))
		return err
	}
	d.Dispatch(RemoveSpot{SpotID: id})
	return nil
}

// AddImage attaches an image to a spot. The cached spot is not touched;
// refetch it to see the image.
func (a *Actions) AddImage(ctx context.Context, spotID int64, p ImagePayload) (*Image, error) {
	var out Image
	if err := store.Call(ctx, a.api, http.MethodPost, fmt.Sprintf("/api/spots/%d/images", spotID), p, &out); err != nil {
		a.log.Warn("add spot image failed", zap.Int64("spot_id", spotID), zap.Error(err))
		return nil, err
	}
	return &out, nil
}
