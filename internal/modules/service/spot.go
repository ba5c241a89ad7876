package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/memodb-io/rentspot/internal/infra/cache"
	"github.com/memodb-io/rentspot/internal/modules/model"
	"github.com/memodb-io/rentspot/internal/modules/repo"
	"github.com/memodb-io/rentspot/internal/telemetry"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 20
)

type SpotService interface {
	List(ctx context.Context, in ListSpotsInput) (*ListSpotsOutput, error)
	Get(ctx context.Context, id int64) (*model.Spot, error)
	Create(ctx context.Context, in CreateSpotInput) (*model.Spot, error)
	Update(ctx context.Context, id int64, in UpdateSpotInput) (*model.Spot, error)
	Delete(ctx context.Context, id int64) error
	AddImage(ctx context.Context, spotID int64, in AddSpotImageInput) (*model.SpotImage, error)
}

type spotService struct {
	r     repo.SpotRepo
	cache *cache.JSONCache
	log   *zap.Logger
}

// NewSpotService builds the spot service. A nil cache disables detail caching.
func NewSpotService(r repo.SpotRepo, c *cache.JSONCache, log *zap.Logger) SpotService {
	return &spotService{r: r, cache: c, log: log}
}

func spotKey(id int64) string { return strconv.FormatInt(id, 10) }

type ListSpotsInput struct {
	Page     int
	Size     int
	MinPrice *float64
	MaxPrice *float64
}

type ListSpotsOutput struct {
	Spots []model.Spot `json:"Spots"`
	Page  int          `json:"page"`
	Size  int          `json:"size"`
}

func (s *spotService) List(ctx context.Context, in ListSpotsInput) (*ListSpotsOutput, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Size < 1 {
		in.Size = DefaultPageSize
	}
	if in.Size > MaxPageSize {
		in.Size = MaxPageSize
	}

	spots, err := s.r.List(ctx, repo.SpotFilter{
		Offset:   (in.Page - 1) * in.Size,
		Limit:    in.Size,
		MinPrice: in.MinPrice,
		MaxPrice: in.MaxPrice,
	})
	if err != nil {
		return nil, fmt.Errorf("list spots: %w", err)
	}
	if spots == nil {
		spots = []model.Spot{}
	}
	return &ListSpotsOutput{Spots: spots, Page: in.Page, Size: in.Size}, nil
}

// Get reads through the spot cache. The cache generation is taken before the
// row is loaded, so a concurrent invalidation makes this fill unreachable.
func (s *spotService) Get(ctx context.Context, id int64) (*model.Spot, error) {
	var cached model.Spot
	hit, gen, err := s.cache.Get(ctx, spotKey(id), &cached)
	if err != nil {
		s.log.Warn("spot cache read failed", zap.Int64("spot_id", id), zap.Error(err))
	}
	if s.cache != nil {
		telemetry.RecordSpotCacheLookup(hit)
	}
	if hit {
		return &cached, nil
	}

	spot, err := s.r.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSpotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get spot: %w", err)
	}

	if err := s.cache.Set(ctx, spotKey(id), gen, spot); err != nil {
		s.log.Warn("spot cache write failed", zap.Int64("spot_id", id), zap.Error(err))
	}
	return spot, nil
}

func (s *spotService) invalidate(ctx context.Context, id int64) {
	if err := s.cache.Invalidate(ctx, spotKey(id)); err != nil {
		s.log.Warn("spot cache invalidation failed", zap.Int64("spot_id", id), zap.Error(err))
	}
}

type CreateSpotInput struct {
	Address     string
	City        string
	State       string
	Country     string
	Lat         float64
	Lng         float64
	Name        string
	Description string
	Price       float64
}

func (s *spotService) Create(ctx context.Context, in CreateSpotInput) (*model.Spot, error) {
	spot := &model.Spot{
		Address:     in.Address,
		City:        in.City,
		State:       in.State,
		Country:     in.Country,
		Lat:         in.Lat,
		Lng:         in.Lng,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
	}
	if err := s.r.Create(ctx, spot); err != nil {
		return nil, fmt.Errorf("create spot: %w", err)
	}
	s.log.Info("spot created", zap.Int64("spot_id", spot.ID))
	return spot, nil
}

type UpdateSpotInput struct {
	Address     *string
	City        *string
	State       *string
	Country     *string
	Lat         *float64
	Lng         *float64
	Name        *string
	Description *string
	Price       *float64
}

func (in UpdateSpotInput) fields() map[string]interface{} {
	f := map[string]interface{}{}
	set := func(col string, ok bool, v interface{}) {
		if ok {
			f[col] = v
		}
	}
	set("address", in.Address != nil, deref(in.Address))
	set("city", in.City != nil, deref(in.City))
	set("state", in.State != nil, deref(in.State))
	set("country", in.Country != nil, deref(in.Country))
	set("lat", in.Lat != nil, deref(in.Lat))
	set("lng", in.Lng != nil, deref(in.Lng))
	set("name", in.Name != nil, deref(in.Name))
	set("description", in.Description != nil, deref(in.Description))
	set("price", in.Price != nil, deref(in.Price))
	return f
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

func (s *spotService) Update(ctx context.Context, id int64, in UpdateSpotInput) (*model.Spot, error) {
	if fields := in.fields(); len(fields) > 0 {
		err := s.r.Update(ctx, id, fields)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpotNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("update spot: %w", err)
		}
		s.invalidate(ctx, id)
	}

	spot, err := s.r.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSpotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reload spot: %w", err)
	}
	return spot, nil
}

func (s *spotService) Delete(ctx context.Context, id int64) error {
	err := s.r.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrSpotNotFound
	}
	if err != nil {
		return fmt.Errorf("delete spot: %w", err)
	}
	s.invalidate(ctx, id)
	s.log.Info("spot deleted", zap.Int64("spot_id", id))
	return nil
}

type AddSpotImageInput struct {
	URL     string
	Preview bool
}

func (s *spotService) AddImage(ctx context.Context, spotID int64, in AddSpotImageInput) (*model.SpotImage, error) {
	ok, err := s.r.Exists(ctx, spotID)
	if err != nil {
		return nil, fmt.Errorf("check spot: %w", err)
	}
	if !ok {
		return nil, ErrSpotNotFound
	}

	img := &model.SpotImage{SpotID: spotID, URL: in.URL, Preview: in.Preview}
	if err := s.r.AddImage(ctx, img); err != nil {
		return nil, fmt.Errorf("add spot image: %w", err)
	}
	s.invalidate(ctx, spotID)
	return img, nil
}
