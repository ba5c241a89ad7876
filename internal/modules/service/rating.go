package service

import (
	"context"
	"fmt"

	"github.com/memodb-io/rentspot/internal/infra/cache"
	"github.com/memodb-io/rentspot/internal/modules/repo"
	"go.uber.org/zap"
)

// RatingService keeps a spot's avgRating and numReviews in line with its reviews.
type RatingService interface {
	Refresh(ctx context.Context, spotID int64) error
}

type ratingService struct {
	spots repo.SpotRepo
	cache *cache.JSONCache
	log   *zap.Logger
}

func NewRatingService(spots repo.SpotRepo, c *cache.JSONCache, log *zap.Logger) RatingService {
	return &ratingService{spots: spots, cache: c, log: log}
}

func (s *ratingService) Refresh(ctx context.Context, spotID int64) error {
	if err := s.spots.RecalcRating(ctx, spotID); err != nil {
		return fmt.Errorf("recalc rating: %w", err)
	}
	if err := s.cache.Invalidate(ctx, spotKey(spotID)); err != nil {
		s.log.Warn("spot cache invalidation failed", zap.Int64("spot_id", spotID), zap.Error(err))
	}
	return nil
}
