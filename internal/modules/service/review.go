package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/memodb-io/rentspot/internal/config"
	"github.com/memodb-io/rentspot/internal/modules/model"
	"github.com/memodb-io/rentspot/internal/modules/repo"
	"github.com/memodb-io/rentspot/internal/telemetry"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EventPublisher is satisfied by *mq.Publisher.
type EventPublisher interface {
	PublishJSON(ctx context.Context, exchangeName string, routingKey string, body any) error
}

type ReviewService interface {
	ListAll(ctx context.Context) ([]model.Review, error)
	ListBySpot(ctx context.Context, spotID int64) ([]model.Review, error)
	Get(ctx context.Context, id int64) (*model.Review, error)
	Create(ctx context.Context, spotID int64, in CreateReviewInput) (*model.Review, error)
	Update(ctx context.Context, id int64, in UpdateReviewInput) (*model.Review, error)
	Delete(ctx context.Context, id int64) error
	AddImage(ctx context.Context, reviewID int64, url string) (*model.ReviewImage, error)
}

type reviewService struct {
	reviews   repo.ReviewRepo
	spots     repo.SpotRepo
	rating    RatingService
	publisher EventPublisher
	cfg       *config.Config
	log       *zap.Logger
}

// NewReviewService builds the review service. With a nil publisher ratings are
// refreshed inline; otherwise a ReviewEvent is published for the rating worker.
func NewReviewService(reviews repo.ReviewRepo, spots repo.SpotRepo, rating RatingService, publisher EventPublisher, cfg *config.Config, log *zap.Logger) ReviewService {
	return &reviewService{
		reviews:   reviews,
		spots:     spots,
		rating:    rating,
		publisher: publisher,
		cfg:       cfg,
		log:       log,
	}
}

func nonNil(rs []model.Review) []model.Review {
	if rs == nil {
		return []model.Review{}
	}
	return rs
}

func (s *reviewService) ListAll(ctx context.Context) ([]model.Review, error) {
	rs, err := s.reviews.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return nonNil(rs), nil
}

func (s *reviewService) ListBySpot(ctx context.Context, spotID int64) ([]model.Review, error) {
	if err := s.requireSpot(ctx, spotID); err != nil {
		return nil, err
	}
	rs, err := s.reviews.ListBySpot(ctx, spotID)
	if err != nil {
		return nil, fmt.Errorf("list spot reviews: %w", err)
	}
	return nonNil(rs), nil
}

func (s *reviewService) Get(ctx context.Context, id int64) (*model.Review, error) {
	rv, err := s.reviews.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	return rv, nil
}

func (s *reviewService) requireSpot(ctx context.Context, spotID int64) error {
	ok, err := s.spots.Exists(ctx, spotID)
	if err != nil {
		return fmt.Errorf("check spot: %w", err)
	}
	if !ok {
		return ErrSpotNotFound
	}
	return nil
}

type CreateReviewInput struct {
	Review string
	Stars  int
}

func (s *reviewService) Create(ctx context.Context, spotID int64, in CreateReviewInput) (*model.Review, error) {
	if err := s.requireSpot(ctx, spotID); err != nil {
		return nil, err
	}
	rv := &model.Review{SpotID: spotID, Review: in.Review, Stars: in.Stars}
	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	s.ratingChanged(ctx, model.ReviewEvent{Kind: model.ReviewCreated, SpotID: spotID, ReviewID: rv.ID})
	return rv, nil
}

type UpdateReviewInput struct {
	Review *string
	Stars  *int
}

func (s *reviewService) Update(ctx context.Context, id int64, in UpdateReviewInput) (*model.Review, error) {
	fields := map[string]interface{}{}
	if in.Review != nil {
		fields["review"] = *in.Review
	}
	if in.Stars != nil {
		fields["stars"] = *in.Stars
	}
	if len(fields) > 0 {
		err := s.reviews.Update(ctx, id, fields)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("update review: %w", err)
		}
	}

	rv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Stars != nil {
		s.ratingChanged(ctx, model.ReviewEvent{Kind: model.ReviewUpdated, SpotID: rv.SpotID, ReviewID: id})
	}
	return rv, nil
}

func (s *reviewService) Delete(ctx context.Context, id int64) error {
	rv, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	err = s.reviews.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrReviewNotFound
	}
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	s.ratingChanged(ctx, model.ReviewEvent{Kind: model.ReviewDeleted, SpotID: rv.SpotID, ReviewID: id})
	return nil
}

func (s *reviewService) AddImage(ctx context.Context, reviewID int64, url string) (*model.ReviewImage, error) {
	if _, err := s.Get(ctx, reviewID); err != nil {
		return nil, err
	}
	n, err := s.reviews.CountImages(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("count review images: %w", err)
	}
	if n >= model.MaxReviewImages {
		return nil, ErrReviewImageLimit
	}

	img := &model.ReviewImage{ReviewID: reviewID, URL: url}
	if err := s.reviews.AddImage(ctx, img); err != nil {
		return nil, fmt.Errorf("add review image: %w", err)
	}
	return img, nil
}

// ratingChanged hands the event to the rating worker, or refreshes inline when
// no publisher is wired or publishing fails. Failures are logged only: the
// review write already succeeded.
func (s *reviewService) ratingChanged(ctx context.Context, ev model.ReviewEvent) {
	if s.publisher != nil {
		err := s.publisher.PublishJSON(ctx, s.cfg.RabbitMQ.ExchangeName.Review, s.cfg.RabbitMQ.RoutingKey.ReviewChanged, ev)
		if err == nil {
			return
		}
		s.log.Error("publish review event failed, refreshing inline", zap.Int64("spot_id", ev.SpotID), zap.Error(err))
	}
	err := s.rating.Refresh(ctx, ev.SpotID)
	telemetry.RecordRatingRefresh("inline", err)
	if err != nil {
		s.log.Error("refresh spot rating failed", zap.Int64("spot_id", ev.SpotID), zap.Error(err))
	}
}
