package service

import (
	"context"

	"github.com/memodb-io/rentspot/internal/modules/model"
	"github.com/memodb-io/rentspot/internal/modules/repo"
	"github.com/stretchr/testify/mock"
)

// MockSpotRepo is a mock implementation of SpotRepo
type MockSpotRepo struct {
	mock.Mock
}

func (m *MockSpotRepo) List(ctx context.Context, f repo.SpotFilter) ([]model.Spot, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Spot), args.Error(1)
}

func (m *MockSpotRepo) Get(ctx context.Context, id int64) (*model.Spot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Spot), args.Error(1)
}

func (m *MockSpotRepo) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockSpotRepo) Create(ctx context.Context, s *model.Spot) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSpotRepo) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockSpotRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSpotRepo) AddImage(ctx context.Context, img *model.SpotImage) error {
	args := m.Called(ctx, img)
	return args.Error(0)
}

func (m *MockSpotRepo) RecalcRating(ctx context.Context, spotID int64) error {
	args := m.Called(ctx, spotID)
	return args.Error(0)
}

// MockReviewRepo is a mock implementation of ReviewRepo
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) ListAll(ctx context.Context) ([]model.Review, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewRepo) ListBySpot(ctx context.Context, spotID int64) ([]model.Review, error) {
	args := m.Called(ctx, spotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewRepo) Get(ctx context.Context, id int64) (*model.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	args := m.Called(ctx, rv)
	return args.Error(0)
}

func (m *MockReviewRepo) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockReviewRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepo) AddImage(ctx context.Context, img *model.ReviewImage) error {
	args := m.Called(ctx, img)
	return args.Error(0)
}

func (m *MockReviewRepo) CountImages(ctx context.Context, reviewID int64) (int64, error) {
	args := m.Called(ctx, reviewID)
	return args.Get(0).(int64), args.Error(1)
}

// MockBookingRepo is a mock implementation of BookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) ListBySpot(ctx context.Context, spotID int64) ([]model.Booking, error) {
	args := m.Called(ctx, spotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *MockBookingRepo) Reserve(ctx context.Context, b *model.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepo) Get(ctx context.Context, id int64) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishJSON(ctx context.Context, exchangeName string, routingKey string, body any) error {
	args := m.Called(ctx, exchangeName, routingKey, body)
	return args.Error(0)
}

type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) Refresh(ctx context.Context, spotID int64) error {
	args := m.Called(ctx, spotID)
	return args.Error(0)
}
