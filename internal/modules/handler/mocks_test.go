package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/memodb-io/rentspot/internal/modules/model"
	"github.com/memodb-io/rentspot/internal/modules/serializer"
	"github.com/memodb-io/rentspot/internal/modules/service"
	"github.com/stretchr/testify/mock"
)

type MockSpotService struct {
	mock.Mock
}

func (m *MockSpotService) List(ctx context.Context, in service.ListSpotsInput) (*service.ListSpotsOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListSpotsOutput), args.Error(1)
}

func (m *MockSpotService) Get(ctx context.Context, id int64) (*model.Spot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Spot), args.Error(1)
}

func (m *MockSpotService) Create(ctx context.Context, in service.CreateSpotInput) (*model.Spot, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Spot), args.Error(1)
}

func (m *MockSpotService) Update(ctx context.Context, id int64, in service.UpdateSpotInput) (*model.Spot, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Spot), args.Error(1)
}

func (m *MockSpotService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSpotService) AddImage(ctx context.Context, spotID int64, in service.AddSpotImageInput) (*model.SpotImage, error) {
	args := m.Called(ctx, spotID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SpotImage), args.Error(1)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ListAll(ctx context.Context) ([]model.Review, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewService) ListBySpot(ctx context.Context, spotID int64) ([]model.Review, error) {
	args := m.Called(ctx, spotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewService) Get(ctx context.Context, id int64) (*model.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) Create(ctx context.Context, spotID int64, in service.CreateReviewInput) (*model.Review, error) {
	args := m.Called(ctx, spotID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, id int64, in service.UpdateReviewInput) (*model.Review, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewService) AddImage(ctx context.Context, reviewID int64, url string) (*model.ReviewImage, error) {
	args := m.Called(ctx, reviewID, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReviewImage), args.Error(1)
}

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) ListBySpot(ctx context.Context, spotID int64) ([]model.Booking, error) {
	args := m.Called(ctx, spotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *MockBookingService) Create(ctx context.Context, spotID int64, in service.CreateBookingInput) (*model.Booking, error) {
	args := m.Called(ctx, spotID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	serializer.UseJSONFieldNames()
	return gin.New()
}
