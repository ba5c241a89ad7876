package service

import (
	"context"
	"errors"
	"testing"

	"github.com/memodb-io/rentspot/internal/config"
	"github.com/memodb-io/rentspot/internal/modules/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.RabbitMQ.ExchangeName.Review = "rentspot.review"
	cfg.RabbitMQ.RoutingKey.ReviewChanged = "review.changed"
	return cfg
}

func TestReviewService_Create(t *testing.T) {
	ctx := context.Background()
	in := CreateReviewInput{Review: "lovely", Stars: 5}
	created := model.ReviewEvent{Kind: model.ReviewCreated, SpotID: 3, ReviewID: 30}

	tests := []struct {
		name    string
		setup   func(*MockReviewRepo, *MockSpotRepo, *MockRatingService, *MockPublisher)
		usePub  bool
		wantErr error
	}{
		{
			name: "inline refresh without publisher",
			setup: func(rr *MockReviewRepo, sr *MockSpotRepo, rs *MockRatingService, _ *MockPublisher) {
				sr.On("Exists", ctx, int64(3)).Return(true, nil)
				rr.On("Create", ctx, mock.AnythingOfType("*model.Review")).Run(func(args mock.Arguments) {
					args.Get(1).(*model.Review).ID = 30
				}).Return(nil)
				rs.On("Refresh", ctx, int64(3)).Return(nil)
			},
		},
		{
			name:   "published to the rating worker",
			usePub: true,
			setup: func(rr *MockReviewRepo, sr *MockSpotRepo, _ *MockRatingService, p *MockPublisher) {
				sr.On("Exists", ctx, int64(3)).Return(true, nil)
				rr.On("Create", ctx, mock.AnythingOfType("*model.Review")).Run(func(args mock.Arguments) {
					args.Get(1).(*model.Review).ID = 30
				}).Return(nil)
				p.On("PublishJSON", ctx, "rentspot.review", "review.changed", created).Return(nil)
			},
		},
		{
			name:   "publish failure falls back to inline refresh",
			usePub: true,
			setup: func(rr *MockReviewRepo, sr *MockSpotRepo, rs *MockRatingService, p *MockPublisher) {
				sr.On("Exists", ctx, int64(3)).Return(true, nil)
				rr.On("Create", ctx, mock.AnythingOfType("*model.Review")).Run(func(args mock.Arguments) {
					args.Get(1).(*model.Review).ID = 30
				}).Return(nil)
				p.On("PublishJSON", ctx, "rentspot.review", "review.changed", created).Return(errors.New("channel closed"))
				rs.On("Refresh", ctx, int64(3)).Return(nil)
			},
		},
		{
			name: "missing spot",
			setup: func(_ *MockReviewRepo, sr *MockSpotRepo, _ *MockRatingService, _ *MockPublisher) {
				sr.On("Exists", ctx, int64(3)).Return(false, nil)
			},
			wantErr: ErrSpotNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, sr, rs, p := &MockReviewRepo{}, &MockSpotRepo{}, &MockRatingService{}, &MockPublisher{}
			tt.setup(rr, sr, rs, p)
			var pub EventPublisher
			if tt.usePub {
				pub = p
			}
			svc := NewReviewService(rr, sr, rs, pub, testConfig(), zap.NewNop())

			got, err := svc.Create(ctx, 3, in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				rr.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(30), got.ID)
			assert.Equal(t, int64(3), got.SpotID)
			rr.AssertExpectations(t)
			rs.AssertExpectations(t)
			p.AssertExpectations(t)
		})
	}
}

func TestReviewService_Update(t *testing.T) {
	ctx := context.Background()
	stars := 2
	text := "changed my mind"

	t.Run("stars change refreshes rating", func(t *testing.T) {
		rr, rs := &MockReviewRepo{}, &MockRatingService{}
		rr.On("Update", ctx, int64(30), map[string]interface{}{"stars": 2}).Return(nil)
		rr.On("Get", ctx, int64(30)).Return(&model.Review{ID: 30, SpotID: 3, Stars: 2}, nil)
		rs.On("Refresh", ctx, int64(3)).Return(nil)

		got, err := NewReviewService(rr, &MockSpotRepo{}, rs, nil, testConfig(), zap.NewNop()).
			Update(ctx, 30, UpdateReviewInput{Stars: &stars})

		require.NoError(t, err)
		assert.Equal(t, 2, got.Stars)
		rs.AssertExpectations(t)
	})

	t.Run("text only leaves rating alone", func(t *testing.T) {
		rr, rs := &MockReviewRepo{}, &MockRatingService{}
		rr.On("Update", ctx, int64(30), map[string]interface{}{"review": text}).Return(nil)
		rr.On("Get", ctx, int64(30)).Return(&model.Review{ID: 30, SpotID: 3, Review: text}, nil)

		_, err := NewReviewService(rr, &MockSpotRepo{}, rs, nil, testConfig(), zap.NewNop()).
			Update(ctx, 30, UpdateReviewInput{Review: &text})

		require.NoError(t, err)
		rs.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything)
	})

	t.Run("missing", func(t *testing.T) {
		rr := &MockReviewRepo{}
		rr.On("Update", ctx, int64(31), mock.Anything).Return(gorm.ErrRecordNotFound)

		_, err := NewReviewService(rr, &MockSpotRepo{}, &MockRatingService{}, nil, testConfig(), zap.NewNop()).
			Update(ctx, 31, UpdateReviewInput{Stars: &stars})

		assert.ErrorIs(t, err, ErrReviewNotFound)
	})
}

func TestReviewService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes and refreshes parent", func(t *testing.T) {
		rr, rs := &MockReviewRepo{}, &MockRatingService{}
		rr.On("Get", ctx, int64(30)).Return(&model.Review{ID: 30, SpotID: 3}, nil)
		rr.On("Delete", ctx, int64(30)).Return(nil)
		rs.On("Refresh", ctx, int64(3)).Return(nil)

		err := NewReviewService(rr, &MockSpotRepo{}, rs, nil, testConfig(), zap.NewNop()).Delete(ctx, 30)

		require.NoError(t, err)
		rr.AssertExpectations(t)
		rs.AssertExpectations(t)
	})

	t.Run("missing", func(t *testing.T) {
		rr := &MockReviewRepo{}
		rr.On("Get", ctx, int64(31)).Return(nil, gorm.ErrRecordNotFound)

		err := NewReviewService(rr, &MockSpotRepo{}, &MockRatingService{}, nil, testConfig(), zap.NewNop()).Delete(ctx, 31)

		assert.ErrorIs(t, err, ErrReviewNotFound)
	})
}

func TestReviewService_AddImage(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		count   int64
		wantErr error
	}{
		{name: "under limit", count: 9},
		{name: "limit reached", count: model.MaxReviewImages, wantErr: ErrReviewImageLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := &MockReviewRepo{}
			rr.On("Get", ctx, int64(30)).Return(&model.Review{ID: 30, SpotID: 3}, nil)
			rr.On("CountImages", ctx, int64(30)).Return(tt.count, nil)
			rr.On("AddImage", ctx, &model.ReviewImage{ReviewID: 30, URL: "https://img/r.png"}).Return(nil)

			img, err := NewReviewService(rr, &MockSpotRepo{}, &MockRatingService{}, nil, testConfig(), zap.NewNop()).
				AddImage(ctx, 30, "https://img/r.png")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				rr.AssertNotCalled(t, "AddImage", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "https://img/r.png", img.URL)
		})
	}
}

func TestReviewService_Lists(t *testing.T) {
	ctx := context.Background()
	rr, sr := &MockReviewRepo{}, &MockSpotRepo{}
	rr.On("ListAll", ctx).Return(nil, nil)
	sr.On("Exists", ctx, int64(3)).Return(true, nil)
	sr.On("Exists", ctx, int64(4)).Return(false, nil)
	rr.On("ListBySpot", ctx, int64(3)).Return([]model.Review{{ID: 1, SpotID: 3}}, nil)
	svc := NewReviewService(rr, sr, &MockRatingService{}, nil, testConfig(), zap.NewNop())

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	bySpot, err := svc.ListBySpot(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, bySpot, 1)

	_, err = svc.ListBySpot(ctx, 4)
	assert.ErrorIs(t, err, ErrSpotNotFound)
}
