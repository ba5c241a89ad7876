package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/memodb-io/rentspot/internal/modules/model"
	"github.com/memodb-io/rentspot/internal/modules/repo"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BookingService interface {
	ListBySpot(ctx context.Context, spotID int64) ([]model.Booking, error)
	Create(ctx context.Context, spotID int64, in CreateBookingInput) (*model.Booking, error)
	Delete(ctx context.Context, id int64) error
}

type bookingService struct {
	bookings repo.BookingRepo
	spots    repo.SpotRepo
	log      *zap.Logger
	now      func() time.Time
}

func NewBookingService(bookings repo.BookingRepo, spots repo.SpotRepo, log *zap.Logger) BookingService {
	return &bookingService{bookings: bookings, spots: spots, log: log, now: time.Now}
}

func (s *bookingService) requireSpot(ctx context.Context, spotID int64) error {
	ok, err := s.spots.Exists(ctx, spotID)
	if err != nil {
		return fmt.Errorf("check spot: %w", err)
	}
	if !ok {
		return ErrSpotNotFound
	}
	return nil
}

func (s *bookingService) ListBySpot(ctx context.Context, spotID int64) ([]model.Booking, error) {
	if err := s.requireSpot(ctx, spotID); err != nil {
		return nil, err
	}
	bs, err := s.bookings.ListBySpot(ctx, spotID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	if bs == nil {
		bs = []model.Booking{}
	}
	return bs, nil
}

type CreateBookingInput struct {
	StartDate time.Time
	EndDate   time.Time
}

func (s *bookingService) Create(ctx context.Context, spotID int64, in CreateBookingInput) (*model.Booking, error) {
	if !in.EndDate.After(in.StartDate) {
		return nil, ErrInvalidDates
	}
	b := &model.Booking{
		SpotID:    spotID,
		StartDate: datatypes.Date(in.StartDate),
		EndDate:   datatypes.Date(in.EndDate),
	}
	err := s.bookings.Reserve(ctx, b)
	switch {
	case errors.Is(err, repo.ErrBookingOverlap):
		return nil, ErrBookingConflict
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrSpotNotFound
	case err != nil:
		return nil, fmt.Errorf("reserve booking: %w", err)
	}
	s.log.Info("booking created", zap.Int64("spot_id", spotID), zap.Int64("booking_id", b.ID))
	return b, nil
}

func (s *bookingService) Delete(ctx context.Context, id int64) error {
	b, err := s.bookings.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("get booking: %w", err)
	}
	if !time.Time(b.StartDate).After(s.now()) {
		return ErrBookingStarted
	}
	err = s.bookings.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}
