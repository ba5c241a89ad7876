package repo

import (
	"context"
	"errors"

	"github.com/memodb-io/rentspot/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrBookingOverlap is returned by Reserve when the requested range is taken.
var ErrBookingOverlap = errors.New("booking overlaps an existing booking")

type BookingRepo interface {
	ListBySpot(ctx context.Context, spotID int64) ([]model.Booking, error)
	Reserve(ctx context.Context, b *model.Booking) error
	Get(ctx context.Context, id int64) (*model.Booking, error)
	Delete(ctx context.Context, id int64) error
}

type bookingRepo struct{ db *gorm.DB }

func NewBookingRepo(db *gorm.DB) BookingRepo {
	return &bookingRepo{db: db}
}

func (r *bookingRepo) ListBySpot(ctx context.Context, spotID int64) ([]model.Booking, error) {
	var bookings []model.Booking
	return bookings, r.db.WithContext(ctx).
		Where("spot_id = ?", spotID).
		Order("start_date ASC, id ASC").
		Find(&bookings).Error
}

// Reserve inserts b unless [StartDate, EndDate) intersects another booking of
// the same spot. The spot row stays locked (FOR UPDATE) until the insert
// commits, so concurrent reservations of one spot run one at a time.
// A missing spot yields gorm.ErrRecordNotFound.
func (r *bookingRepo) Reserve(ctx context.Context, b *model.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var spot model.Spot
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", b.SpotID).
			First(&spot).Error; err != nil {
			return err
		}

		var n int64
		if err := tx.Model(&model.Booking{}).
			Where("spot_id = ? AND start_date < ? AND end_date > ?", b.SpotID, b.EndDate, b.StartDate).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrBookingOverlap
		}
		return tx.Create(b).Error
	})
}

func (r *bookingRepo) Get(ctx context.Context, id int64) (*model.Booking, error) {
	var b model.Booking
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Booking{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
