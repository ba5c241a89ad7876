package repo

import (
	"context"

	"github.com/memodb-io/rentspot/internal/modules/model"
	"gorm.io/gorm"
)

type ReviewRepo interface {
	ListAll(ctx context.Context) ([]model.Review, error)
	ListBySpot(ctx context.Context, spotID int64) ([]model.Review, error)
	Get(ctx context.Context, id int64) (*model.Review, error)
	Create(ctx context.Context, rv *model.Review) error
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	AddImage(ctx context.Context, img *model.ReviewImage) error
	CountImages(ctx context.Context, reviewID int64) (int64, error)
}

type reviewRepo struct{ db *gorm.DB }

func NewReviewRepo(db *gorm.DB) ReviewRepo {
	return &reviewRepo{db: db}
}

func orderImages(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }

func (r *reviewRepo) ListAll(ctx context.Context) ([]model.Review, error) {
	var reviews []model.Review
	return reviews, r.db.WithContext(ctx).
		Preload("ReviewImages", orderImages).
		Order("id ASC").
		Find(&reviews).Error
}

func (r *reviewRepo) ListBySpot(ctx context.Context, spotID int64) ([]model.Review, error) {
	var reviews []model.Review
	return reviews, r.db.WithContext(ctx).
		Preload("ReviewImages", orderImages).
		Where("spot_id = ?", spotID).
		Order("id ASC").
		Find(&reviews).Error
}

func (r *reviewRepo) Get(ctx context.Context, id int64) (*model.Review, error) {
	var rv model.Review
	err := r.db.WithContext(ctx).
		Preload("ReviewImages", orderImages).
		Where("id = ?", id).
		First(&rv).Error
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *reviewRepo) Create(ctx context.Context, rv *model.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *reviewRepo) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.Review{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reviewRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Review{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reviewRepo) AddImage(ctx context.Context, img *model.ReviewImage) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *reviewRepo) CountImages(ctx context.Context, reviewID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ReviewImage{}).Where("review_id = ?", reviewID).Count(&n).Error
	return n, err
}
