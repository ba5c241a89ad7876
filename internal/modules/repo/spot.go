package repo

import (
	"context"

	"github.com/memodb-io/rentspot/internal/modules/model"
	"gorm.io/gorm"
)

// SpotFilter narrows a spot listing. Nil price bounds are ignored.
type SpotFilter struct {
	Offset   int
	Limit    int
	MinPrice *float64
	MaxPrice *float64
}

type SpotRepo interface {
	List(ctx context.Context, f SpotFilter) ([]model.Spot, error)
	Get(ctx context.Context, id int64) (*model.Spot, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, s *model.Spot) error
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	AddImage(ctx context.Context, img *model.SpotImage) error
	RecalcRating(ctx context.Context, spotID int64) error
}

type spotRepo struct{ db *gorm.DB }

func NewSpotRepo(db *gorm.DB) SpotRepo {
	return &spotRepo{db: db}
}

func (r *spotRepo) List(ctx context.Context, f SpotFilter) ([]model.Spot, error) {
	q := r.db.WithContext(ctx).Model(&model.Spot{})
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var spots []model.Spot
	return spots, q.Order("id ASC").Find(&spots).Error
}

// Get loads a spot with its images. Missing rows yield gorm.ErrRecordNotFound.
func (r *spotRepo) Get(ctx context.Context, id int64) (*model.Spot, error) {
	var s model.Spot
	err := r.db.WithContext(ctx).
		Preload("SpotImages", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *spotRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Spot{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *spotRepo) Create(ctx context.Context, s *model.Spot) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *spotRepo) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.Spot{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *spotRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Spot{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AddImage stores the image. A preview image demotes the previous preview and
// becomes the spot's previewImage.
func (r *spotRepo) AddImage(ctx context.Context, img *model.SpotImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if img.Preview {
			if err := tx.Model(&model.SpotImage{}).
				Where("spot_id = ? AND preview = ?", img.SpotID, true).
				Update("preview", false).Error; err != nil {
				return err
			}
		}
		if err := tx.Create(img).Error; err != nil {
			return err
		}
		if !img.Preview {
			return nil
		}
		return tx.Model(&model.Spot{}).Where("id = ?", img.SpotID).Update("preview_image", img.URL).Error
	})
}

const recalcRatingSQL = `
UPDATE spots
SET avg_rating = agg.avg_stars, num_reviews = agg.cnt, updated_at = NOW()
FROM (
	SELECT ROUND(AVG(stars)::numeric, 2) AS avg_stars, COUNT(*) AS cnt
	FROM reviews WHERE spot_id = ?
) AS agg
WHERE spots.id = ?`

// RecalcRating recomputes avgRating and numReviews from the reviews table.
func (r *spotRepo) RecalcRating(ctx context.Context, spotID int64) error {
	return r.db.WithContext(ctx).Exec(recalcRatingSQL, spotID, spotID).Error
}
