package model

import "time"

// MaxReviewImages caps the images attached to one review.
const MaxReviewImages = 10

type Review struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	SpotID int64  `gorm:"not null;index" json:"spotId"`
	UserID *int64 `gorm:"index" json:"userId,omitempty"`
	Review string `gorm:"type:text;not null" json:"review"`
	Stars  int    `gorm:"type:smallint;not null;check:chk_reviews_stars,stars BETWEEN 1 AND 5" json:"stars"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`

	// Review <-> Spot
	Spot *Spot `gorm:"foreignKey:SpotID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Review <-> ReviewImage
	ReviewImages []ReviewImage `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"ReviewImages,omitempty"`
}

func (Review) TableName() string { return "reviews" }

type ReviewImage struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ReviewID int64  `gorm:"not null;index" json:"reviewId"`
	URL      string `gorm:"type:text;not null" json:"url"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"-"`

	Review *Review `gorm:"foreignKey:ReviewID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (ReviewImage) TableName() string { return "review_images" }

// ReviewEvent is published whenever a review changes the rating of a spot.
type ReviewEvent struct {
	Kind     string `json:"kind"`
	SpotID   int64  `json:"spot_id"`
	ReviewID int64  `json:"review_id"`
}

const (
	ReviewCreated = "created"
	ReviewUpdated = "updated"
	ReviewDeleted = "deleted"
)
