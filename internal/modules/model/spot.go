package model

import "time"

type Spot struct {
	ID           int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID      *int64   `gorm:"index" json:"ownerId,omitempty"`
	Address      string   `gorm:"type:text;not null;default:''" json:"address"`
	City         string   `gorm:"type:text;not null;index" json:"city"`
	State        string   `gorm:"type:text;not null" json:"state"`
	Country      string   `gorm:"type:text;not null;default:''" json:"country"`
	Lat          float64  `gorm:"not null;default:0" json:"lat"`
	Lng          float64  `gorm:"not null;default:0" json:"lng"`
	Name         string   `gorm:"type:varchar(50);not null;default:''" json:"name"`
	Description  string   `gorm:"type:text;not null;default:''" json:"description"`
	Price        float64  `gorm:"type:numeric(10,2);not null;index;check:chk_spots_price,price > 0" json:"price"`
	AvgRating    *float64 `gorm:"type:numeric(3,2)" json:"avgRating"`
	NumReviews   int      `gorm:"not null;default:0" json:"numReviews"`
	PreviewImage string   `gorm:"type:text;not null;default:''" json:"previewImage,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`

	// Spot <-> SpotImage
	SpotImages []SpotImage `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"SpotImages,omitempty"`

	// Spot <-> Review
	Reviews []Review `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Spot <-> Booking
	Bookings []Booking `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Spot) TableName() string { return "spots" }

type SpotImage struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	SpotID  int64  `gorm:"not null;index" json:"spotId"`
	URL     string `gorm:"type:text;not null" json:"url"`
	Preview bool   `gorm:"not null;default:false" json:"preview"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"-"`

	Spot *Spot `gorm:"foreignKey:SpotID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (SpotImage) TableName() string { return "spot_images" }
