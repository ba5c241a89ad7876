package model

import (
	"time"

	"gorm.io/datatypes"
)

// Booking reserves a spot for the nights in [StartDate, EndDate).
type Booking struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	SpotID    int64          `gorm:"not null;index:idx_bookings_spot_dates,priority:1" json:"spotId"`
	UserID    *int64         `gorm:"index" json:"userId,omitempty"`
	StartDate datatypes.Date `gorm:"not null;index:idx_bookings_spot_dates,priority:2" json:"startDate"`
	EndDate   datatypes.Date `gorm:"not null;index:idx_bookings_spot_dates,priority:3" json:"endDate"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`

	Spot *Spot `gorm:"foreignKey:SpotID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Booking) TableName() string { return "bookings" }
