package bootstrap

import (
	"fmt"

	"github.com/memodb-io/rentspot/internal/modules/model"
	"gorm.io/gorm"
)

// EnsureSchema creates or aligns the tables and constraints of every model.
func EnsureSchema(d *gorm.DB) error {
	if err := d.AutoMigrate(
		&model.Spot{},
		&model.SpotImage{},
		&model.Review{},
		&model.ReviewImage{},
		&model.Booking{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
