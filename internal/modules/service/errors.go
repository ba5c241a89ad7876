package service

import "errors"

// Service layer errors for better error handling
var (
	ErrSpotNotFound    = errors.New("spot not found")
	ErrReviewNotFound  = errors.New("review not found")
	ErrBookingNotFound = errors.New("booking not found")

	// Review image errors
	ErrReviewImageLimit = errors.New("maximum number of images for this review was reached")

	// Booking errors
	ErrInvalidDates    = errors.New("end date must be after start date")
	ErrBookingConflict = errors.New("spot is already booked for the specified dates")
	ErrBookingStarted  = errors.New("bookings that have been started can't be deleted")
)
