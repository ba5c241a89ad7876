package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/memodb-io/rentspot/internal/modules/serializer"
	"github.com/memodb-io/rentspot/internal/modules/service"
)

// pathID parses a positive integer path parameter, writing a 400 on failure.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, serializer.ValidationErr("", map[string]string{name: "must be a positive integer"}))
		return 0, false
	}
	return id, true
}

// writeServiceErr maps service sentinel errors to status codes.
func writeServiceErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSpotNotFound):
		c.JSON(http.StatusNotFound, serializer.NotFoundErr("Spot couldn't be found"))
	case errors.Is(err, service.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, serializer.NotFoundErr("Review couldn't be found"))
	case errors.Is(err, service.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, serializer.NotFoundErr("Booking couldn't be found"))
	case errors.Is(err, service.ErrReviewImageLimit):
		c.JSON(http.StatusForbidden, serializer.ForbiddenErr("Maximum number of images for this resource was reached"))
	case errors.Is(err, service.ErrBookingStarted):
		c.JSON(http.StatusForbidden, serializer.ForbiddenErr("Bookings that have been started can't be deleted"))
	case errors.Is(err, service.ErrInvalidDates):
		c.JSON(http.StatusBadRequest, serializer.ValidationErr("", map[string]string{"endDate": "endDate cannot be on or before startDate"}))
	case errors.Is(err, service.ErrBookingConflict):
		c.JSON(http.StatusConflict, serializer.ConflictErr("Sorry, this spot is already booked for the specified dates", map[string]string{
			"startDate": "Start date conflicts with an existing booking",
			"endDate":   "End date conflicts with an existing booking",
		}))
	default:
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
	}
}
