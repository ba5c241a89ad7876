package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/memodb-io/rentspot/internal/modules/serializer"
	"github.com/memodb-io/rentspot/internal/modules/service"
)

const dateLayout = "2006-01-02"

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(s service.BookingService) *BookingHandler {
	return &BookingHandler{svc: s}
}

// ListSpotBookings godoc
//
//	@Summary	List bookings of a spot
//	@Tags		booking
//	@Produce	json
//	@Param		id	path		integer	true	"Spot ID"
//	@Success	200	{object}	map[string][]model.Booking
//	@Router		/spots/{id}/bookings [get]
func (h *BookingHandler) ListSpotBookings(c *gin.Context) {
	spotID, ok := pathID(c, "id")
	if !ok {
		return
	}

	bs, err := h.svc.ListBySpot(c.Request.Context(), spotID)
	if err != nil {
		writeServiceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"Bookings": bs})
}

type CreateBookingReq struct {
	StartDate string `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" binding:"required,datetime=2006-01-02"`
}

// CreateBooking godoc
//
//	@Summary	Book a spot
//	@Tags		booking
//	@Accept		json
//	@Produce	json
//	@Param		id			path		integer						true	"Spot ID"
//	@Param		XSRF-Token	header		string						true	"CSRF token"
//	@Param		payload		body		handler.CreateBookingReq	true	"Dates"
//	@Success	201			{object}	model.Booking
//	@Failure	400			{object}	serializer.Response
//	@Failure	409			{object}	serializer.Response
//	@Router		/spots/{id}/bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	spotID, ok := pathID(c, "id")
	if !ok {
		return
	}
	req := CreateBookingReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	// the binding already checked the layout
	start, _ := time.Parse(dateLayout, req.StartDate)
	end, _ := time.Parse(dateLayout, req.EndDate)

	b, err := h.svc.Create(c.Request.Context(), spotID, service.CreateBookingInput{StartDate: start, EndDate: end})
	if err != nil {
		writeServiceErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// DeleteBooking godoc
//
//	@Summary	Cancel a booking
//	@Tags		booking
//	@Produce	json
//	@Param		id			path		integer	true	"Booking ID"
//	@Param		XSRF-Token	header		string	true	"CSRF token"
//	@Success	200			{object}	serializer.Response
//	@Failure	403			{object}	serializer.Response
//	@Router		/bookings/{id} [delete]
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeServiceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Deleted())
}
