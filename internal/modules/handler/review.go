package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/memodb-io/rentspot/internal/modules/serializer"
	"github.com/memodb-io/rentspot/internal/modules/service"
)

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(s service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: s}
}

// ListReviews godoc
//
//	@Summary	List all reviews
//	@Tags		review
//	@Produce	json
//	@Success	200	{object}	map[string][]model.Review
//	@Router		/reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	rs, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		writeServiceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"Reviews": rs})
}

// ListSpotReviews godoc
//
//	@Summary	List reviews of a spot
//	@Tags		review
//	@Produce	json
//	@Param		id	path		integer	true	"Spot ID"
//	@Success	200	{object}	map[string][]model.Review
//	@Failure	404	{object}	serializer.Response
//	@Router		/spots/{id}/reviews [get]
func (h *ReviewHandler) ListSpotReviews(c *gin.Context) {
	spotID, ok := pathID(c, "id")
	if !ok {
		return
	}

	rs, err := h.svc.ListBySpot(c.Request.Context(), spotID)
	if err != nil {
		writeServiceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"Reviews": rs})
}

// GetReview godoc
//
//	@Summary	Get review
//	@Tags		review
//	@Produce	json
//	@Param		id	path		integer	true	"Review ID"
//	@Success	200	{object}	model.Review
//	@Router		/reviews/{id} [get]
func (h *ReviewHandler) GetReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	rv, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, rv)
}

type CreateReviewReq struct {
	Review string `json:"review" binding:"required"`
	Stars  int    `json:"stars" binding:"required,min=1,max=5"`
}

// CreateReview godoc
//
//	@Summary	Review a spot
//	@Tags		review
//	@Accept		json
//	@Produce	json
//	@Param		id			path		integer					true	"Spot ID"
//	@Param		XSRF-Token	header		string					true	"CSRF token"
//	@Param		payload		body		handler.CreateReviewReq	true	"Review"
//	@Success	201			{object}	model.Review
//	@Failure	400			{object}	serializer.Response
//	@Failure	404			{object}	serializer.Response
//	@Router		/spots/{id}/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	spotID, ok := pathID(c, "id")
	if !ok {
		return
	}
	req := CreateReviewReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	rv, err := h.svc.Create(c.Request.Context(), spotID, service.CreateReviewInput{Review: req.Review, Stars: req.Stars})
	if err != nil {
		writeServiceErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, rv)
}

type UpdateReviewReq struct {
	Review *string `json:"review" binding:"omitempty,min=1"`
	Stars  *int    `json:"stars" binding:"omitempty,min=1,max=5"`
}

// UpdateReview godoc
//
//	@Summary	Edit a review
//	@Tags		review
//	@Accept		json
//	@Produce	json
//	@Param		id			path		integer					true	"Review ID"
//	@Param		XSRF-Token	header		string					true	"CSRF token"
//	@Param		payload		body		handler.UpdateReviewReq	true	"Fields to change"
//	@Success	200			{object}	model.Review
//	@Router		/reviews/{id} [put]
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	req := UpdateReviewReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	rv, err := h.svc.Update(c.Request.Context(), id, service.UpdateReviewInput{Review: req.Review, Stars: req.Stars})
	if err != nil {
		writeServiceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, rv)
}

// DeleteReview godoc
//
//	@Summary	Delete a review
//	@Tags		review
//	@Produce	json
//	@Param		id			path		integer	true	"Review ID"
//	@Param		XSRF-Token	header		string	true	"CSRF token"
//	@Success	200			{object}	serializer.Response
//	@Router		/reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
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

type AddReviewImageReq struct {
	URL string `json:"url" binding:"required,url"`
}

// AddReviewImage godoc
//
//	@Summary	Attach an image to a review
//	@Tags		review
//	@Accept		json
//	@Produce	json
//	@Param		id			path		integer						true	"Review ID"
//	@Param		XSRF-Token	header		string						true	"CSRF token"
//	@Param		payload		body		handler.AddReviewImageReq	true	"Image"
//	@Success	201			{object}	model.ReviewImage
//	@Failure	403			{object}	serializer.Response
//	@Router		/reviews/{id}/images [post]
func (h *ReviewHandler) AddReviewImage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	req := AddReviewImageReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	img, err := h.svc.AddImage(c.Request.Context(), id, req.URL)
	if err != nil {
		writeServiceErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, img)
}
