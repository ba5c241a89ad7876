package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/memodb-io/rentspot/internal/modules/serializer"
	"github.com/memodb-io/rentspot/internal/modules/service"
)

type SpotHandler struct {
	svc service.SpotService
}

func NewSpotHandler(s service.SpotService) *SpotHandler {
	return &SpotHandler{svc: s}
}

type ListSpotsReq struct {
	Page     int      `form:"page" binding:"omitempty,min=1"`
	Size     int      `form:"size" binding:"omitempty,min=1,max=20"`
	MinPrice *float64 `form:"minPrice" binding:"omitempty,gte=0"`
	MaxPrice *float64 `form:"maxPrice" binding:"omitempty,gte=0"`
}

// ListSpots godoc
//
//	@Summary	List spots
//	@Tags		spot
//	@Produce	json
//	@Param		page		query		integer	false	"Page number, starting at 1"
//	@Param		size		query		integer	false	"Page size, max 20"
//	@Param		minPrice	query		number	false	"Minimum nightly price"
//	@Param		maxPrice	query		number	false	"Maximum nightly price"
//	@Success	200			{object}	service.ListSpotsOutput
//	@Router		/spots [get]
func (h *SpotHandler) ListSpots(c *gin.Context) {
	req := ListSpotsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.List(c.Request.Context(), service.ListSpotsInput{
		Page:     req.Page,
		Size:     req.Size,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
	})
	if err != nil {
		writeServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// GetSpot godoc
//
//	@Summary	Get spot details
//	@Tags		spot
//	@Produce	json
//	@Param		id	path		integer	true	"Spot ID"
//	@Success	200	{object}	model.Spot
//	@Failure	404	{object}	serializer.Response
//	@Router		/spots/{id} [get]
func (h *SpotHandler) GetSpot(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	spot, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, spot)
}

type CreateSpotReq struct {
	Address     string  `json:"address" binding:"omitempty,max=255"`
	City        string  `json:"city" binding:"required"`
	State       string  `json:"state" binding:"required"`
	Country     string  `json:"country"`
	Lat         float64 `json:"lat" binding:"omitempty,latitude"`
	Lng         float64 `json:"lng" binding:"omitempty,longitude"`
	Name        string  `json:"name" binding:"omitempty,max=50"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
}

// CreateSpot godoc
//
//	@Summary	Create spot
//	@Tags		spot
//	@Accept		json
//	@Produce	json
//	@Param		XSRF-Token	header		string				true	"CSRF token"
//	@Param		payload		body		handler.CreateSpotReq	true	"Spot"
//	@Success	201			{object}	model.Spot
//	@Failure	400			{object}	serializer.Response
//	@Router		/spots [post]
func (h *SpotHandler) CreateSpot(c *gin.Context) {
	req := CreateSpotReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	spot, err := h.svc.Create(c.Request.Context(), service.CreateSpotInput{
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
		Lat:         req.Lat,
		Lng:         req.Lng,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		writeServiceErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, spot)
}

type UpdateSpotReq struct {
	Address     *string  `json:"address" binding:"omitempty,max=255"`
	City        *string  `json:"city" binding:"omitempty,min=1"`
	State       *string  `json:"state" binding:"omitempty,min=1"`
	Country     *string  `json:"country"`
	Lat         *float64 `json:"lat" binding:"omitempty,latitude"`
	Lng         *float64 `json:"lng" binding:"omitempty,longitude"`
	Name        *string  `json:"name" binding:"omitempty,max=50"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
}

// UpdateSpot godoc
//
//	@Summary	Update spot
//	@Tags		spot
//	@Accept		json
//	@Produce	json
//	@Param		id			path		integer					true	"Spot ID"
//	@Param		XSRF-Token	header		string					true	"CSRF token"
//	@Param		payload		body		handler.UpdateSpotReq	true	"Fields to change"
//	@Success	200			{object}	model.Spot
//	@Router		/spots/{id} [put]
func (h *SpotHandler) UpdateSpot(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	req := UpdateSpotReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	spot, err := h.svc.Update(c.Request.Context(), id, service.UpdateSpotInput{
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
		Lat:         req.Lat,
		Lng:         req.Lng,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		writeServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, spot)
}

// DeleteSpot godoc
//
//	@Summary	Delete spot
//	@Tags		spot
//	@Produce	json
//	@Param		id			path		integer	true	"Spot ID"
//	@Param		XSRF-Token	header		string	true	"CSRF token"
//	@Success	200			{object}	serializer.Response
//	@Router		/spots/{id} [delete]
func (h *SpotHandler) DeleteSpot(c *gin.Context) {
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

type AddSpotImageReq struct {
	URL     string `json:"url" binding:"required,url"`
	Preview bool   `json:"preview"`
}

// AddSpotImage godoc
//
//	@Summary	Add an image to a spot
//	@Tags		spot
//	@Accept		json
//	@Produce	json
//	@Param		id			path		integer					true	"Spot ID"
//	@Param		XSRF-Token	header		string					true	"CSRF token"
//	@Param		payload		body		handler.AddSpotImageReq	true	"Image"
//	@Success	201			{object}	model.SpotImage
//	@Router		/spots/{id}/images [post]
func (h *SpotHandler) AddSpotImage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	req := AddSpotImageReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	img, err := h.svc.AddImage(c.Request.Context(), id, service.AddSpotImageInput{URL: req.URL, Preview: req.Preview})
	if err != nil {
		writeServiceErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, img)
}
