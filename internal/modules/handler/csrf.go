package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/memodb-io/rentspot/internal/config"
	"github.com/memodb-io/rentspot/internal/middleware"
)

type CSRFHandler struct {
	cfg *config.Config
}

func NewCSRFHandler(cfg *config.Config) *CSRFHandler {
	return &CSRFHandler{cfg: cfg}
}

// Restore godoc
//
//	@Summary		Restore the CSRF token
//	@Description	Sets the XSRF-TOKEN cookie and echoes the token so clients can seed their header.
//	@Tags			csrf
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/csrf/restore [get]
func (h *CSRFHandler) Restore(c *gin.Context) {
	token := middleware.IssueCSRFToken(c, h.cfg)
	c.JSON(http.StatusOK, gin.H{middleware.CSRFTokenHeader: token})
}
