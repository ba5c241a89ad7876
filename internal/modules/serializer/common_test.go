package serializer

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

type spotBody struct {
	City  string  `json:"city" binding:"required"`
	Price float64 `json:"price" binding:"required,gt=0"`
	Stars int     `json:"stars" binding:"omitempty,min=1,max=5"`
	URL   string  `json:"url" binding:"omitempty,url"`
}

func TestParamErr_FieldErrors(t *testing.T) {
	UseJSONFieldNames()

	err := binding.Validator.ValidateStruct(&spotBody{Price: -1, Stars: 9, URL: "nope"})

	res := ParamErr("", err)
	assert.Equal(t, "Bad Request", res.Message)
	assert.Equal(t, map[string]string{
		"city":  "is required",
		"price": "must be positive",
		"stars": "must be at most 5",
		"url":   "must be a valid URL",
	}, res.Errors)
}

func TestErr_DetailOnlyOutsideRelease(t *testing.T) {
	defer gin.SetMode(gin.TestMode)

	gin.SetMode(gin.DebugMode)
	assert.Equal(t, "boom", DBErr("", errors.New("boom")).Error)
	assert.Equal(t, "database error", DBErr("", nil).Message)

	gin.SetMode(gin.ReleaseMode)
	assert.Empty(t, DBErr("", errors.New("boom")).Error)
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, Response{Message: "Successfully deleted"}, Deleted())
	assert.Equal(t, "Not Found", NotFoundErr("").Message)
	assert.Equal(t, "Forbidden", ForbiddenErr("").Message)
	assert.Equal(t, "Bad Request", ParamErr("", errors.New("EOF")).Message)
}
