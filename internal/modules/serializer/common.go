package serializer

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Response is the JSON body of every non-entity reply.
type Response struct {
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// Err
func Err(msg string, err error) Response {
	res := Response{Message: msg}
	// development mode, show error detail
	if err != nil && gin.Mode() != gin.ReleaseMode {
		res.Error = fmt.Sprintf("%+v", err)
	}
	return res
}

// DBErr
func DBErr(msg string, err error) Response {
	if msg == "" {
		msg = "database error"
	}
	return Err(msg, err)
}

// ParamErr turns binding failures into a field → reason map when possible.
func ParamErr(msg string, err error) Response {
	if msg == "" {
		msg = "Bad Request"
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return ValidationErr(msg, FieldErrors(verrs))
	}
	return Err(msg, err)
}

// ValidationErr
func ValidationErr(msg string, fields map[string]string) Response {
	if msg == "" {
		msg = "Bad Request"
	}
	return Response{Message: msg, Errors: fields}
}

// NotFoundErr
func NotFoundErr(msg string) Response {
	if msg == "" {
		msg = http.StatusText(http.StatusNotFound)
	}
	return Response{Message: msg}
}

// ConflictErr
func ConflictErr(msg string, fields map[string]string) Response {
	return Response{Message: msg, Errors: fields}
}

// ForbiddenErr
func ForbiddenErr(msg string) Response {
	if msg == "" {
		msg = http.StatusText(http.StatusForbidden)
	}
	return Response{Message: msg}
}

// Deleted is the body of a successful delete.
func Deleted() Response {
	return Response{Message: "Successfully deleted"}
}

// FieldErrors maps each failed field to a human readable reason.
func FieldErrors(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = reason(fe)
	}
	return out
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		if fe.Param() == "0" {
			return "must be positive"
		}
		return "must be greater than " + fe.Param()
	case "gte", "min":
		return "must be at least " + fe.Param()
	case "lte", "max":
		return "must be at most " + fe.Param()
	case "url":
		return "must be a valid URL"
	case "datetime":
		return "must be a date formatted as YYYY-MM-DD"
	case "latitude":
		return "latitude is not valid"
	case "longitude":
		return "longitude is not valid"
	default:
		return "is invalid"
	}
}

// UseJSONFieldNames makes validation errors report json/form names instead of
// Go field names.
func UseJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
}
