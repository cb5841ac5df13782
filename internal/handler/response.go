package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/medidesk/frontdesk-api/pkg/errors"
)

// Response is the error envelope. Successful calls return the document or
// array directly; the dashboard consumes bare JSON.
type Response struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// NewBindingErrorResponse reports validation failures field by field when
// the bind error carries them, falling back to the plain message.
func NewBindingErrorResponse(err error) *Response {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewErrorResponse(err.Error())
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		switch fe.Tag() {
		case "required":
			fields[name] = "is required"
		case "oneof":
			fields[name] = fmt.Sprintf("must be one of: %s", fe.Param())
		default:
			fields[name] = fmt.Sprintf("failed %s validation", fe.Tag())
		}
	}

	return &Response{
		Status:  "error",
		Message: "validation failed",
		Fields:  fields,
	}
}

// RespondError maps application errors to their HTTP status and hides
// internal detail behind a generic message.
func RespondError(c *gin.Context, err error) {
	c.Error(err)
	if appErr, ok := apperrors.As(err); ok {
		c.JSON(appErr.StatusCode(), NewErrorResponse(appErr.Message))
		return
	}
	c.JSON(http.StatusInternalServerError, NewErrorResponse("internal server error"))
}
