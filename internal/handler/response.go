// Package handler holds the response envelope and helpers shared by the
// per-entity handler packages.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/beautybox/salon-api/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// Error writes err with the HTTP status its AppError code maps to; anything
// unrecognized is a 500.
func Error(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := err.Error()
	if appErr, ok := apperrors.AsAppError(err); ok {
		switch appErr.Code {
		case apperrors.ErrNotFound:
			status = http.StatusNotFound
		case apperrors.ErrBadRequest:
			status = http.StatusBadRequest
		case apperrors.ErrConflict:
			status = http.StatusConflict
		}
		message = appErr.Message
	}
	c.JSON(status, NewErrorResponse(message))
}

// IDParam parses the :id path segment.
func IDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, NewErrorResponse("invalid id"))
		return 0, false
	}
	return id, true
}
