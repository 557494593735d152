package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/service"
	"github.com/gin-gonic/gin"
)

var errInvalidBody = errors.New("invalid request body")

var kindStatus = map[service.Kind]int{
	service.KindInvalid:      http.StatusBadRequest,
	service.KindUnauthorized: http.StatusUnauthorized,
	service.KindForbidden:    http.StatusForbidden,
	service.KindNotFound:     http.StatusNotFound,
	service.KindConflict:     http.StatusConflict,
}

// newErrorResponse aborts the request with the status matching err. Anything
// that is not a *service.Error is reported as an internal error.
func newErrorResponse(c *gin.Context, err error) {
	var serviceErr *service.Error
	if errors.As(err, &serviceErr) {
		status, ok := kindStatus[serviceErr.Kind]
		if !ok {
			status = http.StatusInternalServerError
		}
		c.AbortWithStatusJSON(status, dto.NewErrorResponse(serviceErr.Message))
		return
	}

	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(service.ErrInternal.Error()))
}

// bindJSON decodes the body into input; an empty body leaves input zeroed.
// It writes the 400 response itself and reports whether to continue.
func bindJSON(c *gin.Context, input any) bool {
	if err := c.ShouldBindJSON(input); err != nil && !errors.Is(err, io.EOF) {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errInvalidBody.Error()))
		return false
	}
	return true
}
