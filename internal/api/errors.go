package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/learntrail/internal/repository"
	"github.com/alexanderramin/learntrail/internal/service"
)

// statusFor maps service and store sentinels onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicate),
		errors.Is(err, service.ErrAlreadyCertified),
		errors.Is(err, service.ErrCourseIncomplete),
		errors.Is(err, service.ErrNoCertification):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders {"error": msg}. Internal errors are recorded on the
// context for the request log and hidden from the client.
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}
