package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/learntrail/internal/repository"
)

const (
	userHeader = "X-User-ID"
	userKey    = "userId"
)

// requireUser resolves the learner from X-User-ID. Authentication happens
// upstream; this only checks that the id names a known user.
func (h *handler) requireUser(c *gin.Context) {
	raw := c.GetHeader(userHeader)
	id, err := strconv.ParseInt(raw, 10, 64)
	if raw == "" || err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid " + userHeader + " header"})
		return
	}
	if _, err := h.svc.Users.GetByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			return
		}
		writeError(c, err)
		return
	}
	c.Set(userKey, id)
	c.Next()
}

func userID(c *gin.Context) int64 {
	return c.GetInt64(userKey)
}
