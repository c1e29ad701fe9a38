package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/learntrail/internal/domain"
	"github.com/alexanderramin/learntrail/internal/snapshot"
)

// GET /api/v1/trail/org/:org/trail. The bundled server hosts a single
// organization, so :org is accepted and ignored.
func (h *handler) getTrail(c *gin.Context) {
	trail, err := h.svc.Trails.GetTrail(c.Request.Context(), userID(c))
	h.writeTrail(c, trail, err)
}

// POST /api/v1/trail/add_course/:uuid
func (h *handler) addCourse(c *gin.Context) {
	trail, err := h.svc.Trails.StartCourse(c.Request.Context(), userID(c), c.Param("uuid"))
	h.writeTrail(c, trail, err)
}

// POST /api/v1/trail/add_activity/:uuid marks the activity complete. The
// course is resolved from the activity.
func (h *handler) addActivity(c *gin.Context) {
	ctx := c.Request.Context()
	activityUUID := c.Param("uuid")
	course, err := h.svc.Courses.FindByActivity(ctx, activityUUID)
	if err != nil {
		writeError(c, err)
		return
	}
	trail, err := h.svc.Trails.MarkActivityComplete(ctx, userID(c), course.CourseUUID, activityUUID)
	h.writeTrail(c, trail, err)
}

// DELETE /api/v1/trail/remove_course/:uuid
func (h *handler) removeCourse(c *gin.Context) {
	trail, err := h.svc.Trails.RemoveCourse(c.Request.Context(), userID(c), c.Param("uuid"))
	h.writeTrail(c, trail, err)
}

func (h *handler) writeTrail(c *gin.Context, trail *domain.Trail, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot.FromTrail(trail))
}
