package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/learntrail/internal/snapshot"
)

// GET /api/v1/courses
func (h *handler) listCourses(c *gin.Context) {
	courses, err := h.svc.Courses.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]*snapshot.CourseSchema, 0, len(courses))
	for _, course := range courses {
		out = append(out, snapshot.FromCourse(course))
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/v1/courses imports a course snapshot. Ids are optional.
func (h *handler) importCourse(c *gin.Context) {
	s, err := snapshot.DecodeCourse(c.Request.Body)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	course, err := h.svc.Courses.Import(c.Request.Context(), s)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, snapshot.FromCourse(course))
}

// GET /api/v1/courses/:uuid/meta
func (h *handler) courseMeta(c *gin.Context) {
	course, err := h.svc.Courses.Get(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot.FromCourse(course))
}
