package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/learntrail/internal/service"
)

type progressResponse struct {
	CourseUUID    string            `json:"course_uuid"`
	Completed     int               `json:"completed"`
	Total         int               `json:"total"`
	Percentage    int               `json:"percentage"`
	Complete      bool              `json:"complete"`
	CurrentIndex  int               `json:"current_index"`
	CurrentURL    string            `json:"current_url,omitempty"`
	PrevURL       string            `json:"prev_url,omitempty"`
	NextURL       string            `json:"next_url,omitempty"`
	CertificateID string            `json:"certificate_id,omitempty"`
	Chapters      []chapterProgress `json:"chapters"`
}

type chapterProgress struct {
	ChapterID  int64              `json:"chapter_id"`
	Name       string             `json:"name"`
	Activities []activityProgress `json:"activities"`
}

type activityProgress struct {
	ActivityUUID string `json:"activity_uuid"`
	Name         string `json:"name"`
	ActivityType string `json:"activity_type"`
	State        string `json:"state"`
}

// GET /api/v1/courses/:uuid/progress?current=<activity uuid>
func (h *handler) courseProgress(c *gin.Context) {
	src := &service.LocalSource{
		UserID:  userID(c),
		Courses: h.svc.Courses,
		Trails:  h.svc.Trails,
		Certs:   h.svc.Certs,
	}
	view, err := service.NewProgressService(src, h.routeBase).
		CourseView(c.Request.Context(), c.Param("uuid"), c.Query("current"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProgressResponse(view))
}

func toProgressResponse(v *service.CourseProgressView) progressResponse {
	resp := progressResponse{
		CourseUUID:    v.Course.CourseUUID,
		Completed:     v.Progress.Completed,
		Total:         v.Progress.Total,
		Percentage:    v.Progress.Percentage,
		Complete:      v.Complete,
		CurrentIndex:  v.Position.Index,
		CurrentURL:    v.CurrentURL,
		PrevURL:       v.PrevURL,
		NextURL:       v.NextURL,
		CertificateID: v.CertificateID,
		Chapters:      make([]chapterProgress, 0, len(v.Chapters)),
	}
	for _, ch := range v.Chapters {
		cp := chapterProgress{ChapterID: ch.ChapterID, Name: ch.ChapterName, Activities: make([]activityProgress, 0, len(ch.Indicators))}
		for _, ind := range ch.Indicators {
			cp.Activities = append(cp.Activities, activityProgress{
				ActivityUUID: ind.Ref.Activity.ActivityUUID,
				Name:         ind.Ref.Activity.Name,
				ActivityType: string(ind.Ref.Activity.ActivityType),
				State:        string(ind.State),
			})
		}
		resp.Chapters = append(resp.Chapters, cp)
	}
	return resp
}
