package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/learntrail/internal/snapshot"
)

type createCertificationReq struct {
	CourseUUID string         `json:"course_uuid" binding:"required"`
	Config     map[string]any `json:"config" binding:"required"`
}

// POST /api/v1/certifications
func (h *handler) createCertification(c *gin.Context) {
	var req createCertificationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	cert, err := h.svc.Certs.Create(c.Request.Context(), req.CourseUUID, snapshot.ConfigFromMap(req.Config))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, snapshot.FromCertification(cert))
}

// GET /api/v1/certifications/course/:uuid
func (h *handler) listCertifications(c *gin.Context) {
	certs, err := h.svc.Certs.ListByCourse(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]snapshot.CertificationSchema, 0, len(certs))
	for _, cert := range certs {
		out = append(out, snapshot.FromCertification(cert))
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/v1/certifications/certificate/:uuid
func (h *handler) verifyCertificate(c *gin.Context) {
	ic, err := h.svc.Certs.Verify(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot.FromIssued(ic))
}

// GET /api/v1/certifications/:uuid
func (h *handler) getCertification(c *gin.Context) {
	cert, err := h.svc.Certs.Get(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot.FromCertification(cert))
}

type updateCertificationReq struct {
	Config map[string]any `json:"config" binding:"required"`
}

// PUT /api/v1/certifications/:uuid
func (h *handler) updateCertification(c *gin.Context) {
	var req updateCertificationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	cert, err := h.svc.Certs.Update(c.Request.Context(), c.Param("uuid"), snapshot.ConfigFromMap(req.Config))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot.FromCertification(cert))
}

// DELETE /api/v1/certifications/:uuid
func (h *handler) deleteCertification(c *gin.Context) {
	if err := h.svc.Certs.Delete(c.Request.Context(), c.Param("uuid")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
