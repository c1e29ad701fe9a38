// Package api serves the learning API over HTTP: course snapshots, the
// caller's trail, progress views and certificates.
package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alexanderramin/learntrail/internal/service"
)

// Services bundles the use cases the handlers call.
type Services struct {
	Users   service.UserService
	Courses service.CourseService
	Trails  service.TrailService
	Certs   service.CertificationService
}

type Options struct {
	AllowedOrigins []string
	// RouteBase prefixes activity URLs in progress responses.
	RouteBase string
	Logger    *zap.Logger
}

type handler struct {
	svc       Services
	routeBase string
	log       *zap.Logger
}

func NewRouter(svc Services, opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	h := &handler{svc: svc, routeBase: opts.RouteBase, log: log}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	config := cors.DefaultConfig()
	if len(opts.AllowedOrigins) > 0 {
		config.AllowOrigins = opts.AllowedOrigins
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", userHeader}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.MaxAge = 12 * time.Hour
	r.Use(cors.New(config))

	api := r.Group("/api/v1")
	{
		courses := api.Group("/courses")
		{
			courses.GET("", h.listCourses)
			courses.POST("", h.importCourse)
			courses.GET("/:uuid/meta", h.courseMeta)
			courses.GET("/:uuid/progress", h.requireUser, h.courseProgress)
		}
		trail := api.Group("/trail")
		trail.Use(h.requireUser)
		{
			trail.GET("/org/:org/trail", h.getTrail)
			trail.POST("/add_course/:uuid", h.addCourse)
			trail.POST("/add_activity/:uuid", h.addActivity)
			trail.DELETE("/remove_course/:uuid", h.removeCourse)
		}
		certs := api.Group("/certifications")
		{
			certs.POST("", h.createCertification)
			certs.GET("/course/:uuid", h.listCertifications)
			certs.GET("/certificate/:uuid", h.verifyCertificate)
			certs.GET("/:uuid", h.getCertification)
			certs.PUT("/:uuid", h.updateCertification)
			certs.DELETE("/:uuid", h.deleteCertification)
		}
	}
	return r
}

// requestLogger logs one line per request through zap, at a level chosen by
// status class.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
		}
		if uid, ok := c.Get(userKey); ok {
			fields = append(fields, zap.Int64("user_id", uid.(int64)))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.String()))
		}

		switch {
		case status >= 500:
			log.Error("request", fields...)
		case status >= 400:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}
