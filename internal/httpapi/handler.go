// Package httpapi exposes the admin CRUD surface and the kiosk
// check-in endpoint as a gin handler set.
package httpapi

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hagwon/internal/attendance"
	"hagwon/internal/errs"
	"hagwon/internal/kiosk"
	"hagwon/internal/message"
	"hagwon/internal/roster"
	"hagwon/internal/store"
	"hagwon/internal/tuition"
)

// Handler wires the domain services to the HTTP surface.
type Handler struct {
	roster     *roster.Service
	attendance *attendance.Service
	tuition    *tuition.Service
	templates  message.TemplateStore
	kiosk      *kiosk.Service
	db         *sql.DB
	redis      *store.Redis
}

// New creates a handler set. db and redis may be nil in tests; the
// endpoints that need them report unavailable.
func New(
	rosterSvc *roster.Service,
	attendanceSvc *attendance.Service,
	tuitionSvc *tuition.Service,
	templates message.TemplateStore,
	kioskSvc *kiosk.Service,
	db *sql.DB,
	redis *store.Redis,
) *Handler {
	return &Handler{
		roster:     rosterSvc,
		attendance: attendanceSvc,
		tuition:    tuitionSvc,
		templates:  templates,
		kiosk:      kioskSvc,
		db:         db,
		redis:      redis,
	}
}

// Register mounts all routes on the engine.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.GET("/students", h.ListStudents)
		api.POST("/students", h.CreateStudent)
		api.PUT("/students/:id", h.UpdateStudent)
		api.DELETE("/students/:id", h.DeleteStudent)

		api.GET("/classes", h.ListClasses)
		api.POST("/classes", h.CreateClass)

		api.GET("/attendance", h.GetAttendance)
		api.POST("/attendance", h.UpsertAttendance)
		api.GET("/attendance/grid", h.AttendanceGrid)

		api.GET("/tuition", h.GetTuition)
		api.POST("/tuition", h.UpsertTuition)
		api.GET("/tuition/grid", h.TuitionGrid)

		api.GET("/message-templates", h.ListTemplates)
		api.POST("/message-templates", h.CreateTemplate)
		api.DELETE("/message-templates", h.DeleteTemplate)

		api.POST("/messages/compose", h.ComposeMessage)
		api.POST("/messages/bulk", h.ComposeBulk)

		api.POST("/kiosk/check-in", h.KioskCheckIn)

		api.GET("/stats", h.MonthlyStats)
		api.GET("/seed", h.Seed)
	}
}

// Healthz reports database and redis connectivity.
func (h *Handler) Healthz(c *gin.Context) {
	dbHealthy := h.db != nil && h.db.PingContext(c.Request.Context()) == nil
	redisHealthy := h.redis.Healthy(c.Request.Context())
	status := http.StatusOK
	if !dbHealthy || !redisHealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"status": "ok", "db": dbHealthy, "redis": redisHealthy})
}

// writeError maps the domain error taxonomy onto HTTP statuses. Every
// failure gets a structured body; nothing is silently swallowed.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrInvalid):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
