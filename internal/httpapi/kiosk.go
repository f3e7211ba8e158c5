package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hagwon/internal/errs"
	"hagwon/internal/metrics"
	"hagwon/internal/store"
)

// KioskCheckIn marks today's attendance as present for the student
// matching the submitted passcode and returns who to notify.
func (h *Handler) KioskCheckIn(c *gin.Context) {
	var req struct {
		Passcode string `json:"passcode" binding:"required,len=4,numeric"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "passcode must be 4 digits"})
		return
	}

	result, err := h.kiosk.CheckIn(c.Request.Context(), req.Passcode)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			metrics.CheckIns.WithLabelValues("not_found").Inc()
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
			return
		}
		metrics.CheckIns.WithLabelValues("error").Inc()
		writeError(c, err)
		return
	}

	metrics.CheckIns.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, gin.H{"success": true, "student": result})
}

// Seed bootstraps the schema; ?mode=dummy also inserts 20 synthetic
// students for demos.
func (h *Handler) Seed(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database not configured"})
		return
	}

	ctx := c.Request.Context()
	if err := store.Migrate(ctx, h.db); err != nil {
		writeError(c, err)
		return
	}

	if c.Query("mode") == "dummy" {
		if err := h.seedDummy(ctx); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Database seeded with 20 dummy students"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Database schema updated successfully"})
}

func (h *Handler) seedDummy(ctx context.Context) error {
	return store.SeedDummy(ctx, h.db, 20)
}
