package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hagwon/internal/metrics"
	"hagwon/internal/tuition"
)

// GetTuition returns all records for ?year= (default: current year).
func (h *Handler) GetTuition(c *gin.Context) {
	year := time.Now().Year()
	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a number"})
			return
		}
		year = parsed
	}

	recs, err := h.tuition.ListByYear(c.Request.Context(), year)
	if err != nil {
		writeError(c, err)
		return
	}
	if recs == nil {
		recs = []tuition.Record{}
	}
	c.JSON(http.StatusOK, gin.H{"records": recs})
}

type tuitionRequest struct {
	StudentID   string  `json:"student_id" binding:"required"`
	Year        int     `json:"year" binding:"required"`
	Month       int     `json:"month" binding:"required"`
	Status      string  `json:"status" binding:"required"`
	PaymentDate *string `json:"payment_date"`
}

// UpsertTuition sets one student's payment state for (year, month).
func (h *Handler) UpsertTuition(c *gin.Context) {
	var req tuitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.tuition.Upsert(c.Request.Context(), tuition.Record{
		StudentID:   req.StudentID,
		Year:        req.Year,
		Month:       req.Month,
		Status:      req.Status,
		PaymentDate: req.PaymentDate,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	metrics.RecordUpserts.WithLabelValues("tuition").Inc()
	c.JSON(http.StatusOK, gin.H{"record": rec})
}

// TuitionGrid serves the student × 12-month view model: ?year=&class=.
func (h *Handler) TuitionGrid(c *gin.Context) {
	ctx := c.Request.Context()

	year := time.Now().Year()
	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a number"})
			return
		}
		year = parsed
	}

	students, err := h.roster.ListStudents(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	recs, err := h.tuition.ListByYear(ctx, year)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tuition.BuildGrid(students, recs, year, c.Query("class")))
}
