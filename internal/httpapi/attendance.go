package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hagwon/internal/attendance"
	"hagwon/internal/metrics"
)

// GetAttendance returns one date's records (joined with class names)
// when ?date= is given, otherwise every stored record for the client's
// own week/month views. ?class= narrows either result.
func (h *Handler) GetAttendance(c *gin.Context) {
	ctx := c.Request.Context()
	class := c.Query("class")

	if date := c.Query("date"); date != "" {
		entries, err := h.attendance.ListByDate(ctx, date)
		if err != nil {
			writeError(c, err)
			return
		}
		if class != "" && class != "all" {
			filtered := entries[:0]
			for _, e := range entries {
				if e.ClassName == class {
					filtered = append(filtered, e)
				}
			}
			entries = filtered
		}
		if entries == nil {
			entries = []attendance.DayEntry{}
		}
		c.JSON(http.StatusOK, entries)
		return
	}

	recs, err := h.attendance.ListAll(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	if recs == nil {
		recs = []attendance.Record{}
	}
	c.JSON(http.StatusOK, recs)
}

type attendanceRequest struct {
	StudentID string `json:"studentId" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Status    string `json:"status" binding:"required"`
	Memo      string `json:"memo"`
}

// UpsertAttendance writes one student's status for one date.
func (h *Handler) UpsertAttendance(c *gin.Context) {
	var req attendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.attendance.Mark(c.Request.Context(), attendance.Record{
		StudentID: req.StudentID,
		Date:      req.Date,
		Status:    req.Status,
		Memo:      req.Memo,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	metrics.RecordUpserts.WithLabelValues("attendance").Inc()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AttendanceGrid serves the week or month view model:
// ?view=week|month&date=YYYY-MM-DD&class=.
func (h *Handler) AttendanceGrid(c *gin.Context) {
	ctx := c.Request.Context()

	ref := time.Now()
	if d := c.Query("date"); d != "" {
		parsed, err := time.ParseInLocation("2006-01-02", d, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		ref = parsed
	}

	var dates []string
	switch c.DefaultQuery("view", "week") {
	case "week":
		dates = attendance.WeekDates(ref)
	case "month":
		dates = attendance.MonthDates(ref)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "view must be week or month"})
		return
	}

	students, err := h.roster.ListStudents(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	recs, err := h.attendance.ListRange(ctx, dates[0], dates[len(dates)-1])
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, attendance.BuildGrid(students, recs, dates, c.Query("class")))
}

// MonthlyStats serves per-student tallies for one month:
// ?year=&month=&class=.
func (h *Handler) MonthlyStats(c *gin.Context) {
	ctx := c.Request.Context()

	now := time.Now()
	year, month := now.Year(), int(now.Month())
	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a number"})
			return
		}
		year = parsed
	}
	if v := c.Query("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be 1-12"})
			return
		}
		month = parsed
	}

	ref := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	dates := attendance.MonthDates(ref)

	students, err := h.roster.ListStudents(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	recs, err := h.attendance.ListRange(ctx, dates[0], dates[len(dates)-1])
	if err != nil {
		writeError(c, err)
		return
	}

	students = attendance.FilterByClass(students, c.Query("class"))
	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": month,
		"stats": attendance.MonthlyStats(students, recs),
	})
}
