package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hagwon/internal/attendance"
	"hagwon/internal/message"
)

// ListTemplates returns saved templates, newest first.
func (h *Handler) ListTemplates(c *gin.Context) {
	templates, err := h.templates.ListTemplates(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if templates == nil {
		templates = []message.Template{}
	}
	c.JSON(http.StatusOK, templates)
}

// CreateTemplate saves a reusable message snippet.
func (h *Handler) CreateTemplate(c *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	if _, err := h.templates.CreateTemplate(c.Request.Context(), req.Content); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteTemplate removes a template by ?id=.
func (h *Handler) DeleteTemplate(c *gin.Context) {
	id, err := strconv.Atoi(c.Query("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID is required"})
		return
	}
	if err := h.templates.DeleteTemplate(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ComposeMessage builds the per-status notification text for one
// student's current-day attendance.
func (h *Handler) ComposeMessage(c *gin.Context) {
	var req struct {
		StudentID string `json:"studentId" binding:"required"`
		Date      string `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	now := time.Now()

	date := req.Date
	if date == "" {
		date = attendance.FormatDate(now)
	}

	student, err := h.roster.GetStudent(ctx, req.StudentID)
	if err != nil {
		writeError(c, err)
		return
	}

	status := attendance.StatusUnmarked
	entries, err := h.attendance.ListByDate(ctx, date)
	if err != nil {
		writeError(c, err)
		return
	}
	for _, e := range entries {
		if e.StudentID == student.ID {
			status = e.Status
			break
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"body":        message.StatusNotice(student.Name, date, status, now),
		"status":      status,
		"parentPhone": student.ParentPhone,
	})
}

// ComposeBulk prepares one message for many parents: composed text,
// comma-joined numbers and an sms: link for the device to open.
func (h *Handler) ComposeBulk(c *gin.Context) {
	var req struct {
		StudentIDs []string `json:"studentIds" binding:"required,min=1"`
		Body       string   `json:"body"`
		TemplateID int      `json:"templateId"`
		IOS        bool     `json:"ios"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	body := req.Body
	if body == "" && req.TemplateID != 0 {
		templates, err := h.templates.ListTemplates(ctx)
		if err != nil {
			writeError(c, err)
			return
		}
		for _, t := range templates {
			if t.ID == req.TemplateID {
				body = t.Content
				break
			}
		}
	}
	if body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body or templateId required"})
		return
	}

	students, err := h.roster.ListStudents(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	selected := make(map[string]bool, len(req.StudentIDs))
	for _, id := range req.StudentIDs {
		selected[id] = true
	}
	var names, phones []string
	for _, s := range students {
		if selected[s.ID] {
			names = append(names, s.Name)
			phones = append(phones, s.ParentPhone)
		}
	}
	if len(phones) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no matching students"})
		return
	}

	c.JSON(http.StatusOK, message.ComposeBulk(body, names, phones, req.IOS))
}
