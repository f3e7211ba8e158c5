package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hagwon/internal/roster"
)

type studentRequest struct {
	Name        string `json:"name" binding:"required"`
	ParentPhone string `json:"parentPhone" binding:"required"`
	Passcode    string `json:"passcode" binding:"required"`
	Memo        string `json:"memo"`
	ClassName   string `json:"className"`
}

// ListStudents returns all students ordered by class then name.
func (h *Handler) ListStudents(c *gin.Context) {
	students, err := h.roster.ListStudents(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if students == nil {
		students = []roster.Student{}
	}
	c.JSON(http.StatusOK, students)
}

// CreateStudent registers a student.
func (h *Handler) CreateStudent(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student, err := h.roster.CreateStudent(c.Request.Context(), roster.Student{
		Name:        req.Name,
		ParentPhone: req.ParentPhone,
		Passcode:    req.Passcode,
		Memo:        req.Memo,
		ClassName:   req.ClassName,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, student)
}

// UpdateStudent replaces a student's fields by id.
func (h *Handler) UpdateStudent(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student, err := h.roster.UpdateStudent(c.Request.Context(), roster.Student{
		ID:          c.Param("id"),
		Name:        req.Name,
		ParentPhone: req.ParentPhone,
		Passcode:    req.Passcode,
		Memo:        req.Memo,
		ClassName:   req.ClassName,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// DeleteStudent removes a student and cascades its records.
func (h *Handler) DeleteStudent(c *gin.Context) {
	if err := h.roster.DeleteStudent(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted successfully"})
}

// ListClasses returns all class labels ordered by name.
func (h *Handler) ListClasses(c *gin.Context) {
	classes, err := h.roster.ListClasses(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if classes == nil {
		classes = []roster.Class{}
	}
	c.JSON(http.StatusOK, classes)
}

// CreateClass adds a class label; duplicates conflict.
func (h *Handler) CreateClass(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	class, err := h.roster.CreateClass(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, class)
}
