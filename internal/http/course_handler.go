package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"studyhub/internal/service"
)

// CourseHandler mantiene dependencias para endpoints de cursos.
type CourseHandler struct {
	logger     *zap.Logger
	courseServ *service.CourseService
}

// NewCourseHandler crea una instancia de CourseHandler con dependencias necesarias.
func NewCourseHandler(logger *zap.Logger, courseServ *service.CourseService) *CourseHandler {
	return &CourseHandler{
		logger:     logger,
		courseServ: courseServ,
	}
}

// List maneja GET /courses.
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.courseServ.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list courses failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list courses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

// Buy maneja POST /courses/:id/buy.
func (h *CourseHandler) Buy(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	course, alreadyEnrolled, err := h.courseServ.Buy(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		h.logger.Error("buy course failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not buy course"})
		return
	}

	if alreadyEnrolled {
		c.JSON(http.StatusOK, gin.H{"message": "Already enrolled"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Course purchased successfully", "course_title": course.Title})
}

// My maneja GET /courses/my.
func (h *CourseHandler) My(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	courses, err := h.courseServ.MyCourses(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("list my courses failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list courses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

// Content maneja GET /courses/:id/content.
func (h *CourseHandler) Content(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	contents, err := h.courseServ.Content(c.Request.Context(), claims.UserID, claims.Role, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		case errors.Is(err, service.ErrNotEnrolled):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not enrolled in this course"})
		default:
			h.logger.Error("course content failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch content"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"contents": contents})
}
