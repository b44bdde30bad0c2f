package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"studyhub/internal/service"
)

// AdminHandler mantiene dependencias para endpoints de administracion.
type AdminHandler struct {
	logger     *zap.Logger
	courseServ *service.CourseService
}

func NewAdminHandler(logger *zap.Logger, courseServ *service.CourseService) *AdminHandler {
	return &AdminHandler{
		logger:     logger,
		courseServ: courseServ,
	}
}

// CreateCourse maneja POST /admin/courses.
func (h *AdminHandler) CreateCourse(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Price       int    `json:"price"`
		ImageURL    string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create course request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	course, err := h.courseServ.CreateCourse(c.Request.Context(), service.CreateCourseInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		h.logger.Error("create course failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create course"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"course": course})
}

// AddContent maneja POST /admin/courses/:id/content.
func (h *AdminHandler) AddContent(c *gin.Context) {
	var req struct {
		Title string `json:"title" binding:"required"`
		Type  string `json:"type" binding:"required"`
		Data  string `json:"data" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid add content request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	content, err := h.courseServ.AddContent(c.Request.Context(), c.Param("id"), service.AddContentInput{
		Title: req.Title,
		Type:  req.Type,
		Data:  req.Data,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		case errors.Is(err, service.ErrInvalidContent):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid content type"})
		default:
			h.logger.Error("add content failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not add content"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"content": content})
}
