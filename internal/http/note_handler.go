package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"studyhub/internal/service"
)

// NoteHandler mantiene dependencias para endpoints de notas.
type NoteHandler struct {
	logger   *zap.Logger
	noteServ *service.NoteService
}

func NewNoteHandler(logger *zap.Logger, noteServ *service.NoteService) *NoteHandler {
	return &NoteHandler{
		logger:   logger,
		noteServ: noteServ,
	}
}

// List maneja GET /notes.
func (h *NoteHandler) List(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	notes, err := h.noteServ.List(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("list notes failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list notes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

// Create maneja POST /notes.
func (h *NoteHandler) Create(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var req struct {
		Title   string `json:"title" binding:"required"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	note, err := h.noteServ.Create(c.Request.Context(), claims.UserID, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		h.logger.Error("create note failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create note"})
		return
	}
	c.JSON(http.StatusCreated, note)
}

// Update maneja PUT /notes/:id.
func (h *NoteHandler) Update(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var req struct {
		Title   string `json:"title" binding:"required"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	note, err := h.noteServ.Update(c.Request.Context(), claims.UserID, c.Param("id"), req.Title, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		default:
			h.logger.Error("update note failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update note"})
		}
		return
	}
	c.JSON(http.StatusOK, note)
}

// Delete maneja DELETE /notes/:id.
func (h *NoteHandler) Delete(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	if err := h.noteServ.Delete(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			return
		}
		h.logger.Error("delete note failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete note"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note deleted"})
}
