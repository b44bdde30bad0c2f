package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"studyhub/internal/service"
)

// ChatHandler mantiene dependencias para endpoints del chat de estudio.
type ChatHandler struct {
	logger   *zap.Logger
	chatServ *service.ChatService
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
func NewChatHandler(logger *zap.Logger, chatServ *service.ChatService) *ChatHandler {
	return &ChatHandler{
		logger:   logger,
		chatServ: chatServ,
	}
}

// Chat maneja POST /llm/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var req struct {
		SessionID string `json:"session_id"`
		Topic     string `json:"topic"`
		Message   string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	reply, err := h.chatServ.Chat(c.Request.Context(), claims.UserID, req.SessionID, req.Topic, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		case errors.Is(err, service.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "message text required"})
		default:
			h.logger.Error("chat failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process chat"})
		}
		return
	}

	c.JSON(http.StatusOK, reply)
}

// ListSessions maneja GET /llm/sessions.
func (h *ChatHandler) ListSessions(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	sessions, err := h.chatServ.ListSessions(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("list sessions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list sessions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// ListMessages maneja GET /llm/sessions/:id/messages.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	messages, err := h.chatServ.ListMessages(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		h.logger.Error("list messages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
