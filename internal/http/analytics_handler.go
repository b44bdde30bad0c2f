package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"studyhub/internal/service"
)

// AnalyticsHandler mantiene dependencias para el dashboard del owner.
type AnalyticsHandler struct {
	logger        *zap.Logger
	analyticsServ *service.AnalyticsService
}

func NewAnalyticsHandler(logger *zap.Logger, analyticsServ *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		logger:        logger,
		analyticsServ: analyticsServ,
	}
}

// Dashboard maneja GET /analytics/dashboard.
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	stats, err := h.analyticsServ.Dashboard(c.Request.Context())
	if err != nil {
		h.logger.Error("dashboard stats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
