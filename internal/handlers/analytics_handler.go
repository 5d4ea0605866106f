package handlers

import (
	"net/http"

	"alerthub_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	*BaseHandler
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(base *BaseHandler, analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler:      base,
		analyticsService: analyticsService,
	}
}

func (h *AnalyticsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/analytics", h.GetDashboardMetrics)
}

// GetDashboardMetrics отдает сводные метрики платформы: счетчики
// алертов и доставок, разбивку по severity, read/snooze статистику.
func (h *AnalyticsHandler) GetDashboardMetrics(c *gin.Context) {
	metrics, err := h.analyticsService.DashboardMetrics()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}
