package handlers

import (
	"net/http"

	"alerthub_backend/internal/repositories"
	"alerthub_backend/internal/services"
	"alerthub_backend/internal/services/dto"
	"alerthub_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// AlertHandler обслуживает админские ручки управления алертами.
type AlertHandler struct {
	*BaseHandler
	alertService    services.AlertService
	reminderService services.ReminderService
}

func NewAlertHandler(base *BaseHandler, alertService services.AlertService, reminderService services.ReminderService) *AlertHandler {
	return &AlertHandler{
		BaseHandler:     base,
		alertService:    alertService,
		reminderService: reminderService,
	}
}

func (h *AlertHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	{
		admin.GET("/alerts", h.ListAlerts)
		admin.POST("/alerts", h.CreateAlert)
		admin.PUT("/alerts/:alertId", h.UpdateAlert)
		admin.DELETE("/alerts/:alertId", h.ArchiveAlert)
		admin.PUT("/alerts/:alertId/toggle", h.ToggleAlert)
		admin.PUT("/alerts/:alertId/reminders", h.SetReminders)
		admin.POST("/trigger-reminders", h.TriggerReminders)
	}
}

// ListAlerts возвращает все алерты (включая архивные и истекшие) с
// опциональными фильтрами severity / audience / status.
func (h *AlertHandler) ListAlerts(c *gin.Context) {
	var criteria repositories.AlertCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	alerts, err := h.alertService.ListAll(criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"alerts": alerts,
		"total":  len(alerts),
	})
}

func (h *AlertHandler) CreateAlert(c *gin.Context) {
	var req dto.CreateAlertRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	// Актора проставляет ActorMiddleware из заголовка X-Actor-ID.
	actorID := contextkeys.ActorID(c.Request.Context())

	alert, err := h.alertService.Create(actorID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateAlertResponse{
		ID:      alert.ID,
		Message: "Alert created successfully",
	})
}

func (h *AlertHandler) UpdateAlert(c *gin.Context) {
	alertID := c.Param("alertId")

	var req dto.UpdateAlertRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.alertService.Update(alertID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Alert updated successfully"})
}

// ArchiveAlert выполняет мягкое удаление: алерт деактивируется и
// исчезает из пользовательских лент, но остается в админском списке.
func (h *AlertHandler) ArchiveAlert(c *gin.Context) {
	alertID := c.Param("alertId")

	if err := h.alertService.Archive(alertID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Alert archived successfully"})
}

func (h *AlertHandler) ToggleAlert(c *gin.Context) {
	alertID := c.Param("alertId")

	alert, err := h.alertService.Toggle(alertID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Alert visibility toggled",
		"is_active": alert.IsActive,
	})
}

func (h *AlertHandler) SetReminders(c *gin.Context) {
	alertID := c.Param("alertId")
	enabled, ok := h.ParseQueryBool(c, "enabled", true)
	if !ok {
		return
	}

	if err := h.alertService.SetReminders(alertID, enabled); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reminder settings updated",
		"enabled": enabled,
	})
}

// TriggerReminders запускает проход напоминаний вручную, вне
// расписания фонового воркера.
func (h *AlertHandler) TriggerReminders(c *gin.Context) {
	stats, err := h.reminderService.ProcessReminders()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Reminder pass completed",
		"sent":            stats.Sent,
		"skipped":         stats.Skipped,
		"cleared_snoozes": stats.ClearedSnoozes,
	})
}
