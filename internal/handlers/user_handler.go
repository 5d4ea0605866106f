package handlers

import (
	"net/http"

	"alerthub_backend/internal/services"
	"alerthub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// UserHandler обслуживает справочник пользователей и пользовательскую
// ленту алертов (чтение, read/unread, snooze).
type UserHandler struct {
	*BaseHandler
	userService     services.UserService
	alertService    services.AlertService
	deliveryService services.DeliveryService
}

func NewUserHandler(base *BaseHandler, userService services.UserService, alertService services.AlertService, deliveryService services.DeliveryService) *UserHandler {
	return &UserHandler{
		BaseHandler:     base,
		userService:     userService,
		alertService:    alertService,
		deliveryService: deliveryService,
	}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
		users.GET("/:userId", h.GetUser)
		users.PUT("/:userId", h.UpdateUser)
		users.DELETE("/:userId", h.DeleteUser)

		users.GET("/:userId/alerts", h.GetUserAlerts)
		users.GET("/:userId/alerts/snoozed", h.GetSnoozedAlerts)
		users.POST("/:userId/alerts/:alertId/read", h.MarkRead)
		users.POST("/:userId/alerts/:alertId/unread", h.MarkUnread)
		users.POST("/:userId/alerts/:alertId/snooze", h.SnoozeAlert)
	}
}

// --- Справочник пользователей ---

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": len(users),
	})
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.CreateUser(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID := c.Param("userId")

	user, err := h.userService.GetUser(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID := c.Param("userId")

	var req dto.UpdateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateUser(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID := c.Param("userId")

	if err := h.userService.DeleteUser(userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User deleted successfully"})
}

// --- Пользовательская лента ---

// GetUserAlerts возвращает алерты, видимые пользователю прямо сейчас,
// вместе с его персональным состоянием прочтения и snooze.
func (h *UserHandler) GetUserAlerts(c *gin.Context) {
	userID := c.Param("userId")

	alerts, err := h.alertService.VisibleAlerts(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"alerts": alerts,
		"total":  len(alerts),
	})
}

func (h *UserHandler) GetSnoozedAlerts(c *gin.Context) {
	userID := c.Param("userId")

	alerts, err := h.deliveryService.SnoozedAlerts(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"alerts": alerts,
		"total":  len(alerts),
	})
}

func (h *UserHandler) MarkRead(c *gin.Context) {
	userID := c.Param("userId")
	alertID := c.Param("alertId")

	if err := h.deliveryService.MarkRead(userID, alertID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Alert marked as read"})
}

func (h *UserHandler) MarkUnread(c *gin.Context) {
	userID := c.Param("userId")
	alertID := c.Param("alertId")

	if err := h.deliveryService.MarkUnread(userID, alertID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Alert marked as unread"})
}

// SnoozeAlert глушит алерт для пользователя до конца окна snooze.
// Напоминания возобновятся после его истечения.
func (h *UserHandler) SnoozeAlert(c *gin.Context) {
	userID := c.Param("userId")
	alertID := c.Param("alertId")

	until, err := h.deliveryService.Snooze(userID, alertID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Alert snoozed",
		"snoozed_until": until,
	})
}
