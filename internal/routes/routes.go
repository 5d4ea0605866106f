package routes

import (
	"net/http"

	"alerthub_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
) {
	// Health-check для балансировщиков и smoke-тестов.
	ginRouter.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "alerthub",
			"status":  "ok",
		})
	})

	api := ginRouter.Group("")
	{
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.TeamHandler.RegisterRoutes(api)
		appHandlers.AlertHandler.RegisterRoutes(api)
		appHandlers.AnalyticsHandler.RegisterRoutes(api)
	}
}
