package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AlertHandler     *AlertHandler
	UserHandler      *UserHandler
	TeamHandler      *TeamHandler
	AnalyticsHandler *AnalyticsHandler
}
