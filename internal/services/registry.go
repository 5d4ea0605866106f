package services

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AlertService     AlertService
	DeliveryService  DeliveryService
	ReminderService  ReminderService
	AnalyticsService AnalyticsService
	UserService      UserService
	TeamService      TeamService
}
