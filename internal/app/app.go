package app

import (
	"context"
	"fmt"
	"time"

	"alerthub_backend/internal/config"
	"alerthub_backend/internal/handlers"
	"alerthub_backend/internal/logger"
	"alerthub_backend/internal/middleware"
	"alerthub_backend/internal/models"
	"alerthub_backend/internal/notifier"
	"alerthub_backend/internal/repositories"
	"alerthub_backend/internal/routes"
	"alerthub_backend/internal/services"
	"alerthub_backend/internal/validator"
	"alerthub_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if cfg.SeedDemo {
		if err := SeedDemoData(gormDB); err != nil {
			logger.Fatal("Failed to seed demo data", "error", err)
		}
	}

	ginRouter, serviceContainer := SetupRouter(cfg, gormDB)

	// Фоновый воркер напоминаний. Останавливается вместе с процессом.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reminderWorker := workers.NewReminderWorker(
		serviceContainer.ReminderService,
		time.Duration(cfg.Reminders.IntervalMinutes)*time.Minute,
	)
	reminderWorker.Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// Migrate выполняет автомиграцию всех моделей.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Team{},
		&models.User{},
		&models.Alert{},
		&models.UserAlertState{},
		&models.NotificationDelivery{},
	)
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, *services.ServiceContainer) {
	serviceContainer := initializeServices(cfg, gormDB)
	appHandlers := initializeHandlers(serviceContainer)
	ginRouter := initializeGinRouter()

	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter, serviceContainer
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB) *services.ServiceContainer {
	// --- Инициализация репозиториев ---
	userRepo := repositories.NewUserRepository(gormDB)
	teamRepo := repositories.NewTeamRepository(gormDB)
	alertRepo := repositories.NewAlertRepository(gormDB)
	stateRepo := repositories.NewStateRepository(gormDB)
	deliveryRepo := repositories.NewDeliveryRepository(gormDB)
	analyticsRepo := repositories.NewAnalyticsRepository(gormDB)

	// --- Каналы уведомлений ---
	channels := notifier.NewRegistry(
		notifier.NewInAppChannel(),
		notifier.NewEmailChannel(cfg),
		notifier.NewSMSChannel(),
		notifier.NewSlackChannel(),
	)

	// --- Инициализация сервисов ---
	snoozeWindow := time.Duration(cfg.Reminders.SnoozeWindowHours) * time.Hour
	alertService := services.NewAlertService(alertRepo, userRepo, teamRepo, stateRepo, deliveryRepo, channels)
	deliveryService := services.NewDeliveryService(userRepo, alertRepo, stateRepo, snoozeWindow)
	reminderService := services.NewReminderService(stateRepo, deliveryRepo, channels)
	analyticsService := services.NewAnalyticsService(analyticsRepo)
	userService := services.NewUserService(userRepo, teamRepo)
	teamService := services.NewTeamService(teamRepo)

	return &services.ServiceContainer{
		AlertService:     alertService,
		DeliveryService:  deliveryService,
		ReminderService:  reminderService,
		AnalyticsService: analyticsService,
		UserService:      userService,
		TeamService:      teamService,
	}
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AlertHandler:     handlers.NewAlertHandler(baseHandler, services.AlertService, services.ReminderService),
		UserHandler:      handlers.NewUserHandler(baseHandler, services.UserService, services.AlertService, services.DeliveryService),
		TeamHandler:      handlers.NewTeamHandler(baseHandler, services.TeamService),
		AnalyticsHandler: handlers.NewAnalyticsHandler(baseHandler, services.AnalyticsService),
	}
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.ActorMiddleware())
	return router
}
