package services

import (
	"testing"
	"time"

	"alerthub_backend/internal/models"
	"alerthub_backend/internal/notifier"
	"alerthub_backend/internal/repositories"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testEnv собирает все слои поверх in-memory sqlite.
type testEnv struct {
	db       *gorm.DB
	recorder *notifier.Recorder

	userRepo     repositories.UserRepository
	teamRepo     repositories.TeamRepository
	alertRepo    repositories.AlertRepository
	stateRepo    repositories.StateRepository
	deliveryRepo repositories.DeliveryRepository

	alerts    AlertService
	delivery  DeliveryService
	reminders ReminderService
	analytics AnalyticsService
	users     UserService
	teams     TeamService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Одно соединение, иначе каждый коннект получит свою :memory: базу.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Team{},
		&models.User{},
		&models.Alert{},
		&models.UserAlertState{},
		&models.NotificationDelivery{},
	))

	userRepo := repositories.NewUserRepository(db)
	teamRepo := repositories.NewTeamRepository(db)
	alertRepo := repositories.NewAlertRepository(db)
	stateRepo := repositories.NewStateRepository(db)
	deliveryRepo := repositories.NewDeliveryRepository(db)
	analyticsRepo := repositories.NewAnalyticsRepository(db)

	recorder := notifier.NewRecorder(models.ChannelInApp)
	channels := notifier.NewRegistry(recorder)

	return &testEnv{
		db:           db,
		recorder:     recorder,
		userRepo:     userRepo,
		teamRepo:     teamRepo,
		alertRepo:    alertRepo,
		stateRepo:    stateRepo,
		deliveryRepo: deliveryRepo,
		alerts:       NewAlertService(alertRepo, userRepo, teamRepo, stateRepo, deliveryRepo, channels),
		delivery:     NewDeliveryService(userRepo, alertRepo, stateRepo, 24*time.Hour),
		reminders:    NewReminderService(stateRepo, deliveryRepo, channels),
		analytics:    NewAnalyticsService(analyticsRepo),
		users:        NewUserService(userRepo, teamRepo),
		teams:        NewTeamService(teamRepo),
	}
}

func (e *testEnv) createTeam(t *testing.T, name string) *models.Team {
	t.Helper()
	team := &models.Team{Name: name}
	require.NoError(t, e.db.Create(team).Error)
	return team
}

func (e *testEnv) createUser(t *testing.T, name, email string, teamID *string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, TeamID: teamID}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

// createAlert пишет алерт напрямую, минуя fan-out.
func (e *testEnv) createAlert(t *testing.T, alert *models.Alert) *models.Alert {
	t.Helper()
	if alert.Severity == "" {
		alert.Severity = models.SeverityInfo
	}
	if alert.Channel == "" {
		alert.Channel = models.ChannelInApp
	}
	if alert.StartTime.IsZero() {
		alert.StartTime = time.Now().UTC().Add(-time.Minute)
	}
	require.NoError(t, e.db.Create(alert).Error)
	return alert
}

func strPtr(s string) *string { return &s }

func timePtr(tm time.Time) *time.Time { return &tm }

func intPtr(n int) *int { return &n }
