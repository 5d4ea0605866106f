package helpers

import (
	"testing"
	"time"

	"alerthub_backend/internal/models"

	"gorm.io/gorm"
)

// CreateTestTeam создает команду напрямую в БД.
func CreateTestTeam(t *testing.T, db *gorm.DB, name string) models.Team {
	t.Helper()
	team := models.Team{Name: name}
	if err := db.Create(&team).Error; err != nil {
		t.Fatalf("Не удалось создать тестовую команду %s: %v", name, err)
	}
	return team
}

// CreateTestUser создает пользователя напрямую в БД.
func CreateTestUser(t *testing.T, db *gorm.DB, name, email string, teamID *string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, TeamID: teamID}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Не удалось создать тестового пользователя %s: %v", email, err)
	}
	return user
}

// CreateTestAlert создает алерт напрямую в БД, минуя fan-out.
func CreateTestAlert(t *testing.T, db *gorm.DB, alert *models.Alert) models.Alert {
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
	alert.IsActive = true
	if err := db.Create(alert).Error; err != nil {
		t.Fatalf("Не удалось создать тестовый алерт %s: %v", alert.Title, err)
	}
	return *alert
}
