package app

import (
	"errors"
	"fmt"

	"alerthub_backend/internal/logger"
	"alerthub_backend/internal/models"

	"gorm.io/gorm"
)

// SeedDemoData создает демонстрационные команды и пользователей.
// Идемпотентно: существующие записи не трогаем.
func SeedDemoData(db *gorm.DB) error {
	teams := []string{"Engineering", "Marketing"}
	teamIDs := make(map[string]string, len(teams))

	for _, name := range teams {
		team, err := findOrCreateTeam(db, name)
		if err != nil {
			return fmt.Errorf("failed to seed team %q: %w", name, err)
		}
		teamIDs[name] = team.ID
	}

	engineeringID := teamIDs["Engineering"]
	marketingID := teamIDs["Marketing"]

	users := []models.User{
		{Name: "Admin User", Email: "admin@company.com", IsAdmin: true, TeamID: &engineeringID},
		{Name: "John Doe", Email: "john@company.com", TeamID: &engineeringID},
		{Name: "Jane Smith", Email: "jane@company.com", TeamID: &marketingID},
	}

	for i := range users {
		if err := findOrCreateUser(db, &users[i]); err != nil {
			return fmt.Errorf("failed to seed user %q: %w", users[i].Email, err)
		}
	}

	logger.Info("Demo data seeded", "teams", len(teams), "users", len(users))
	return nil
}

func findOrCreateTeam(db *gorm.DB, name string) (*models.Team, error) {
	var team models.Team
	err := db.Where("name = ?", name).First(&team).Error
	if err == nil {
		return &team, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	team = models.Team{Name: name}
	if err := db.Create(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func findOrCreateUser(db *gorm.DB, user *models.User) error {
	var existing models.User
	err := db.Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(user).Error
}
