package repositories

import (
	"errors"
	"time"

	"alerthub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrStateNotFound = errors.New("alert state not found")
)

type StateRepository interface {
	Create(state *models.UserAlertState) error
	FindByUserAndAlert(userID, alertID string) (*models.UserAlertState, error)
	FindByUser(userID string) ([]models.UserAlertState, error)
	FindSnoozedByUser(userID string, now time.Time) ([]models.UserAlertState, error)
	FindByAlert(alertID string) ([]models.UserAlertState, error)
	Save(state *models.UserAlertState) error

	// FindReminderCandidates отдает непрочитанные, не-snoozed состояния
	// активных алертов с включенными напоминаниями. Временные проверки
	// (start/expiry/frequency) делает сервис поверх снапшота.
	FindReminderCandidates() ([]models.UserAlertState, error)

	// ClearLapsedSnoozes сбрасывает snooze с истекшим окном.
	ClearLapsedSnoozes(now time.Time) (int64, error)
}

type StateRepositoryImpl struct {
	db *gorm.DB
}

func NewStateRepository(db *gorm.DB) StateRepository {
	return &StateRepositoryImpl{db: db}
}

func (r *StateRepositoryImpl) Create(state *models.UserAlertState) error {
	return r.db.Create(state).Error
}

func (r *StateRepositoryImpl) FindByUserAndAlert(userID, alertID string) (*models.UserAlertState, error) {
	var state models.UserAlertState
	err := r.db.First(&state, "user_id = ? AND alert_id = ?", userID, alertID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStateNotFound
		}
		return nil, err
	}
	return &state, nil
}

func (r *StateRepositoryImpl) FindByUser(userID string) ([]models.UserAlertState, error) {
	var states []models.UserAlertState
	err := r.db.Where("user_id = ?", userID).Find(&states).Error
	return states, err
}

func (r *StateRepositoryImpl) FindSnoozedByUser(userID string, now time.Time) ([]models.UserAlertState, error) {
	var states []models.UserAlertState
	err := r.db.Preload("Alert").
		Where("user_id = ? AND is_snoozed = ? AND snoozed_until > ?", userID, true, now).
		Order("snoozed_until ASC").
		Find(&states).Error
	return states, err
}

func (r *StateRepositoryImpl) FindByAlert(alertID string) ([]models.UserAlertState, error) {
	var states []models.UserAlertState
	err := r.db.Where("alert_id = ?", alertID).Find(&states).Error
	return states, err
}

func (r *StateRepositoryImpl) Save(state *models.UserAlertState) error {
	return r.db.Save(state).Error
}

func (r *StateRepositoryImpl) FindReminderCandidates() ([]models.UserAlertState, error) {
	var states []models.UserAlertState
	err := r.db.Preload("Alert").Preload("User").
		Joins("JOIN alerts ON alerts.id = user_alert_states.alert_id").
		Where("alerts.is_active = ?", true).
		Where("alerts.reminder_frequency_hours > 0").
		Where("user_alert_states.is_read = ?", false).
		Where("user_alert_states.is_snoozed = ?", false).
		Find(&states).Error
	return states, err
}

func (r *StateRepositoryImpl) ClearLapsedSnoozes(now time.Time) (int64, error) {
	result := r.db.Model(&models.UserAlertState{}).
		Where("is_snoozed = ? AND (snoozed_until IS NULL OR snoozed_until <= ?)", true, now).
		Updates(map[string]interface{}{"is_snoozed": false, "snoozed_until": nil})
	return result.RowsAffected, result.Error
}
