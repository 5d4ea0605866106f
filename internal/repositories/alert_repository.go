package repositories

import (
	"errors"
	"time"

	"alerthub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrAlertNotFound = errors.New("alert not found")
)

// Критерии админского списка алертов. Статус (active/expired/inactive)
// вычисляется по времени, его фильтрует сервис.
type AlertCriteria struct {
	Severity string `form:"severity" validate:"omitempty,is-severity"`
	Audience string `form:"audience" validate:"omitempty,is-visibility"`
	Status   string `form:"status" validate:"omitempty,oneof=active expired inactive"`
}

type AlertRepository interface {
	Create(alert *models.Alert) error
	FindByID(id string) (*models.Alert, error)
	FindAll(criteria AlertCriteria) ([]models.Alert, error)
	Save(alert *models.Alert) error

	// VisibleTo возвращает алерты, доставляемые пользователю на момент
	// now: активные, стартовавшие, не истекшие, с совпадающей
	// аудиторией. Порядок: created_at DESC, id DESC (детерминизм).
	VisibleTo(user *models.User, now time.Time) ([]models.Alert, error)
}

type AlertRepositoryImpl struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &AlertRepositoryImpl{db: db}
}

func (r *AlertRepositoryImpl) Create(alert *models.Alert) error {
	return r.db.Create(alert).Error
}

func (r *AlertRepositoryImpl) FindByID(id string) (*models.Alert, error) {
	var alert models.Alert
	err := r.db.First(&alert, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, err
	}
	return &alert, nil
}

func (r *AlertRepositoryImpl) FindAll(criteria AlertCriteria) ([]models.Alert, error) {
	query := r.db.Model(&models.Alert{})

	// Apply filters
	if criteria.Severity != "" {
		query = query.Where("severity = ?", criteria.Severity)
	}
	if criteria.Audience != "" {
		query = query.Where("visibility_type = ?", criteria.Audience)
	}

	var alerts []models.Alert
	err := query.Order("created_at DESC, id DESC").Find(&alerts).Error
	return alerts, err
}

func (r *AlertRepositoryImpl) Save(alert *models.Alert) error {
	return r.db.Save(alert).Error
}

func (r *AlertRepositoryImpl) VisibleTo(user *models.User, now time.Time) ([]models.Alert, error) {
	query := r.db.
		Where("is_active = ?", true).
		Where("start_time <= ?", now).
		Where("(expiry_time IS NULL OR expiry_time > ?)", now)

	if user.TeamID != nil {
		query = query.Where(
			"visibility_type = ? OR (visibility_type = ? AND target_id = ?) OR (visibility_type = ? AND target_id = ?)",
			models.VisibilityOrganization,
			models.VisibilityTeam, *user.TeamID,
			models.VisibilityUser, user.ID,
		)
	} else {
		query = query.Where(
			"visibility_type = ? OR (visibility_type = ? AND target_id = ?)",
			models.VisibilityOrganization,
			models.VisibilityUser, user.ID,
		)
	}

	var alerts []models.Alert
	err := query.Order("created_at DESC, id DESC").Find(&alerts).Error
	return alerts, err
}
