package repositories

import (
	"alerthub_backend/internal/models"

	"gorm.io/gorm"
)

// Агрегаты по двум популяциям: алерты и состояния доставки.
// Какую из них считает каждая метрика - зафиксировано в dto.

type SeverityCount struct {
	Severity models.Severity `json:"severity"`
	Count    int64           `json:"count"`
}

type AlertEngagementRow struct {
	AlertID   string          `json:"alert_id"`
	Title     string          `json:"title"`
	Severity  models.Severity `json:"severity"`
	Delivered int64           `json:"delivered"`
	Read      int64           `json:"read"`
	Snoozed   int64           `json:"snoozed"`
}

type AnalyticsRepository interface {
	CountAlerts() (int64, error)
	CountActiveAlerts() (int64, error)
	CountStates() (int64, error)
	CountReadStates() (int64, error)
	CountSnoozedStates() (int64, error)
	CountDeliveries() (int64, error)
	SeverityBreakdown() (map[models.Severity]int64, error)
	AlertEngagement() ([]AlertEngagementRow, error)
}

type AnalyticsRepositoryImpl struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &AnalyticsRepositoryImpl{db: db}
}

func (r *AnalyticsRepositoryImpl) CountAlerts() (int64, error) {
	var count int64
	err := r.db.Model(&models.Alert{}).Count(&count).Error
	return count, err
}

func (r *AnalyticsRepositoryImpl) CountActiveAlerts() (int64, error) {
	var count int64
	err := r.db.Model(&models.Alert{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (r *AnalyticsRepositoryImpl) CountStates() (int64, error) {
	var count int64
	err := r.db.Model(&models.UserAlertState{}).Count(&count).Error
	return count, err
}

func (r *AnalyticsRepositoryImpl) CountReadStates() (int64, error) {
	var count int64
	err := r.db.Model(&models.UserAlertState{}).Where("is_read = ?", true).Count(&count).Error
	return count, err
}

func (r *AnalyticsRepositoryImpl) CountSnoozedStates() (int64, error) {
	var count int64
	err := r.db.Model(&models.UserAlertState{}).Where("is_snoozed = ?", true).Count(&count).Error
	return count, err
}

func (r *AnalyticsRepositoryImpl) CountDeliveries() (int64, error) {
	var count int64
	err := r.db.Model(&models.NotificationDelivery{}).Count(&count).Error
	return count, err
}

// SeverityBreakdown считает АКТИВНЫЕ алерты по severity
// (неактивные в сводку дашборда не входят).
func (r *AnalyticsRepositoryImpl) SeverityBreakdown() (map[models.Severity]int64, error) {
	var rows []SeverityCount
	err := r.db.Model(&models.Alert{}).
		Select("severity, count(*) as count").
		Where("is_active = ?", true).
		Group("severity").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	// Нулевые severity тоже отдаем, фронтенд рисует все три ряда.
	breakdown := make(map[models.Severity]int64, 3)
	for _, s := range models.AllSeverities() {
		breakdown[s] = 0
	}
	for _, row := range rows {
		breakdown[row.Severity] = row.Count
	}
	return breakdown, nil
}

func (r *AnalyticsRepositoryImpl) AlertEngagement() ([]AlertEngagementRow, error) {
	var rows []AlertEngagementRow
	err := r.db.Model(&models.Alert{}).
		Select(`alerts.id as alert_id,
			alerts.title,
			alerts.severity,
			count(user_alert_states.id) as delivered,
			coalesce(sum(case when user_alert_states.is_read then 1 else 0 end), 0) as read,
			coalesce(sum(case when user_alert_states.is_snoozed then 1 else 0 end), 0) as snoozed`).
		Joins("LEFT JOIN user_alert_states ON user_alert_states.alert_id = alerts.id").
		Group("alerts.id, alerts.title, alerts.severity, alerts.created_at").
		Order("alerts.created_at DESC").
		Scan(&rows).Error
	return rows, err
}
