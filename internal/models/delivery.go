package models

import (
	"time"

	"gorm.io/datatypes"
)

// UserAlertState - состояние доставки пары (пользователь, алерт):
// прочитано/снято + окно snooze. Живет независимо от is_active
// самого алерта.
type UserAlertState struct {
	BaseModel
	UserID  string `gorm:"type:uuid;not null;uniqueIndex:idx_user_alert" json:"user_id"`
	AlertID string `gorm:"type:uuid;not null;uniqueIndex:idx_user_alert" json:"alert_id"`

	IsRead         bool       `gorm:"default:false" json:"is_read"`
	IsSnoozed      bool       `gorm:"default:false" json:"is_snoozed"`
	SnoozedUntil   *time.Time `json:"snoozed_until,omitempty"`
	LastRemindedAt *time.Time `json:"last_reminded_at,omitempty"`

	User  *User  `gorm:"foreignKey:UserID" json:"-"`
	Alert *Alert `gorm:"foreignKey:AlertID" json:"-"`
}

// SnoozeActiveAt - машина состояний snooze: флаг действует только
// пока не истекло окно. После дедлайна состояние читается как
// "не snoozed" без отдельной записи в БД.
func (s *UserAlertState) SnoozeActiveAt(now time.Time) bool {
	return s.IsSnoozed && s.SnoozedUntil != nil && s.SnoozedUntil.After(now)
}

// SnoozeLapsedAt - окно было выставлено и уже прошло;
// reminder-проход сбрасывает такие записи.
func (s *UserAlertState) SnoozeLapsedAt(now time.Time) bool {
	return s.IsSnoozed && (s.SnoozedUntil == nil || !s.SnoozedUntil.After(now))
}

// RemindDueAt - напоминание пора отправлять: не прочитано, не в snooze
// и с последнего напоминания прошло не меньше frequency.
func (s *UserAlertState) RemindDueAt(now time.Time, frequency time.Duration) bool {
	if s.IsRead || s.SnoozeActiveAt(now) {
		return false
	}
	if s.LastRemindedAt == nil {
		return true
	}
	return now.Sub(*s.LastRemindedAt) >= frequency
}

// NotificationDelivery - журнал фактических отправок (аудит).
// Аналитика считает total_deliveries по этим строкам.
type NotificationDelivery struct {
	BaseModel
	AlertID string          `gorm:"type:uuid;not null;index" json:"alert_id"`
	UserID  string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Channel DeliveryChannel `gorm:"type:varchar(20)" json:"channel"`

	// Снимок payload на момент отправки: {"title": ..., "severity": ...}
	Payload datatypes.JSON `gorm:"type:jsonb" json:"payload,omitempty"`

	DeliveredAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"delivered_at"`

	Alert *Alert `gorm:"foreignKey:AlertID" json:"-"`
	User  *User  `gorm:"foreignKey:UserID" json:"-"`
}
