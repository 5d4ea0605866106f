package models

import "time"

type Alert struct {
	BaseModel
	Title    string   `gorm:"not null" json:"title"`
	Message  string   `gorm:"not null" json:"message"`
	Severity Severity `gorm:"type:varchar(20);not null" json:"severity"`

	// Канал доставки напоминаний. In-app забирается фронтендом,
	// остальные каналы отправляют через notifier.
	Channel DeliveryChannel `gorm:"type:varchar(20);default:'in_app'" json:"channel"`

	// Аудитория: Organization (TargetID == nil), Team или User.
	VisibilityType VisibilityType `gorm:"type:varchar(20);not null" json:"visibility_type"`
	TargetID       *string        `gorm:"type:uuid" json:"target_id,omitempty"`

	StartTime  time.Time  `json:"start_time"`
	ExpiryTime *time.Time `json:"expiry_time,omitempty"`

	// Часы между напоминаниями. 0 отключает напоминания для алерта.
	ReminderFrequencyHours int `gorm:"default:2" json:"reminder_frequency"`

	IsActive  bool    `gorm:"default:true" json:"is_active"`
	CreatedBy *string `gorm:"type:uuid" json:"created_by,omitempty"`

	Creator *User `gorm:"foreignKey:CreatedBy" json:"-"`
}

// Expired сообщает, истек ли алерт к моменту now.
func (a *Alert) Expired(now time.Time) bool {
	return a.ExpiryTime != nil && a.ExpiryTime.Before(now)
}

// Started сообщает, наступило ли время начала показа.
func (a *Alert) Started(now time.Time) bool {
	return a.StartTime.IsZero() || !a.StartTime.After(now)
}

// Deliverable - алерт попадает в выдачу пользователям:
// активен, стартовал и не истек.
func (a *Alert) Deliverable(now time.Time) bool {
	return a.IsActive && a.Started(now) && !a.Expired(now)
}

// AppliesTo - попадает ли пользователь в аудиторию алерта.
// Временные условия (active/start/expiry) проверяет Deliverable.
func (a *Alert) AppliesTo(user *User) bool {
	switch a.VisibilityType {
	case VisibilityOrganization:
		return true
	case VisibilityTeam:
		return a.TargetID != nil && user.TeamID != nil && *a.TargetID == *user.TeamID
	case VisibilityUser:
		return a.TargetID != nil && *a.TargetID == user.ID
	}
	return false
}

// Status вычисляет админский статус алерта.
func (a *Alert) Status(now time.Time) AlertStatus {
	if !a.IsActive {
		return AlertStatusInactive
	}
	if a.Expired(now) {
		return AlertStatusExpired
	}
	return AlertStatusActive
}
