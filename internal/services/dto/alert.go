package dto

import (
	"time"

	"alerthub_backend/internal/models"
)

type CreateAlertRequest struct {
	Title          string     `json:"title" validate:"required,min=1,max=200"`
	Message        string     `json:"message" validate:"required,min=1"`
	Severity       string     `json:"severity" validate:"required,is-severity"`
	Channel        string     `json:"channel" validate:"omitempty,is-channel"`
	VisibilityType string     `json:"visibility_type" validate:"required,is-visibility"`
	TargetID       *string    `json:"target_id"`
	StartTime      *time.Time `json:"start_time"`
	ExpiryTime     *time.Time `json:"expiry_time"`
	// nil -> дефолт 2 часа; 0 отключает напоминания.
	ReminderFrequencyHours *int `json:"reminder_frequency"`
}

type UpdateAlertRequest struct {
	Title                  *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Message                *string    `json:"message" validate:"omitempty,min=1"`
	Severity               *string    `json:"severity" validate:"omitempty,is-severity"`
	StartTime              *time.Time `json:"start_time"`
	ExpiryTime             *time.Time `json:"expiry_time"`
	ReminderFrequencyHours *int       `json:"reminder_frequency" validate:"omitempty,min=0"`
}

type CreateAlertResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// UserAlertResponse - алерт глазами пользователя: сам алерт плюс его
// личное состояние прочтения/snooze.
type UserAlertResponse struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	Severity       string     `json:"severity"`
	VisibilityType string     `json:"visibility_type"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	IsRead         bool       `json:"is_read"`
	IsSnoozed      bool       `json:"is_snoozed"`
	SnoozedUntil   *time.Time `json:"snoozed_until,omitempty"`
}

// AdminAlertResponse - админская строка списка: алерт целиком,
// вычисленный статус и вовлеченность аудитории.
type AdminAlertResponse struct {
	ID                     string             `json:"id"`
	Title                  string             `json:"title"`
	Message                string             `json:"message"`
	Severity               string             `json:"severity"`
	Channel                string             `json:"channel"`
	VisibilityType         string             `json:"visibility_type"`
	TargetID               *string            `json:"target_id,omitempty"`
	IsActive               bool               `json:"is_active"`
	Status                 models.AlertStatus `json:"status"`
	CreatedAt              time.Time          `json:"created_at"`
	StartTime              time.Time          `json:"start_time"`
	ExpiryTime             *time.Time         `json:"expiry_time,omitempty"`
	ReminderFrequencyHours int                `json:"reminder_frequency"`
	TotalUsers             int64              `json:"total_users"`
	SnoozedCount           int64              `json:"snoozed_count"`
	ReadCount              int64              `json:"read_count"`
	IsRecurring            bool               `json:"is_recurring"`
	EngagementRate         float64            `json:"engagement_rate"`
}

type SnoozedAlertResponse struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Message      string     `json:"message"`
	Severity     string     `json:"severity"`
	SnoozedUntil *time.Time `json:"snoozed_until"`
	CreatedAt    time.Time  `json:"created_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
