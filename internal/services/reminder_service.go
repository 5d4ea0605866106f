package services

import (
	"encoding/json"
	"time"

	"alerthub_backend/internal/logger"
	"alerthub_backend/internal/models"
	"alerthub_backend/internal/notifier"
	"alerthub_backend/internal/repositories"

	"gorm.io/datatypes"
)

// ReminderRunStats - итог одного прохода напоминаний.
type ReminderRunStats struct {
	ClearedSnoozes int64 `json:"cleared_snoozes"`
	Sent           int   `json:"sent"`
	Skipped        int   `json:"skipped"`
}

// ReminderService повторно доставляет непрочитанные алерты.
// Проход идемпотентен: единственный ограничитель - частота
// напоминаний алерта, ничего не помечается как "отправлено навсегда".
type ReminderService interface {
	ProcessReminders() (*ReminderRunStats, error)
}

type reminderService struct {
	stateRepo    repositories.StateRepository
	deliveryRepo repositories.DeliveryRepository
	channels     *notifier.Registry
}

func NewReminderService(
	stateRepo repositories.StateRepository,
	deliveryRepo repositories.DeliveryRepository,
	channels *notifier.Registry,
) ReminderService {
	return &reminderService{
		stateRepo:    stateRepo,
		deliveryRepo: deliveryRepo,
		channels:     channels,
	}
}

func (s *reminderService) ProcessReminders() (*ReminderRunStats, error) {
	now := time.Now().UTC()
	stats := &ReminderRunStats{}

	// 1. Снимаем истекшие snooze: окно прошло - алерт снова
	// напоминаемый.
	cleared, err := s.stateRepo.ClearLapsedSnoozes(now)
	if err != nil {
		return nil, err
	}
	stats.ClearedSnoozes = cleared

	// 2. Снапшот кандидатов. Проход не держит write-блокировку,
	// слегка устаревшие данные приемлемы.
	candidates, err := s.stateRepo.FindReminderCandidates()
	if err != nil {
		return nil, err
	}

	for i := range candidates {
		state := &candidates[i]
		alert := state.Alert
		if alert == nil || state.User == nil {
			stats.Skipped++
			continue
		}

		if !alert.Started(now) || alert.Expired(now) {
			stats.Skipped++
			continue
		}

		frequency := time.Duration(alert.ReminderFrequencyHours) * time.Hour
		if !state.RemindDueAt(now, frequency) {
			stats.Skipped++
			continue
		}

		channel := s.channels.Resolve(alert.Channel)
		if err := channel.Send(state.User, alert); err != nil {
			logger.WithError(err).Warn("reminder send failed",
				"alert_id", alert.ID,
				"user_id", state.UserID,
				"channel", string(alert.Channel),
			)
			stats.Skipped++
			continue
		}

		if err := s.deliveryRepo.Create(newDeliveryRecord(state.User, alert)); err != nil {
			logger.WithError(err).Error("failed to log reminder delivery",
				"alert_id", alert.ID, "user_id", state.UserID)
		}

		reminded := now
		state.LastRemindedAt = &reminded
		if err := s.stateRepo.Save(state); err != nil {
			logger.WithError(err).Error("failed to stamp last_reminded_at",
				"alert_id", alert.ID, "user_id", state.UserID)
			continue
		}
		stats.Sent++
	}

	logger.Info("reminder pass finished",
		"cleared_snoozes", stats.ClearedSnoozes,
		"sent", stats.Sent,
		"skipped", stats.Skipped,
	)
	return stats, nil
}

// newDeliveryRecord собирает строку журнала отправок со снимком
// payload на момент доставки.
func newDeliveryRecord(user *models.User, alert *models.Alert) *models.NotificationDelivery {
	payload, _ := json.Marshal(map[string]string{
		"title":    alert.Title,
		"severity": string(alert.Severity),
	})
	return &models.NotificationDelivery{
		AlertID:     alert.ID,
		UserID:      user.ID,
		Channel:     alert.Channel,
		Payload:     datatypes.JSON(payload),
		DeliveredAt: time.Now().UTC(),
	}
}
