package services

import (
	"math"
	"time"

	"alerthub_backend/internal/logger"
	"alerthub_backend/internal/models"
	"alerthub_backend/internal/notifier"
	"alerthub_backend/internal/repositories"
	"alerthub_backend/internal/services/dto"
	"alerthub_backend/pkg/apperrors"
)

const defaultReminderFrequencyHours = 2

type AlertService interface {
	// Admin operations
	Create(actorID string, req *dto.CreateAlertRequest) (*models.Alert, error)
	Update(alertID string, req *dto.UpdateAlertRequest) error
	Toggle(alertID string) (*models.Alert, error)
	Archive(alertID string) error
	SetReminders(alertID string, enabled bool) error
	ListAll(criteria repositories.AlertCriteria) ([]dto.AdminAlertResponse, error)

	// User-facing resolution
	VisibleAlerts(userID string) ([]dto.UserAlertResponse, error)

	// TargetUsers возвращает текущую аудиторию алерта.
	TargetUsers(alert *models.Alert) ([]models.User, error)
}

type alertService struct {
	alertRepo    repositories.AlertRepository
	userRepo     repositories.UserRepository
	teamRepo     repositories.TeamRepository
	stateRepo    repositories.StateRepository
	deliveryRepo repositories.DeliveryRepository
	channels     *notifier.Registry
}

func NewAlertService(
	alertRepo repositories.AlertRepository,
	userRepo repositories.UserRepository,
	teamRepo repositories.TeamRepository,
	stateRepo repositories.StateRepository,
	deliveryRepo repositories.DeliveryRepository,
	channels *notifier.Registry,
) AlertService {
	return &alertService{
		alertRepo:    alertRepo,
		userRepo:     userRepo,
		teamRepo:     teamRepo,
		stateRepo:    stateRepo,
		deliveryRepo: deliveryRepo,
		channels:     channels,
	}
}

// ---------------- Admin operations ----------------

func (s *alertService) Create(actorID string, req *dto.CreateAlertRequest) (*models.Alert, error) {
	if err := s.validateVisibility(models.VisibilityType(req.VisibilityType), req.TargetID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	alert := &models.Alert{
		Title:          req.Title,
		Message:        req.Message,
		Severity:       models.Severity(req.Severity),
		Channel:        models.ChannelInApp,
		VisibilityType: models.VisibilityType(req.VisibilityType),
		TargetID:       req.TargetID,
		StartTime:      now,
		ExpiryTime:     req.ExpiryTime,
		IsActive:       true,
	}
	if req.Channel != "" {
		alert.Channel = models.DeliveryChannel(req.Channel)
	}
	if req.StartTime != nil {
		alert.StartTime = *req.StartTime
	}
	if req.ReminderFrequencyHours != nil {
		alert.ReminderFrequencyHours = *req.ReminderFrequencyHours
	} else {
		alert.ReminderFrequencyHours = defaultReminderFrequencyHours
	}

	if actorID != "" {
		if _, err := s.userRepo.FindByID(actorID); err == nil {
			alert.CreatedBy = &actorID
		}
	}

	if err := s.alertRepo.Create(alert); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Fan-out: создаем состояния доставки для текущей аудитории и
	// отправляем первичное уведомление через канал алерта.
	s.fanOut(alert, now)

	return alert, nil
}

// validateVisibility проверяет инвариант: target_id отсутствует iff
// visibility == Organization, иначе обязан ссылаться на существующую
// команду/пользователя.
func (s *alertService) validateVisibility(visibility models.VisibilityType, targetID *string) error {
	switch visibility {
	case models.VisibilityOrganization:
		if targetID != nil && *targetID != "" {
			return apperrors.ErrVisibilityTargetForbidden
		}
	case models.VisibilityTeam:
		if targetID == nil || *targetID == "" {
			return apperrors.ErrVisibilityTargetRequired
		}
		if _, err := s.teamRepo.FindByID(*targetID); err != nil {
			if err == repositories.ErrTeamNotFound {
				return apperrors.ErrVisibilityTargetMissing
			}
			return apperrors.InternalError(err)
		}
	case models.VisibilityUser:
		if targetID == nil || *targetID == "" {
			return apperrors.ErrVisibilityTargetRequired
		}
		if _, err := s.userRepo.FindByID(*targetID); err != nil {
			if err == repositories.ErrUserNotFound {
				return apperrors.ErrVisibilityTargetMissing
			}
			return apperrors.InternalError(err)
		}
	}
	return nil
}

func (s *alertService) fanOut(alert *models.Alert, now time.Time) {
	users, err := s.TargetUsers(alert)
	if err != nil {
		logger.WithError(err).Error("alert fan-out: failed to resolve audience", "alert_id", alert.ID)
		return
	}

	channel := s.channels.Resolve(alert.Channel)
	var deliveries []*models.NotificationDelivery

	for i := range users {
		user := &users[i]

		state := &models.UserAlertState{
			UserID:         user.ID,
			AlertID:        alert.ID,
			LastRemindedAt: &now,
		}
		if err := s.stateRepo.Create(state); err != nil {
			logger.WithError(err).Error("alert fan-out: failed to create state",
				"alert_id", alert.ID, "user_id", user.ID)
			continue
		}

		if err := channel.Send(user, alert); err != nil {
			logger.WithError(err).Warn("alert fan-out: channel send failed",
				"alert_id", alert.ID, "user_id", user.ID, "channel", string(alert.Channel))
			continue
		}

		deliveries = append(deliveries, newDeliveryRecord(user, alert))
	}

	if err := s.deliveryRepo.CreateBatch(deliveries); err != nil {
		logger.WithError(err).Error("alert fan-out: failed to log deliveries", "alert_id", alert.ID)
	}
}

func (s *alertService) Update(alertID string, req *dto.UpdateAlertRequest) error {
	alert, err := s.alertRepo.FindByID(alertID)
	if err != nil {
		if err == repositories.ErrAlertNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if req.Title != nil {
		alert.Title = *req.Title
	}
	if req.Message != nil {
		alert.Message = *req.Message
	}
	if req.Severity != nil {
		alert.Severity = models.Severity(*req.Severity)
	}
	if req.StartTime != nil {
		alert.StartTime = *req.StartTime
	}
	if req.ExpiryTime != nil {
		alert.ExpiryTime = req.ExpiryTime
	}
	if req.ReminderFrequencyHours != nil {
		alert.ReminderFrequencyHours = *req.ReminderFrequencyHours
	}

	if err := s.alertRepo.Save(alert); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// Toggle переключает is_active. Состояния доставки не трогаем:
// история read/snooze переживает деактивацию.
func (s *alertService) Toggle(alertID string) (*models.Alert, error) {
	alert, err := s.alertRepo.FindByID(alertID)
	if err != nil {
		if err == repositories.ErrAlertNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	alert.IsActive = !alert.IsActive
	if err := s.alertRepo.Save(alert); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return alert, nil
}

// Archive деактивирует алерт. Жесткого удаления алертов нет.
func (s *alertService) Archive(alertID string) error {
	alert, err := s.alertRepo.FindByID(alertID)
	if err != nil {
		if err == repositories.ErrAlertNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	alert.IsActive = false
	if err := s.alertRepo.Save(alert); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *alertService) SetReminders(alertID string, enabled bool) error {
	alert, err := s.alertRepo.FindByID(alertID)
	if err != nil {
		if err == repositories.ErrAlertNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if enabled {
		alert.ReminderFrequencyHours = defaultReminderFrequencyHours
	} else {
		alert.ReminderFrequencyHours = 0
	}
	if err := s.alertRepo.Save(alert); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *alertService) ListAll(criteria repositories.AlertCriteria) ([]dto.AdminAlertResponse, error) {
	alerts, err := s.alertRepo.FindAll(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := time.Now().UTC()
	result := make([]dto.AdminAlertResponse, 0, len(alerts))

	for i := range alerts {
		alert := &alerts[i]

		status := alert.Status(now)
		if criteria.Status != "" && string(status) != criteria.Status {
			continue
		}

		audience, err := s.TargetUsers(alert)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		totalUsers := int64(len(audience))

		states, err := s.stateRepo.FindByAlert(alert.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}

		var readCount, snoozedCount int64
		for j := range states {
			if states[j].IsRead {
				readCount++
			}
			if states[j].SnoozeActiveAt(now) {
				snoozedCount++
			}
		}

		// Алерт "recurring", пока он активен, напоминания включены
		// и меньше 80% аудитории его не отложило.
		isRecurring := alert.Deliverable(now) &&
			alert.ReminderFrequencyHours > 0 &&
			float64(snoozedCount) < float64(totalUsers)*0.8

		engagement := 0.0
		if totalUsers > 0 {
			engagement = round1(float64(readCount) / float64(totalUsers) * 100)
		}

		result = append(result, dto.AdminAlertResponse{
			ID:                     alert.ID,
			Title:                  alert.Title,
			Message:                alert.Message,
			Severity:               string(alert.Severity),
			Channel:                string(alert.Channel),
			VisibilityType:         string(alert.VisibilityType),
			TargetID:               alert.TargetID,
			IsActive:               alert.IsActive,
			Status:                 status,
			CreatedAt:              alert.CreatedAt,
			StartTime:              alert.StartTime,
			ExpiryTime:             alert.ExpiryTime,
			ReminderFrequencyHours: alert.ReminderFrequencyHours,
			TotalUsers:             totalUsers,
			SnoozedCount:           snoozedCount,
			ReadCount:              readCount,
			IsRecurring:            isRecurring,
			EngagementRate:         engagement,
		})
	}

	return result, nil
}

// ---------------- User-facing resolution ----------------

// VisibleAlerts - чистая функция от текущего состояния и часов:
// пересчитывается на каждый вызов, ничего не кэшируем.
func (s *alertService) VisibleAlerts(userID string) ([]dto.UserAlertResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	now := time.Now().UTC()

	alerts, err := s.alertRepo.VisibleTo(user, now)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	states, err := s.stateRepo.FindByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	stateByAlert := make(map[string]*models.UserAlertState, len(states))
	for i := range states {
		stateByAlert[states[i].AlertID] = &states[i]
	}

	result := make([]dto.UserAlertResponse, 0, len(alerts))
	for i := range alerts {
		alert := &alerts[i]

		resp := dto.UserAlertResponse{
			ID:             alert.ID,
			Title:          alert.Title,
			Message:        alert.Message,
			Severity:       string(alert.Severity),
			VisibilityType: string(alert.VisibilityType),
			IsActive:       alert.IsActive,
			CreatedAt:      alert.CreatedAt,
		}
		if state, ok := stateByAlert[alert.ID]; ok {
			resp.IsRead = state.IsRead
			// Истекшее окно snooze читается как "не snoozed".
			resp.IsSnoozed = state.SnoozeActiveAt(now)
			if resp.IsSnoozed {
				resp.SnoozedUntil = state.SnoozedUntil
			}
		}
		result = append(result, resp)
	}

	return result, nil
}

func (s *alertService) TargetUsers(alert *models.Alert) ([]models.User, error) {
	switch alert.VisibilityType {
	case models.VisibilityOrganization:
		return s.userRepo.FindAll()
	case models.VisibilityTeam:
		if alert.TargetID == nil {
			return nil, nil
		}
		return s.userRepo.FindByTeamID(*alert.TargetID)
	case models.VisibilityUser:
		if alert.TargetID == nil {
			return nil, nil
		}
		user, err := s.userRepo.FindByID(*alert.TargetID)
		if err != nil {
			if err == repositories.ErrUserNotFound {
				// Таргет удален: алерт остается, аудитория пустая.
				return nil, nil
			}
			return nil, err
		}
		return []models.User{*user}, nil
	}
	return nil, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
