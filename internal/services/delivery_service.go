package services

import (
	"time"

	"alerthub_backend/internal/models"
	"alerthub_backend/internal/repositories"
	"alerthub_backend/internal/services/dto"
	"alerthub_backend/pkg/apperrors"
)

// DeliveryService владеет состоянием пары (пользователь, алерт):
// read/unread и окно snooze.
type DeliveryService interface {
	MarkRead(userID, alertID string) error
	MarkUnread(userID, alertID string) error
	// Snooze откладывает алерт на окно snooze; повторный вызов
	// сбрасывает окно заново. Возвращает дедлайн.
	Snooze(userID, alertID string) (time.Time, error)
	SnoozedAlerts(userID string) ([]dto.SnoozedAlertResponse, error)
}

type deliveryService struct {
	userRepo     repositories.UserRepository
	alertRepo    repositories.AlertRepository
	stateRepo    repositories.StateRepository
	snoozeWindow time.Duration
}

func NewDeliveryService(
	userRepo repositories.UserRepository,
	alertRepo repositories.AlertRepository,
	stateRepo repositories.StateRepository,
	snoozeWindow time.Duration,
) DeliveryService {
	if snoozeWindow <= 0 {
		snoozeWindow = 24 * time.Hour
	}
	return &deliveryService{
		userRepo:     userRepo,
		alertRepo:    alertRepo,
		stateRepo:    stateRepo,
		snoozeWindow: snoozeWindow,
	}
}

// requireVisible - предусловие всех мутаций состояния: алерт должен
// быть доставляем пользователю прямо сейчас. Ответ одинаковый для
// "алерта нет" и "алерт не ваш", чтобы не раскрывать чужие
// scoped-алерты.
func (s *deliveryService) requireVisible(userID, alertID string, now time.Time) (*models.User, *models.Alert, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, nil, apperrors.ErrNotFound(err)
		}
		return nil, nil, apperrors.InternalError(err)
	}

	alert, err := s.alertRepo.FindByID(alertID)
	if err != nil {
		if err == repositories.ErrAlertNotFound {
			return nil, nil, apperrors.ErrNotFound(err)
		}
		return nil, nil, apperrors.InternalError(err)
	}

	if !alert.Deliverable(now) || !alert.AppliesTo(user) {
		return nil, nil, apperrors.ErrNotFound(repositories.ErrAlertNotFound)
	}

	return user, alert, nil
}

// findOrCreateState достает состояние пары или создает его при первом
// касании. Вызывается только после requireVisible: состояния для
// невидимых алертов не заводим.
func (s *deliveryService) findOrCreateState(userID, alertID string) (*models.UserAlertState, error) {
	state, err := s.stateRepo.FindByUserAndAlert(userID, alertID)
	if err == nil {
		return state, nil
	}
	if err != repositories.ErrStateNotFound {
		return nil, apperrors.InternalError(err)
	}

	state = &models.UserAlertState{UserID: userID, AlertID: alertID}
	if createErr := s.stateRepo.Create(state); createErr != nil {
		// Гонка первого касания: конкурирующий запрос успел вставить
		// строку между lookup и Create, и наш insert уперся в
		// idx_user_alert. Перечитываем и продолжаем идемпотентный путь.
		state, err = s.stateRepo.FindByUserAndAlert(userID, alertID)
		if err != nil {
			return nil, apperrors.InternalError(createErr)
		}
	}
	return state, nil
}

func (s *deliveryService) MarkRead(userID, alertID string) error {
	now := time.Now().UTC()
	if _, _, err := s.requireVisible(userID, alertID, now); err != nil {
		return err
	}

	state, err := s.findOrCreateState(userID, alertID)
	if err != nil {
		return err
	}

	if state.IsRead {
		return nil // идемпотентно
	}
	state.IsRead = true
	if err := s.stateRepo.Save(state); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *deliveryService) MarkUnread(userID, alertID string) error {
	now := time.Now().UTC()
	if _, _, err := s.requireVisible(userID, alertID, now); err != nil {
		return err
	}

	state, err := s.findOrCreateState(userID, alertID)
	if err != nil {
		return err
	}

	if !state.IsRead {
		return nil
	}
	state.IsRead = false
	if err := s.stateRepo.Save(state); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *deliveryService) Snooze(userID, alertID string) (time.Time, error) {
	now := time.Now().UTC()
	if _, _, err := s.requireVisible(userID, alertID, now); err != nil {
		return time.Time{}, err
	}

	state, err := s.findOrCreateState(userID, alertID)
	if err != nil {
		return time.Time{}, err
	}

	until := now.Add(s.snoozeWindow)
	state.IsSnoozed = true
	state.SnoozedUntil = &until
	if err := s.stateRepo.Save(state); err != nil {
		return time.Time{}, apperrors.InternalError(err)
	}
	return until, nil
}

func (s *deliveryService) SnoozedAlerts(userID string) ([]dto.SnoozedAlertResponse, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	now := time.Now().UTC()
	states, err := s.stateRepo.FindSnoozedByUser(userID, now)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]dto.SnoozedAlertResponse, 0, len(states))
	for i := range states {
		state := &states[i]
		if state.Alert == nil {
			continue
		}
		result = append(result, dto.SnoozedAlertResponse{
			ID:           state.Alert.ID,
			Title:        state.Alert.Title,
			Message:      state.Alert.Message,
			Severity:     string(state.Alert.Severity),
			SnoozedUntil: state.SnoozedUntil,
			CreatedAt:    state.Alert.CreatedAt,
		})
	}
	return result, nil
}
