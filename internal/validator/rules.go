package validator

import (
	"log"

	"alerthub_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Ошибка времени запуска: без правил приложение работать не должно.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// Правила на основе 'statuses.go'
	mustRegister("is-severity", validateSeverity)
	mustRegister("is-visibility", validateVisibility)
	mustRegister("is-channel", validateChannel)
}

// --- Функции валидации ---

func validateSeverity(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Пустые значения проверяет 'required'
	}
	switch models.Severity(value) {
	case models.SeverityInfo, models.SeverityWarning, models.SeverityCritical:
		return true
	}
	return false
}

func validateVisibility(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.VisibilityType(value) {
	case models.VisibilityOrganization, models.VisibilityTeam, models.VisibilityUser:
		return true
	}
	return false
}

func validateChannel(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.DeliveryChannel(value) {
	case models.ChannelInApp, models.ChannelEmail, models.ChannelSMS, models.ChannelSlack:
		return true
	}
	return false
}
