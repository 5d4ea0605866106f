package notifier

import (
	"alerthub_backend/internal/logger"
	"alerthub_backend/internal/models"
)

// InAppChannel - in-app уведомления забирает фронтенд через
// GET /users/{id}/alerts, отправлять здесь нечего.
type InAppChannel struct{}

func NewInAppChannel() *InAppChannel { return &InAppChannel{} }

func (c *InAppChannel) Name() models.DeliveryChannel { return models.ChannelInApp }

func (c *InAppChannel) Send(_ *models.User, _ *models.Alert) error {
	return nil
}

// SMSChannel - заглушка до интеграции с SMS-провайдером.
type SMSChannel struct{}

func NewSMSChannel() *SMSChannel { return &SMSChannel{} }

func (c *SMSChannel) Name() models.DeliveryChannel { return models.ChannelSMS }

func (c *SMSChannel) Send(user *models.User, alert *models.Alert) error {
	logger.Info("sms notification (stub)",
		"user_id", user.ID,
		"alert_id", alert.ID,
		"title", alert.Title,
	)
	return nil
}

// SlackChannel - заглушка до интеграции со Slack API.
type SlackChannel struct{}

func NewSlackChannel() *SlackChannel { return &SlackChannel{} }

func (c *SlackChannel) Name() models.DeliveryChannel { return models.ChannelSlack }

func (c *SlackChannel) Send(user *models.User, alert *models.Alert) error {
	logger.Info("slack notification (stub)",
		"user", user.Name,
		"severity", string(alert.Severity),
		"title", alert.Title,
	)
	return nil
}
