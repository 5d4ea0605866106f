package notifier

import (
	"fmt"

	"alerthub_backend/internal/config"
	"alerthub_backend/internal/models"

	"gopkg.in/gomail.v2"
)

// EmailChannel отправляет напоминания по SMTP.
type EmailChannel struct {
	cfg *config.Config
}

func NewEmailChannel(cfg *config.Config) *EmailChannel {
	return &EmailChannel{cfg: cfg}
}

func (c *EmailChannel) Name() models.DeliveryChannel { return models.ChannelEmail }

func (c *EmailChannel) Send(user *models.User, alert *models.Alert) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(c.cfg.Email.FromEmail, c.cfg.Email.FromName))
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", fmt.Sprintf("[%s] %s", alert.Severity, alert.Title))
	m.SetBody("text/plain", alert.Message)

	d := gomail.NewDialer(
		c.cfg.Email.SMTPHost,
		c.cfg.Email.SMTPPort,
		c.cfg.Email.SMTPUsername,
		c.cfg.Email.SMTPPassword,
	)

	return d.DialAndSend(m)
}
