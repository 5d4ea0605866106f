package models

type Severity string
type VisibilityType string
type DeliveryChannel string
type AlertStatus string

const (
	SeverityInfo     Severity = "Info"
	SeverityWarning  Severity = "Warning"
	SeverityCritical Severity = "Critical"

	VisibilityOrganization VisibilityType = "Organization"
	VisibilityTeam         VisibilityType = "Team"
	VisibilityUser         VisibilityType = "User"

	ChannelInApp DeliveryChannel = "in_app"
	ChannelEmail DeliveryChannel = "email"
	ChannelSMS   DeliveryChannel = "sms"
	ChannelSlack DeliveryChannel = "slack"

	// Статусы алерта вычисляются, а не хранятся (см. Alert.Status).
	AlertStatusActive   AlertStatus = "active"
	AlertStatusExpired  AlertStatus = "expired"
	AlertStatusInactive AlertStatus = "inactive"
)

func AllSeverities() []Severity {
	return []Severity{SeverityInfo, SeverityWarning, SeverityCritical}
}
