package dto

// DashboardMetrics - сводка дашборда. Метрики считают две разные
// популяции, это зафиксировано в именах:
//   - total_alerts / active_alerts / severity_breakdown - АЛЕРТЫ
//     (breakdown - только активные);
//   - total_deliveries - строки журнала отправок;
//   - total_states / read_count / snoozed_count - пары (user, alert).
type DashboardMetrics struct {
	TotalAlerts     int64 `json:"total_alerts"`
	ActiveAlerts    int64 `json:"active_alerts"`
	TotalDeliveries int64 `json:"total_deliveries"`
	TotalStates     int64 `json:"total_preferences"`
	ReadCount       int64 `json:"read_count"`
	SnoozedCount    int64 `json:"snoozed_count"`

	// Процент прочитанных среди всех состояний доставки.
	ReadRate float64 `json:"delivered_vs_read_rate"`

	SeverityBreakdown map[string]int64       `json:"severity_breakdown"`
	PerAlert          []AlertEngagementStats `json:"snoozed_per_alert"`
}

type AlertEngagementStats struct {
	AlertID   string  `json:"alert_id"`
	Title     string  `json:"title"`
	Severity  string  `json:"severity"`
	Delivered int64   `json:"delivered"`
	Read      int64   `json:"read"`
	Snoozed   int64   `json:"snoozed"`
	ReadRate  float64 `json:"read_rate"`
}
