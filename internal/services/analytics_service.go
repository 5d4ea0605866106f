package services

import (
	"alerthub_backend/internal/repositories"
	"alerthub_backend/internal/services/dto"
	"alerthub_backend/pkg/apperrors"
)

type AnalyticsService interface {
	DashboardMetrics() (*dto.DashboardMetrics, error)
}

type analyticsService struct {
	analyticsRepo repositories.AnalyticsRepository
}

func NewAnalyticsService(analyticsRepo repositories.AnalyticsRepository) AnalyticsService {
	return &analyticsService{analyticsRepo: analyticsRepo}
}

func (s *analyticsService) DashboardMetrics() (*dto.DashboardMetrics, error) {
	totalAlerts, err := s.analyticsRepo.CountAlerts()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	activeAlerts, err := s.analyticsRepo.CountActiveAlerts()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	totalDeliveries, err := s.analyticsRepo.CountDeliveries()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	totalStates, err := s.analyticsRepo.CountStates()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	readCount, err := s.analyticsRepo.CountReadStates()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	snoozedCount, err := s.analyticsRepo.CountSnoozedStates()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	breakdown, err := s.analyticsRepo.SeverityBreakdown()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	breakdownByName := make(map[string]int64, len(breakdown))
	for severity, count := range breakdown {
		breakdownByName[string(severity)] = count
	}

	engagement, err := s.analyticsRepo.AlertEngagement()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	perAlert := make([]dto.AlertEngagementStats, 0, len(engagement))
	for _, row := range engagement {
		readRate := 0.0
		if row.Delivered > 0 {
			readRate = round1(float64(row.Read) / float64(row.Delivered) * 100)
		}
		perAlert = append(perAlert, dto.AlertEngagementStats{
			AlertID:   row.AlertID,
			Title:     row.Title,
			Severity:  string(row.Severity),
			Delivered: row.Delivered,
			Read:      row.Read,
			Snoozed:   row.Snoozed,
			ReadRate:  readRate,
		})
	}

	readRate := 0.0
	if totalStates > 0 {
		readRate = round1(float64(readCount) / float64(totalStates) * 100)
	}

	return &dto.DashboardMetrics{
		TotalAlerts:       totalAlerts,
		ActiveAlerts:      activeAlerts,
		TotalDeliveries:   totalDeliveries,
		TotalStates:       totalStates,
		ReadCount:         readCount,
		SnoozedCount:      snoozedCount,
		ReadRate:          readRate,
		SeverityBreakdown: breakdownByName,
		PerAlert:          perAlert,
	}, nil
}
