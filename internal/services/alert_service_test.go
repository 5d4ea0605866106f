package services

import (
	"net/http"
	"testing"
	"time"

	"alerthub_backend/internal/models"
	"alerthub_backend/internal/repositories"
	"alerthub_backend/internal/services/dto"
	"alerthub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAlertVisibilityValidation(t *testing.T) {
	env := newTestEnv(t)
	team := env.createTeam(t, "Engineering")
	user := env.createUser(t, "John Doe", "john@company.com", &team.ID)

	t.Run("organization alert rejects target_id", func(t *testing.T) {
		_, err := env.alerts.Create("", &dto.CreateAlertRequest{
			Title:          "Org alert",
			Message:        "body",
			Severity:       string(models.SeverityInfo),
			VisibilityType: string(models.VisibilityOrganization),
			TargetID:       strPtr(team.ID),
		})
		assert.ErrorIs(t, err, apperrors.ErrVisibilityTargetForbidden)
	})

	t.Run("team alert requires target_id", func(t *testing.T) {
		_, err := env.alerts.Create("", &dto.CreateAlertRequest{
			Title:          "Team alert",
			Message:        "body",
			Severity:       string(models.SeverityWarning),
			VisibilityType: string(models.VisibilityTeam),
		})
		assert.ErrorIs(t, err, apperrors.ErrVisibilityTargetRequired)
	})

	t.Run("team alert rejects unknown target", func(t *testing.T) {
		_, err := env.alerts.Create("", &dto.CreateAlertRequest{
			Title:          "Team alert",
			Message:        "body",
			Severity:       string(models.SeverityWarning),
			VisibilityType: string(models.VisibilityTeam),
			TargetID:       strPtr("00000000-0000-0000-0000-000000000000"),
		})
		assert.ErrorIs(t, err, apperrors.ErrVisibilityTargetMissing)
	})

	t.Run("user alert accepts existing target", func(t *testing.T) {
		alert, err := env.alerts.Create("", &dto.CreateAlertRequest{
			Title:          "Personal alert",
			Message:        "body",
			Severity:       string(models.SeverityCritical),
			VisibilityType: string(models.VisibilityUser),
			TargetID:       strPtr(user.ID),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, alert.ID)
		assert.True(t, alert.IsActive)
		assert.Equal(t, 2, alert.ReminderFrequencyHours)
	})
}

func TestCreateAlertFanOut(t *testing.T) {
	env := newTestEnv(t)
	eng := env.createTeam(t, "Engineering")
	env.createUser(t, "John Doe", "john@company.com", &eng.ID)
	env.createUser(t, "Jane Smith", "jane@company.com", &eng.ID)
	env.createUser(t, "Solo", "solo@company.com", nil)

	alert, err := env.alerts.Create("", &dto.CreateAlertRequest{
		Title:          "Maintenance window",
		Message:        "DB upgrade tonight",
		Severity:       string(models.SeverityWarning),
		VisibilityType: string(models.VisibilityOrganization),
	})
	require.NoError(t, err)

	// Все три пользователя получили состояние, отправку и строку журнала.
	assert.Equal(t, 3, env.recorder.Count())

	states, err := env.stateRepo.FindByAlert(alert.ID)
	require.NoError(t, err)
	assert.Len(t, states, 3)
	for _, state := range states {
		assert.False(t, state.IsRead)
		assert.NotNil(t, state.LastRemindedAt)
	}

	deliveries, err := env.deliveryRepo.FindByAlert(alert.ID)
	require.NoError(t, err)
	assert.Len(t, deliveries, 3)
}

func TestCreateAlertTeamFanOutScopedToTeam(t *testing.T) {
	env := newTestEnv(t)
	eng := env.createTeam(t, "Engineering")
	mkt := env.createTeam(t, "Marketing")
	env.createUser(t, "John Doe", "john@company.com", &eng.ID)
	env.createUser(t, "Jane Smith", "jane@company.com", &mkt.ID)

	alert, err := env.alerts.Create("", &dto.CreateAlertRequest{
		Title:          "Deploy freeze",
		Message:        "No deploys until Monday",
		Severity:       string(models.SeverityCritical),
		VisibilityType: string(models.VisibilityTeam),
		TargetID:       strPtr(eng.ID),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, env.recorder.Count())
	states, err := env.stateRepo.FindByAlert(alert.ID)
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, "John Doe", mustUserName(t, env, states[0].UserID))
}

func mustUserName(t *testing.T, env *testEnv, userID string) string {
	t.Helper()
	user, err := env.userRepo.FindByID(userID)
	require.NoError(t, err)
	return user.Name
}

func TestVisibleAlertsResolution(t *testing.T) {
	env := newTestEnv(t)
	eng := env.createTeam(t, "Engineering")
	mkt := env.createTeam(t, "Marketing")
	john := env.createUser(t, "John Doe", "john@company.com", &eng.ID)
	jane := env.createUser(t, "Jane Smith", "jane@company.com", &mkt.ID)
	solo := env.createUser(t, "Solo", "solo@company.com", nil)

	now := time.Now().UTC()

	orgAlert := env.createAlert(t, &models.Alert{
		Title: "Org", Message: "m",
		VisibilityType: models.VisibilityOrganization,
		IsActive:       true,
	})
	engAlert := env.createAlert(t, &models.Alert{
		Title: "Eng only", Message: "m",
		VisibilityType: models.VisibilityTeam, TargetID: strPtr(eng.ID),
		IsActive: true,
	})
	janeAlert := env.createAlert(t, &models.Alert{
		Title: "For Jane", Message: "m",
		VisibilityType: models.VisibilityUser, TargetID: strPtr(jane.ID),
		IsActive: true,
	})
	expired := env.createAlert(t, &models.Alert{
		Title: "Expired", Message: "m",
		VisibilityType: models.VisibilityOrganization,
		IsActive:       true,
		ExpiryTime:     timePtr(now.Add(-time.Hour)),
	})
	future := env.createAlert(t, &models.Alert{
		Title: "Future", Message: "m",
		VisibilityType: models.VisibilityOrganization,
		IsActive:       true,
		StartTime:      now.Add(time.Hour),
	})
	archived := env.createAlert(t, &models.Alert{
		Title: "Archived", Message: "m",
		VisibilityType: models.VisibilityOrganization,
		IsActive:       true,
	})
	require.NoError(t, env.db.Model(archived).Update("is_active", false).Error)

	johnFeed := feedIDs(t, env, john.ID)
	assert.ElementsMatch(t, []string{orgAlert.ID, engAlert.ID}, johnFeed)

	janeFeed := feedIDs(t, env, jane.ID)
	assert.ElementsMatch(t, []string{orgAlert.ID, janeAlert.ID}, janeFeed)

	soloFeed := feedIDs(t, env, solo.ID)
	assert.ElementsMatch(t, []string{orgAlert.ID}, soloFeed)

	for _, feed := range [][]string{johnFeed, janeFeed, soloFeed} {
		assert.NotContains(t, feed, expired.ID)
		assert.NotContains(t, feed, future.ID)
		assert.NotContains(t, feed, archived.ID)
	}

	t.Run("unknown user yields not found", func(t *testing.T) {
		_, err := env.alerts.VisibleAlerts("missing-user")
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
	})
}

func feedIDs(t *testing.T, env *testEnv, userID string) []string {
	t.Helper()
	feed, err := env.alerts.VisibleAlerts(userID)
	require.NoError(t, err)
	ids := make([]string, 0, len(feed))
	for _, item := range feed {
		ids = append(ids, item.ID)
	}
	return ids
}

// Лента упорядочена по created_at DESC, ничья разрешается по id DESC.
func TestVisibleAlertsOrdering(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "John Doe", "john@company.com", nil)

	mkAlert := func(title string) *models.Alert {
		return env.createAlert(t, &models.Alert{
			Title: title, Message: "m",
			VisibilityType: models.VisibilityOrganization,
			IsActive:       true,
		})
	}
	oldest := mkAlert("Oldest")
	tieA := mkAlert("Tie A")
	tieB := mkAlert("Tie B")
	newest := mkAlert("Newest")

	base := time.Now().UTC().Add(-time.Hour)
	tie := base.Add(30 * time.Minute)
	require.NoError(t, env.db.Model(oldest).Update("created_at", base).Error)
	require.NoError(t, env.db.Model(tieA).Update("created_at", tie).Error)
	require.NoError(t, env.db.Model(tieB).Update("created_at", tie).Error)
	require.NoError(t, env.db.Model(newest).Update("created_at", base.Add(45*time.Minute)).Error)

	tieFirst, tieSecond := tieA.ID, tieB.ID
	if tieSecond > tieFirst {
		tieFirst, tieSecond = tieSecond, tieFirst
	}

	assert.Equal(t,
		[]string{newest.ID, tieFirst, tieSecond, oldest.ID},
		feedIDs(t, env, user.ID))
}

func TestVisibleAlertsCarriesDeliveryState(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "John Doe", "john@company.com", nil)
	alert := env.createAlert(t, &models.Alert{
		Title: "Org", Message: "m",
		VisibilityType: models.VisibilityOrganization,
		IsActive:       true,
	})

	require.NoError(t, env.delivery.MarkRead(user.ID, alert.ID))

	feed, err := env.alerts.VisibleAlerts(user.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.True(t, feed[0].IsRead)
	assert.False(t, feed[0].IsSnoozed)

	t.Run("lapsed snooze reads as not snoozed", func(t *testing.T) {
		past := time.Now().UTC().Add(-time.Hour)
		state, err := env.stateRepo.FindByUserAndAlert(user.ID, alert.ID)
		require.NoError(t, err)
		state.IsSnoozed = true
		state.SnoozedUntil = &past
		require.NoError(t, env.stateRepo.Save(state))

		feed, err := env.alerts.VisibleAlerts(user.ID)
		require.NoError(t, err)
		require.Len(t, feed, 1)
		assert.False(t, feed[0].IsSnoozed)
		assert.Nil(t, feed[0].SnoozedUntil)
	})
}

func TestToggleAndArchive(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "John Doe", "john@company.com", nil)
	alert := env.createAlert(t, &models.Alert{
		Title: "Org", Message: "m",
		VisibilityType: models.VisibilityOrganization,
		IsActive:       true,
	})

	require.NoError(t, env.delivery.MarkRead(user.ID, alert.ID))
	until, err := env.delivery.Snooze(user.ID, alert.ID)
	require.NoError(t, err)

	toggled, err := env.alerts.Toggle(alert.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)
	assert.Empty(t, feedIDs(t, env, user.ID))

	toggled, err = env.alerts.Toggle(alert.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)
	assert.Equal(t, []string{alert.ID}, feedIDs(t, env, user.ID))

	// Переключение видимости не трогает состояние доставки.
	state, err := env.stateRepo.FindByUserAndAlert(user.ID, alert.ID)
	require.NoError(t, err)
	assert.True(t, state.IsRead)
	assert.True(t, state.IsSnoozed)
	require.NotNil(t, state.SnoozedUntil)
	assert.WithinDuration(t, until, *state.SnoozedUntil, time.Second)

	t.Run("archive hides from feed but keeps admin row", func(t *testing.T) {
		require.NoError(t, env.alerts.Archive(alert.ID))
		assert.Empty(t, feedIDs(t, env, user.ID))

		all, err := env.alerts.ListAll(repositories.AlertCriteria{})
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, models.AlertStatusInactive, all[0].Status)
	})

	t.Run("archive of unknown alert is not found", func(t *testing.T) {
		err := env.alerts.Archive("missing-alert")
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
	})
}

func TestSetReminders(t *testing.T) {
	env := newTestEnv(t)
	alert := env.createAlert(t, &models.Alert{
		Title: "Org", Message: "m",
		VisibilityType:         models.VisibilityOrganization,
		IsActive:               true,
		ReminderFrequencyHours: 2,
	})

	require.NoError(t, env.alerts.SetReminders(alert.ID, false))
	stored, err := env.alertRepo.FindByID(alert.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.ReminderFrequencyHours)

	require.NoError(t, env.alerts.SetReminders(alert.ID, true))
	stored, err = env.alertRepo.FindByID(alert.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.ReminderFrequencyHours)
}

func TestListAllFiltersAndEngagement(t *testing.T) {
	env := newTestEnv(t)
	eng := env.createTeam(t, "Engineering")
	john := env.createUser(t, "John Doe", "john@company.com", &eng.ID)
	env.createUser(t, "Jane Smith", "jane@company.com", &eng.ID)

	critical, err := env.alerts.Create("", &dto.CreateAlertRequest{
		Title:          "Critical one",
		Message:        "m",
		Severity:       string(models.SeverityCritical),
		VisibilityType: string(models.VisibilityOrganization),
	})
	require.NoError(t, err)

	_, err = env.alerts.Create("", &dto.CreateAlertRequest{
		Title:          "Info one",
		Message:        "m",
		Severity:       string(models.SeverityInfo),
		VisibilityType: string(models.VisibilityOrganization),
	})
	require.NoError(t, err)

	require.NoError(t, env.delivery.MarkRead(john.ID, critical.ID))

	t.Run("severity filter", func(t *testing.T) {
		rows, err := env.alerts.ListAll(repositories.AlertCriteria{Severity: string(models.SeverityCritical)})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Critical one", rows[0].Title)
		assert.Equal(t, int64(2), rows[0].TotalUsers)
		assert.Equal(t, int64(1), rows[0].ReadCount)
		assert.Equal(t, 50.0, rows[0].EngagementRate)
		assert.True(t, rows[0].IsRecurring)
	})

	t.Run("status filter", func(t *testing.T) {
		require.NoError(t, env.alerts.Archive(critical.ID))

		rows, err := env.alerts.ListAll(repositories.AlertCriteria{Status: "inactive"})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Critical one", rows[0].Title)

		rows, err = env.alerts.ListAll(repositories.AlertCriteria{Status: "active"})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Info one", rows[0].Title)
	})
}

func TestUpdateAlert(t *testing.T) {
	env := newTestEnv(t)
	alert := env.createAlert(t, &models.Alert{
		Title: "Before", Message: "m",
		Severity:       models.SeverityInfo,
		VisibilityType: models.VisibilityOrganization,
		IsActive:       true,
	})

	newExpiry := time.Now().UTC().Add(48 * time.Hour)
	err := env.alerts.Update(alert.ID, &dto.UpdateAlertRequest{
		Title:                  strPtr("After"),
		Severity:               strPtr(string(models.SeverityCritical)),
		ExpiryTime:             timePtr(newExpiry),
		ReminderFrequencyHours: intPtr(6),
	})
	require.NoError(t, err)

	stored, err := env.alertRepo.FindByID(alert.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", stored.Title)
	assert.Equal(t, models.SeverityCritical, stored.Severity)
	assert.Equal(t, 6, stored.ReminderFrequencyHours)
	require.NotNil(t, stored.ExpiryTime)
	assert.WithinDuration(t, newExpiry, *stored.ExpiryTime, time.Second)
}
