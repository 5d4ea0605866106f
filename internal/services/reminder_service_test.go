package services

import (
	"testing"
	"time"

	"alerthub_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) createState(t *testing.T, state *models.UserAlertState) *models.UserAlertState {
	t.Helper()
	require.NoError(t, e.stateRepo.Create(state))
	return state
}

func TestProcessRemindersSendsUnread(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "John Doe", "john@company.com", nil)
	alert := env.createAlert(t, &models.Alert{
		Title: "Unread", Message: "m",
		VisibilityType:         models.VisibilityOrganization,
		IsActive:               true,
		ReminderFrequencyHours: 2,
	})
	env.createState(t, &models.UserAlertState{UserID: user.ID, AlertID: alert.ID})

	stats, err := env.reminders.ProcessReminders()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Sent)
	assert.Equal(t, 0, stats.Skipped)
	assert.Equal(t, 1, env.recorder.Count())

	// Отправка журналируется и штампуется last_reminded_at.
	deliveries, err := env.deliveryRepo.FindByAlert(alert.ID)
	require.NoError(t, err)
	assert.Len(t, deliveries, 1)

	state, err := env.stateRepo.FindByUserAndAlert(user.ID, alert.ID)
	require.NoError(t, err)
	require.NotNil(t, state.LastRemindedAt)

	t.Run("immediate second pass respects frequency", func(t *testing.T) {
		stats, err := env.reminders.ProcessReminders()
		require.NoError(t, err)
		assert.Equal(t, 0, stats.Sent)
		assert.Equal(t, 1, stats.Skipped)
		assert.Equal(t, 1, env.recorder.Count())
	})

	t.Run("sends again once frequency has elapsed", func(t *testing.T) {
		past := time.Now().UTC().Add(-3 * time.Hour)
		state.LastRemindedAt = &past
		require.NoError(t, env.stateRepo.Save(state))

		stats, err := env.reminders.ProcessReminders()
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Sent)
		assert.Equal(t, 2, env.recorder.Count())
	})
}

func TestProcessRemindersSkipsReadAndSnoozed(t *testing.T) {
	env := newTestEnv(t)
	reader := env.createUser(t, "Reader", "reader@company.com", nil)
	snoozer := env.createUser(t, "Snoozer", "snoozer@company.com", nil)
	alert := env.createAlert(t, &models.Alert{
		Title: "Busy", Message: "m",
		VisibilityType:         models.VisibilityOrganization,
		IsActive:               true,
		ReminderFrequencyHours: 2,
	})

	env.createState(t, &models.UserAlertState{
		UserID: reader.ID, AlertID: alert.ID, IsRead: true,
	})
	future := time.Now().UTC().Add(time.Hour)
	env.createState(t, &models.UserAlertState{
		UserID: snoozer.ID, AlertID: alert.ID,
		IsSnoozed: true, SnoozedUntil: &future,
	})

	stats, err := env.reminders.ProcessReminders()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Sent)
	assert.Equal(t, int64(0), stats.ClearedSnoozes)
	assert.Equal(t, 0, env.recorder.Count())
}

func TestProcessRemindersClearsLapsedSnoozes(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "John Doe", "john@company.com", nil)
	alert := env.createAlert(t, &models.Alert{
		Title: "Was snoozed", Message: "m",
		VisibilityType:         models.VisibilityOrganization,
		IsActive:               true,
		ReminderFrequencyHours: 2,
	})

	past := time.Now().UTC().Add(-time.Minute)
	env.createState(t, &models.UserAlertState{
		UserID: user.ID, AlertID: alert.ID,
		IsSnoozed: true, SnoozedUntil: &past,
	})

	// Окно истекло: проход снимает snooze и сразу напоминает.
	stats, err := env.reminders.ProcessReminders()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.ClearedSnoozes)
	assert.Equal(t, 1, stats.Sent)

	state, err := env.stateRepo.FindByUserAndAlert(user.ID, alert.ID)
	require.NoError(t, err)
	assert.False(t, state.IsSnoozed)
}

func TestProcessRemindersIgnoresDisabledAndUndeliverable(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "John Doe", "john@company.com", nil)

	disabled := env.createAlert(t, &models.Alert{
		Title: "Disabled", Message: "m",
		VisibilityType:         models.VisibilityOrganization,
		IsActive:               true,
		ReminderFrequencyHours: 0,
	})
	expired := env.createAlert(t, &models.Alert{
		Title: "Expired", Message: "m",
		VisibilityType:         models.VisibilityOrganization,
		IsActive:               true,
		ReminderFrequencyHours: 2,
		ExpiryTime:             timePtr(time.Now().UTC().Add(-time.Hour)),
	})
	archived := env.createAlert(t, &models.Alert{
		Title: "Archived", Message: "m",
		VisibilityType:         models.VisibilityOrganization,
		IsActive:               true,
		ReminderFrequencyHours: 2,
	})
	require.NoError(t, env.db.Model(archived).Update("is_active", false).Error)

	env.createState(t, &models.UserAlertState{UserID: user.ID, AlertID: disabled.ID})
	env.createState(t, &models.UserAlertState{UserID: user.ID, AlertID: expired.ID})
	env.createState(t, &models.UserAlertState{UserID: user.ID, AlertID: archived.ID})

	stats, err := env.reminders.ProcessReminders()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Sent)
	assert.Equal(t, 0, env.recorder.Count())
	// Истекший алерт доходит до кандидатов, но отсекается по времени.
	assert.Equal(t, 1, stats.Skipped)
}
