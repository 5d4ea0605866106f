package workers

import (
	"context"
	"time"

	"alerthub_backend/internal/logger"
	"alerthub_backend/internal/services"
)

// ReminderWorker периодически прогоняет напоминания: каждые interval
// минут все непрочитанные и не заглушенные алерты напоминаются заново.
type ReminderWorker struct {
	reminderService services.ReminderService
	interval        time.Duration
}

func NewReminderWorker(reminderService services.ReminderService, interval time.Duration) *ReminderWorker {
	return &ReminderWorker{
		reminderService: reminderService,
		interval:        interval,
	}
}

// Start запускает фоновый цикл напоминаний. Останавливается по ctx.
func (w *ReminderWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *ReminderWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logger.Info("Reminder worker started", "interval", w.interval.String())

	for {
		select {
		case <-ctx.Done():
			logger.Info("Reminder worker stopped")
			return
		case <-ticker.C:
			stats, err := w.reminderService.ProcessReminders()
			logger.WorkerLog("reminder", "process_reminders", err)
			if err == nil && (stats.Sent > 0 || stats.ClearedSnoozes > 0) {
				logger.Info("Reminder pass results",
					"sent", stats.Sent,
					"skipped", stats.Skipped,
					"cleared_snoozes", stats.ClearedSnoozes,
				)
			}
		}
	}
}
