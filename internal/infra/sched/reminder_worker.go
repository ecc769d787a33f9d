package sched

import (
	"context"
	"time"

	"github.com/Abdelmagid1892/translation-office-app/internal/usecase"

	"github.com/rs/zerolog"
)

// ReminderWorker mails translators about jobs coming due inside the window.
type ReminderWorker struct {
	interval    time.Duration
	windowHours int
	notifUC     usecase.NotificationUseCase
	log         *zerolog.Logger
}

func NewReminderWorker(interval time.Duration, windowHours int, notifUC usecase.NotificationUseCase, logger *zerolog.Logger) *ReminderWorker {
	compLog := logger.With().Str("component", "ReminderWorker").Logger()
	return &ReminderWorker{
		interval:    interval,
		windowHours: windowHours,
		notifUC:     notifUC,
		log:         &compLog,
	}
}

func (w *ReminderWorker) Run(ctx context.Context) error {
	w.log.Info().Msg("Starting reminder worker")
	// Run once on startup, then on every tick
	w.runCheck(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping reminder worker")
			return ctx.Err()
		case <-ticker.C:
			w.runCheck(ctx)
		}
	}
}

func (w *ReminderWorker) runCheck(ctx context.Context) {
	sent, err := w.notifUC.RemindDueSoon(ctx, w.windowHours)
	if err != nil {
		w.log.Error().Err(err).Msg("due-soon check failed")
	}
	if sent > 0 {
		w.log.Info().Int("count", sent).Msg("due-soon reminders sent")
	}
}
