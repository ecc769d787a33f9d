package sched

import (
	"context"
	"time"

	"github.com/Abdelmagid1892/translation-office-app/internal/usecase"

	"github.com/rs/zerolog"
)

// RetryWorker re-sends notification mail that failed on first dispatch.
type RetryWorker struct {
	interval time.Duration
	batch    int
	notifUC  usecase.NotificationUseCase
	log      *zerolog.Logger
}

func NewRetryWorker(interval time.Duration, batch int, notifUC usecase.NotificationUseCase, logger *zerolog.Logger) *RetryWorker {
	compLog := logger.With().Str("component", "RetryWorker").Logger()
	return &RetryWorker{
		interval: interval,
		batch:    batch,
		notifUC:  notifUC,
		log:      &compLog,
	}
}

func (w *RetryWorker) Run(ctx context.Context) error {
	w.log.Info().Msg("Starting notification retry worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping notification retry worker")
			return ctx.Err()
		case <-ticker.C:
			sent, err := w.notifUC.RetryFailed(ctx, w.batch)
			if err != nil {
				w.log.Error().Err(err).Msg("notification retry failed")
			}
			if sent > 0 {
				w.log.Info().Int("count", sent).Msg("failed notifications retried")
			}
		}
	}
}
