// File: internal/infra/worker/dispatcher.go
package worker

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
	"github.com/Abdelmagid1892/translation-office-app/internal/infra/metrics"
	"github.com/Abdelmagid1892/translation-office-app/internal/usecase"
)

var _ usecase.NotificationQueue = (*Dispatcher)(nil)

// Dispatcher feeds lifecycle notifications into the pool so mail sending
// never blocks the transition that caused it.
type Dispatcher struct {
	pool    *Pool
	notifUC usecase.NotificationUseCase
	log     *zerolog.Logger
}

func NewDispatcher(pool *Pool, notifUC usecase.NotificationUseCase, logger *zerolog.Logger) *Dispatcher {
	compLog := logger.With().Str("component", "Dispatcher").Logger()
	return &Dispatcher{pool: pool, notifUC: notifUC, log: &compLog}
}

func (d *Dispatcher) Enqueue(n model.Notification) error {
	err := d.pool.Submit(func(ctx context.Context) error {
		if err := d.notifUC.Dispatch(ctx, n); err != nil {
			metrics.IncNotification(string(n.NewState), "failed")
			return err
		}
		metrics.IncNotification(string(n.NewState), "sent")
		return nil
	})
	if err != nil {
		metrics.IncNotification(string(n.NewState), "dropped")
		// The caller's transition is already committed, so the drop must
		// leave a failed entry the retry sweep can re-send.
		if recErr := d.notifUC.RecordDrop(context.Background(), n, err); recErr != nil {
			d.log.Error().Err(recErr).Str("job_id", n.JobID).Msg("failed to record dropped notification")
		}
	}
	return err
}
