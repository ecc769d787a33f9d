package repository

import (
	"context"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
)

type NotificationLogRepository interface {
	Save(ctx context.Context, tx Tx, entry *model.NotificationLog) error
	ListByJob(ctx context.Context, tx Tx, jobID string) ([]*model.NotificationLog, error)
	// ListFailed returns failed dispatches for manual or scheduled retry.
	ListFailed(ctx context.Context, tx Tx, limit int) ([]*model.NotificationLog, error)
}
