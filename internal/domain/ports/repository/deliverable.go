package repository

import (
	"context"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
)

type DeliverableRepository interface {
	Save(ctx context.Context, tx Tx, d *model.Deliverable) error
	// FindLatestByJob returns the most recent deliverable for the job, or
	// domain.ErrNotFound.
	FindLatestByJob(ctx context.Context, tx Tx, jobID string) (*model.Deliverable, error)
	ListByJob(ctx context.Context, tx Tx, jobID string) ([]*model.Deliverable, error)
}
