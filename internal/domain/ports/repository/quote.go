package repository

import (
	"context"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
)

type QuoteRepository interface {
	Save(ctx context.Context, tx Tx, quote *model.Quote) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Quote, error)
	// FindActiveByJob returns the single non-superseded quote for the job,
	// or domain.ErrNotFound when none exists.
	FindActiveByJob(ctx context.Context, tx Tx, jobID string) (*model.Quote, error)
	ListByJob(ctx context.Context, tx Tx, jobID string) ([]*model.Quote, error)
	// SupersedeActive flags the job's active quote as superseded; a no-op
	// when the job has none.
	SupersedeActive(ctx context.Context, tx Tx, jobID string) error
}
