package repository

import (
	"context"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
)

type JobRepository interface {
	Save(ctx context.Context, tx Tx, job *model.Job) error
	// FindByID locks the row for update when called with a live tx.
	FindByID(ctx context.Context, tx Tx, id string) (*model.Job, error)
	ListByClient(ctx context.Context, tx Tx, clientID string) ([]*model.Job, error)
	ListByTranslator(ctx context.Context, tx Tx, translatorID string) ([]*model.Job, error)
	ListAll(ctx context.Context, tx Tx) ([]*model.Job, error)
	ListByState(ctx context.Context, tx Tx, state model.JobState) ([]*model.Job, error)
	// ListDueWithin returns unfinished jobs whose due date falls inside the
	// next given number of hours; used by the reminder worker.
	ListDueWithin(ctx context.Context, tx Tx, hours int) ([]*model.Job, error)
	CountByState(ctx context.Context, tx Tx) (map[model.JobState]int, error)
}
