package repository

import (
	"context"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
)

type GlossaryRepository interface {
	Save(ctx context.Context, tx Tx, term *model.GlossaryTerm) error
	ListByClient(ctx context.Context, tx Tx, clientID string) ([]*model.GlossaryTerm, error)
	Delete(ctx context.Context, tx Tx, id string) error
}
