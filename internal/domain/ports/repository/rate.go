package repository

import (
	"context"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
)

type RateRepository interface {
	Save(ctx context.Context, tx Tx, rate *model.Rate) error
	// FindByPair returns the rate for (source, target) or domain.ErrRateNotFound.
	FindByPair(ctx context.Context, tx Tx, sourceLang, targetLang string) (*model.Rate, error)
	ListAll(ctx context.Context, tx Tx) ([]*model.Rate, error)
	Delete(ctx context.Context, tx Tx, id string) error
}
