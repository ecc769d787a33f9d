package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/repository"
)

// Compile-time check
var _ RateUseCase = (*rateUC)(nil)

type RateUseCase interface {
	// Create registers a per-word price for a language pair. One rate per
	// pair; a second create for the same pair fails with ErrAlreadyExists.
	Create(ctx context.Context, sourceLang, targetLang string, perWordMicros int64, currency string) (*model.Rate, error)
	List(ctx context.Context) ([]*model.Rate, error)
	Delete(ctx context.Context, id string) error
}

type rateUC struct {
	rates repository.RateRepository
}

func NewRateUseCase(rates repository.RateRepository) *rateUC {
	return &rateUC{rates: rates}
}

func (u *rateUC) Create(ctx context.Context, sourceLang, targetLang string, perWordMicros int64, currency string) (*model.Rate, error) {
	if _, err := u.rates.FindByPair(ctx, repository.NoTX, sourceLang, targetLang); err == nil {
		return nil, domain.ErrAlreadyExists
	} else if !errors.Is(err, domain.ErrRateNotFound) {
		return nil, err
	}
	rate, err := model.NewRate(uuid.NewString(), sourceLang, targetLang, perWordMicros, currency)
	if err != nil {
		return nil, err
	}
	if err := u.rates.Save(ctx, repository.NoTX, rate); err != nil {
		return nil, err
	}
	return rate, nil
}

func (u *rateUC) List(ctx context.Context) ([]*model.Rate, error) {
	return u.rates.ListAll(ctx, repository.NoTX)
}

func (u *rateUC) Delete(ctx context.Context, id string) error {
	return u.rates.Delete(ctx, repository.NoTX, id)
}
