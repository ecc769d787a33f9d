package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/repository"
)

// Compile-time check
var _ GlossaryUseCase = (*glossaryUC)(nil)

type GlossaryUseCase interface {
	Add(ctx context.Context, clientID, source, target, notes string) (*model.GlossaryTerm, error)
	List(ctx context.Context, clientID string) ([]*model.GlossaryTerm, error)
	Delete(ctx context.Context, id string) error
}

type glossaryUC struct {
	terms repository.GlossaryRepository
}

func NewGlossaryUseCase(terms repository.GlossaryRepository) *glossaryUC {
	return &glossaryUC{terms: terms}
}

func (u *glossaryUC) Add(ctx context.Context, clientID, source, target, notes string) (*model.GlossaryTerm, error) {
	term, err := model.NewGlossaryTerm(uuid.NewString(), clientID, source, target, notes)
	if err != nil {
		return nil, err
	}
	if err := u.terms.Save(ctx, repository.NoTX, term); err != nil {
		return nil, err
	}
	return term, nil
}

func (u *glossaryUC) List(ctx context.Context, clientID string) ([]*model.GlossaryTerm, error) {
	return u.terms.ListByClient(ctx, repository.NoTX, clientID)
}

func (u *glossaryUC) Delete(ctx context.Context, id string) error {
	return u.terms.Delete(ctx, repository.NoTX, id)
}
