package repository

import (
	"context"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
)

type UserRepository interface {
	Save(ctx context.Context, tx Tx, u *model.User) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.User, error)
	FindByUsername(ctx context.Context, tx Tx, username string) (*model.User, error)
	ListByRole(ctx context.Context, tx Tx, role model.Role) ([]*model.User, error)
	CountAll(ctx context.Context, tx Tx) (int, error)
}
