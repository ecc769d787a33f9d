package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/repository"
)

// Compile-time check
var _ UserUseCase = (*userUC)(nil)

type UserUseCase interface {
	// Register creates a client account; self-service signup never grants
	// elevated roles.
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	// Create provisions an account with an explicit role (seeding, admin).
	Create(ctx context.Context, username, email, password string, role model.Role) (*model.User, error)
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	ListTranslators(ctx context.Context) ([]*model.User, error)
}

type userUC struct {
	users repository.UserRepository
}

func NewUserUseCase(users repository.UserRepository) *userUC {
	return &userUC{users: users}
}

func (u *userUC) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	return u.Create(ctx, username, email, password, model.RoleClient)
}

func (u *userUC) Create(ctx context.Context, username, email, password string, role model.Role) (*model.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidArgument
	}
	if _, err := u.users.FindByUsername(ctx, repository.NoTX, username); err == nil {
		return nil, domain.ErrAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user, err := model.NewUser(uuid.NewString(), username, email, string(hash), role)
	if err != nil {
		return nil, err
	}
	if err := u.users.Save(ctx, repository.NoTX, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userUC) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := u.users.FindByUsername(ctx, repository.NoTX, username)
	if err != nil {
		return nil, domain.ErrForbidden
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

func (u *userUC) Get(ctx context.Context, id string) (*model.User, error) {
	return u.users.FindByID(ctx, repository.NoTX, id)
}

func (u *userUC) ListTranslators(ctx context.Context) ([]*model.User, error) {
	return u.users.ListByRole(ctx, repository.NoTX, model.RoleTranslator)
}
