package model

import (
	"strings"
	"time"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
)

type Role string

const (
	RoleClient     Role = "client"
	RoleManager    Role = "manager"
	RoleTranslator Role = "translator"
	RoleAdmin      Role = "admin"
	// RoleSystem is never stored on a user; it marks transitions the
	// application applies on its own (e.g. draft -> quoted after pricing).
	RoleSystem Role = "system"
)

// Satisfies reports whether an actor holding this role may take an action
// gated on required. Admins cover every manager-gated edge.
func (r Role) Satisfies(required Role) bool {
	if r == required {
		return true
	}
	return required == RoleManager && r == RoleAdmin
}

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleClient:
		return RoleClient, nil
	case RoleManager:
		return RoleManager, nil
	case RoleTranslator:
		return RoleTranslator, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", domain.ErrInvalidArgument
}

type User struct {
	ID           string // UUID
	Username     string
	Email        string // empty disables mail notifications for the user
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

func NewUser(id, username, email, passwordHash string, role Role) (*User, error) {
	if id == "" || username == "" || passwordHash == "" {
		return nil, domain.ErrInvalidArgument
	}
	if _, err := ParseRole(string(role)); err != nil {
		return nil, err
	}
	return &User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now(),
	}, nil
}

// Actor identifies who is requesting an operation.
type Actor struct {
	UserID string
	Role   Role
}

// System is the actor for transitions the application applies itself.
var System = Actor{UserID: "", Role: RoleSystem}
