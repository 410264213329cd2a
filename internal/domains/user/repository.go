package user

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create inserts the user; a duplicate email maps to ErrEmailAlreadyExists.
	Create(ctx context.Context, entity *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdatePreferences(ctx context.Context, id uuid.UUID, receiveNotifications bool) error
}
