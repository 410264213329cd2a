package user

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	// Register hashes the password and stores the user. The role defaults to
	// "usuario" when omitted.
	Register(ctx context.Context, req RegisterRequest) (*User, error)

	// Login verifies the password and issues an expiring access token.
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)

	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	UpdatePreferences(ctx context.Context, id uuid.UUID, req UpdatePreferencesRequest) (*User, error)
}
