package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin  = "admin"
	RoleReader = "usuario"
)

type User struct {
	ID                   uuid.UUID `json:"id"`
	Name                 string    `json:"nome"`
	Email                string    `json:"email"`
	PasswordHash         string    `json:"-"`
	Role                 string    `json:"perfil"`
	ReceiveNotifications bool      `json:"receber_notificacoes"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func New(name, email, passwordHash, role string) *User {
	now := time.Now()
	return &User{
		ID:                   uuid.New(),
		Name:                 name,
		Email:                email,
		PasswordHash:         passwordHash,
		Role:                 role,
		ReceiveNotifications: true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
