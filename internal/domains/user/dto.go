package user

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type RegisterRequest struct {
	Name     string `json:"nome" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"senha" binding:"required"`
	Role     string `json:"perfil"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("nome is required"),
			validation.Length(1, 200),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email,
		),
		validation.Field(&r.Password,
			validation.Required.Error("senha is required"),
			validation.Length(6, 72),
		),
		validation.Field(&r.Role,
			validation.In(RoleAdmin, RoleReader),
		),
	)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"senha" binding:"required"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

type UpdatePreferencesRequest struct {
	ReceiveNotifications *bool `json:"receber_notificacoes"`
}

func (r UpdatePreferencesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ReceiveNotifications, validation.NotNil),
	)
}

// AuthResponse is the login payload: bearer token plus the owning user.
type AuthResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        *User     `json:"user"`
}
