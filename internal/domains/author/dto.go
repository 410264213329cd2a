package author

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreateAuthorRequest struct {
	FirstName string `json:"nome" binding:"required"`
	LastName  string `json:"sobrenome"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.Required.Error("nome is required"),
			validation.Length(1, 200),
		),
		validation.Field(&r.LastName,
			validation.Length(0, 200),
		),
	)
}
