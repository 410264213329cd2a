package event

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

type CreateEventRequest struct {
	Name    string     `json:"nome" binding:"required"`
	Slug    string     `json:"sigla"`
	AdminID *uuid.UUID `json:"admin_id"`
}

func (r CreateEventRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("nome is required"),
			validation.Length(1, 200),
		),
		validation.Field(&r.Slug,
			validation.Length(0, 100),
		),
	)
}

type UpdateEventRequest struct {
	Name string `json:"nome"`
	Slug string `json:"sigla"`
}

func (r UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, 200)),
		validation.Field(&r.Slug, validation.Length(0, 100)),
	)
}

type CreateEditionRequest struct {
	EventID     uuid.UUID `json:"evento_id" binding:"required"`
	Year        int       `json:"ano" binding:"required"`
	Description string    `json:"descricao"`
	StartDate   string    `json:"data_inicio"`
	EndDate     string    `json:"data_fim"`
	Location    string    `json:"local"`
	SiteURL     string    `json:"site_url"`
}

func (r CreateEditionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.EventID,
			validation.Required.Error("evento_id is required"),
		),
		validation.Field(&r.Year,
			validation.Required.Error("ano is required"),
			validation.Min(1900),
			validation.Max(2200),
		),
		validation.Field(&r.StartDate, validation.Date("2006-01-02")),
		validation.Field(&r.EndDate, validation.Date("2006-01-02")),
		validation.Field(&r.SiteURL, is.URL),
	)
}

type UpdateEditionRequest struct {
	Description string `json:"descricao"`
	StartDate   string `json:"data_inicio"`
	EndDate     string `json:"data_fim"`
	Location    string `json:"local"`
	SiteURL     string `json:"site_url"`
}

func (r UpdateEditionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.StartDate, validation.Date("2006-01-02")),
		validation.Field(&r.EndDate, validation.Date("2006-01-02")),
		validation.Field(&r.SiteURL, is.URL),
	)
}
