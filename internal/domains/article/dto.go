package article

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type CreateArticleRequest struct {
	Title       string      `json:"titulo" binding:"required"`
	Abstract    string      `json:"resumo"`
	SubjectArea string      `json:"area"`
	Keywords    string      `json:"palavras_chave"`
	PDFPath     string      `json:"pdf_path"`
	PublishedOn string      `json:"data_publicacao"`
	EditionID   uuid.UUID   `json:"edicao_id" binding:"required"`
	AuthorIDs   []uuid.UUID `json:"autor_ids"`
}

func (r CreateArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("titulo is required"),
			validation.Length(1, 500),
		),
		validation.Field(&r.EditionID,
			validation.Required.Error("edicao_id is required"),
		),
		validation.Field(&r.PublishedOn, validation.Date("2006-01-02")),
		validation.Field(&r.AuthorIDs,
			validation.Required.Error("at least one author is required"),
			validation.Length(1, 0),
		),
	)
}

type UpdateArticleRequest struct {
	Title       string      `json:"titulo"`
	Abstract    string      `json:"resumo"`
	SubjectArea string      `json:"area"`
	Keywords    string      `json:"palavras_chave"`
	PDFPath     string      `json:"pdf_path"`
	PublishedOn string      `json:"data_publicacao"`
	AuthorIDs   []uuid.UUID `json:"autor_ids"`
}

func (r UpdateArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(1, 500)),
		validation.Field(&r.PublishedOn, validation.Date("2006-01-02")),
	)
}
