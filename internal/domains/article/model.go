package article

import (
	"strings"

	"github.com/google/uuid"

	"library-backend/internal/domains/author"
	"library-backend/internal/shared/utils"
)

// Article is a published work tied to exactly one edition and one or more
// authors. PDFPath is the public path under the uploads tree, when present.
type Article struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"titulo"`
	Abstract    string          `json:"resumo,omitempty"`
	SubjectArea string          `json:"area,omitempty"`
	Keywords    string          `json:"palavras_chave,omitempty"`
	PDFPath     string          `json:"pdf_path,omitempty"`
	PublishedOn *utils.Date     `json:"data_publicacao,omitempty"`
	EditionID   uuid.UUID       `json:"edicao_id"`
	Authors     []author.Author `json:"autores,omitempty"`
}

func New(title string, editionID uuid.UUID) *Article {
	return &Article{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(title),
		EditionID: editionID,
	}
}

// AuthorIDs lists the ids of the loaded authors.
func (a *Article) AuthorIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(a.Authors))
	for _, au := range a.Authors {
		ids = append(ids, au.ID)
	}
	return ids
}

// AuthorArticles is the author page payload: works grouped by publication
// year (0 when the article has no date).
type AuthorArticles struct {
	Author *author.Author    `json:"autor"`
	ByYear map[int][]Article `json:"artigos_por_ano"`
	Total  int               `json:"total_artigos"`
}
