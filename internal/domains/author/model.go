package author

import (
	"strings"

	"github.com/google/uuid"
)

// Author is a named contributor, independent of any user account.
// JSON field names follow the public API contract.
type Author struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"nome"`
	LastName  string    `json:"sobrenome"`
	Slug      string    `json:"slug"`
}

func New(firstName, lastName, slug string) *Author {
	return &Author{
		ID:        uuid.New(),
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Slug:      slug,
	}
}

// FullName renders "First Last", tolerating a missing surname.
func (a *Author) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}
