package event

import (
	"strings"

	"github.com/google/uuid"

	"library-backend/internal/shared/utils"
)

// Event is a recurring scientific gathering (congress, symposium). Its slug
// doubles as the public identifier, surfaced on the wire as "sigla".
type Event struct {
	ID      uuid.UUID  `json:"id"`
	Name    string     `json:"nome"`
	Slug    string     `json:"sigla"`
	AdminID *uuid.UUID `json:"admin_id,omitempty"`
}

func NewEvent(name, slug string, adminID *uuid.UUID) *Event {
	return &Event{
		ID:      uuid.New(),
		Name:    strings.TrimSpace(name),
		Slug:    slug,
		AdminID: adminID,
	}
}

// Edition is a single occurrence of an event in a given year. The (event,
// year) pair is unique, as is the derived slug "{event-slug}-{year}".
type Edition struct {
	ID          uuid.UUID   `json:"id"`
	EventID     uuid.UUID   `json:"evento_id"`
	Year        int         `json:"ano"`
	Slug        string      `json:"slug"`
	Description string      `json:"descricao,omitempty"`
	StartDate   *utils.Date `json:"data_inicio,omitempty"`
	EndDate     *utils.Date `json:"data_fim,omitempty"`
	Location    string      `json:"local,omitempty"`
	SiteURL     string      `json:"site_url,omitempty"`
}

func NewEdition(eventID uuid.UUID, year int, slug string) *Edition {
	return &Edition{
		ID:      uuid.New(),
		EventID: eventID,
		Year:    year,
		Slug:    slug,
	}
}
