package event

import "errors"

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrEditionNotFound  = errors.New("edition not found")
	ErrDuplicateSlug    = errors.New("event slug already exists")
	ErrDuplicateEdition = errors.New("edition already exists for this event and year")
	ErrEventHasArticles = errors.New("event has published articles and cannot be deleted")
)
