package author

import "errors"

var (
	// ErrAuthorNotFound - no author with the given id/slug
	ErrAuthorNotFound = errors.New("author not found")

	// ErrDuplicateName - an author with the same (nome, sobrenome) already exists
	ErrDuplicateName = errors.New("an author with this name already exists")

	// ErrDuplicateSlug - slug collided despite suffix probing (concurrent insert)
	ErrDuplicateSlug = errors.New("author slug already exists")
)
