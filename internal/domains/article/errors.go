package article

import "errors"

var (
	ErrArticleNotFound = errors.New("article not found")
	ErrEditionNotFound = errors.New("edition not found")
	ErrDuplicateTitle  = errors.New("article already exists in this edition")
)
