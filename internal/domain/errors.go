package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrCatalogLoad is returned when catalog source data is malformed.
	ErrCatalogLoad = errors.New("catalog load error")

	// ErrInvalidCategory is returned for an unknown view category.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrPromptNotFound is returned when an id resolves to no prompt.
	ErrPromptNotFound = errors.New("prompt not found")

	// ErrInvalidPrompt is returned when a custom prompt fails validation.
	ErrInvalidPrompt = errors.New("invalid prompt")
)

// CatalogLoadError describes the record that made a catalog load fail.
// Index is the position in the source (-1 when not record specific).
type CatalogLoadError struct {
	Index  int
	ID     int
	Reason string
}

func (e *CatalogLoadError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", ErrCatalogLoad, e.Reason)
	}
	return fmt.Sprintf("%s: record #%d (id=%d): %s", ErrCatalogLoad, e.Index, e.ID, e.Reason)
}

func (e *CatalogLoadError) Unwrap() error { return ErrCatalogLoad }

// NotFound wraps ErrPromptNotFound with the offending id.
func NotFound(id int) error {
	return fmt.Errorf("%w: %d", ErrPromptNotFound, id)
}
