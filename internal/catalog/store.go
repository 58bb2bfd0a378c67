package catalog

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/promptdeck/internal/domain"
)

// AnnotationStore keeps per-prompt user annotations.
//
// Set with bookmarked=true must keep the first bookmark time when the id
// is already bookmarked. Set with bookmarked=false removes the annotation.
// Get on an unknown id returns a non-bookmarked annotation, not an error.
type AnnotationStore interface {
	Get(ctx context.Context, promptID int) (domain.Annotation, error)
	Set(ctx context.Context, promptID int, bookmarked bool, at time.Time) error
	Annotations(ctx context.Context) ([]domain.Annotation, error)
}

// CustomStore keeps user-authored prompts.
// ListCustom returns prompts oldest first; GetCustom and DeleteCustom
// return domain.ErrPromptNotFound for unknown ids.
type CustomStore interface {
	NextCustomID(ctx context.Context) (int, error)
	SaveCustom(ctx context.Context, p *domain.Prompt) error
	GetCustom(ctx context.Context, id int) (*domain.Prompt, error)
	ListCustom(ctx context.Context) ([]*domain.Prompt, error)
	DeleteCustom(ctx context.Context, id int) error
}

// Store is the full persistence contract of the service.
type Store interface {
	AnnotationStore
	CustomStore
}

// Snapshotter hands out the current catalog snapshot.
type Snapshotter interface {
	Current() *Catalog
}

// Clipboard receives prompt text on copy.
type Clipboard interface {
	Write(ctx context.Context, text string) error
}
