package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/MrSnakeDoc/promptdeck/internal/domain"
)

// Store keeps annotations and custom prompts in process memory.
// Nothing survives a restart; use the Redis store for persistence.
type Store struct {
	mu        sync.RWMutex
	bookmarks map[int]time.Time
	custom    map[int]*domain.Prompt
	seq       int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		bookmarks: make(map[int]time.Time),
		custom:    make(map[int]*domain.Prompt),
	}
}

// Get returns the annotation of a prompt id
func (s *Store) Get(ctx context.Context, promptID int) (domain.Annotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	at, ok := s.bookmarks[promptID]
	return domain.Annotation{PromptID: promptID, Bookmarked: ok, BookmarkedAt: at}, nil
}

// Set bookmarks (keeping the first bookmark time) or clears a prompt id
func (s *Store) Set(ctx context.Context, promptID int, bookmarked bool, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !bookmarked {
		delete(s.bookmarks, promptID)
		return nil
	}
	if _, ok := s.bookmarks[promptID]; !ok {
		s.bookmarks[promptID] = at
	}
	return nil
}

// Annotations returns every bookmarked annotation, most recent first
func (s *Store) Annotations(ctx context.Context) ([]domain.Annotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Annotation, 0, len(s.bookmarks))
	for id, at := range s.bookmarks {
		out = append(out, domain.Annotation{PromptID: id, Bookmarked: true, BookmarkedAt: at})
	}
	slices.SortFunc(out, func(a, b domain.Annotation) int {
		if c := b.BookmarkedAt.Compare(a.BookmarkedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.PromptID, b.PromptID)
	})
	return out, nil
}

// NextCustomID allocates the next custom prompt id
func (s *Store) NextCustomID(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	return domain.CustomIDBase + s.seq, nil
}

// SaveCustom stores a copy of a custom prompt
func (s *Store) SaveCustom(ctx context.Context, p *domain.Prompt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.custom[p.ID] = p.Clone()
	return nil
}

// GetCustom retrieves a custom prompt by id
func (s *Store) GetCustom(ctx context.Context, id int) (*domain.Prompt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.custom[id]
	if !ok {
		return nil, domain.NotFound(id)
	}
	return p.Clone(), nil
}

// ListCustom returns custom prompts, oldest first
func (s *Store) ListCustom(ctx context.Context) ([]*domain.Prompt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Prompt, 0, len(s.custom))
	for _, p := range s.custom {
		out = append(out, p.Clone())
	}
	slices.SortFunc(out, func(a, b *domain.Prompt) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

// DeleteCustom removes a custom prompt
func (s *Store) DeleteCustom(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.custom[id]; !ok {
		return domain.NotFound(id)
	}
	delete(s.custom, id)
	return nil
}
