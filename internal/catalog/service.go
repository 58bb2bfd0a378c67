package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrSnakeDoc/promptdeck/internal/domain"
	"github.com/MrSnakeDoc/promptdeck/internal/logger"
	"github.com/MrSnakeDoc/promptdeck/internal/metrics"
)

// ErrNotLoaded is returned while no catalog snapshot is available yet.
var ErrNotLoaded = errors.New("catalog not loaded")

// Query selects a view and narrows it down.
type Query struct {
	View         domain.Category
	Text         string
	Tags         []string
	SortByWeight bool
}

// CustomInput is the user-supplied part of a custom prompt.
type CustomInput struct {
	Title   string   `json:"title"`
	Prompt  string   `json:"prompt"`
	Remark  *string  `json:"remark"`
	Website *string  `json:"website"`
	Tags    []string `json:"tags"`
}

// Service answers catalog queries and runs the user commands
// (bookmark, copy, use, custom prompts) against the annotation store.
type Service struct {
	snap      Snapshotter
	store     Store
	clipboard Clipboard
	logger    logger.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewService wires a service. clip may be nil when the caller always
// passes its own clipboard to CopyTo; m may be nil.
func NewService(snap Snapshotter, store Store, clip Clipboard, log logger.Logger, m *metrics.Metrics) *Service {
	return &Service{
		snap:      snap,
		store:     store,
		clipboard: clip,
		logger:    log,
		metrics:   m,
		now:       time.Now,
	}
}

func (s *Service) current() (*Catalog, error) {
	c := s.snap.Current()
	if c == nil {
		return nil, ErrNotLoaded
	}
	return c, nil
}

// List composes the requested view, then applies free-text search, tag
// filters and, only when asked, the weight sort.
// Catalog records in the result are shared with the snapshot and must not
// be mutated; use Get for a private copy.
func (s *Service) List(ctx context.Context, q Query) ([]*domain.Prompt, error) {
	c, err := s.current()
	if err != nil {
		return nil, err
	}
	if q.View == "" {
		q.View = domain.CategoryAll
	}

	var (
		custom      []*domain.Prompt
		annotations []domain.Annotation
	)
	switch q.View {
	case domain.CategoryAll:
	case domain.CategoryCustom:
		if custom, err = s.store.ListCustom(ctx); err != nil {
			return nil, fmt.Errorf("failed to list custom prompts: %w", err)
		}
	case domain.CategoryBookmarked:
		if custom, err = s.store.ListCustom(ctx); err != nil {
			return nil, fmt.Errorf("failed to list custom prompts: %w", err)
		}
		if annotations, err = s.store.Annotations(ctx); err != nil {
			return nil, fmt.Errorf("failed to list annotations: %w", err)
		}
	}

	result, err := domain.ViewFor(q.View, c.All(), custom, annotations)
	if err != nil {
		return nil, err
	}
	result = domain.Search(result, q.Text)
	result = domain.FilterByTags(result, q.Tags...)
	if q.SortByWeight {
		result = domain.SortByWeightDescending(result)
	}

	s.metrics.ObserveQuery(string(q.View))
	return result, nil
}

// Get resolves an id against the catalog, then the custom prompts.
// The returned prompt is a copy owned by the caller.
func (s *Service) Get(ctx context.Context, id int) (*domain.Prompt, error) {
	c, err := s.current()
	if err != nil {
		return nil, err
	}
	if id < domain.CustomIDBase {
		return c.Get(id)
	}
	return s.store.GetCustom(ctx, id)
}

// IsBookmarked reports the bookmark flag of an id.
func (s *Service) IsBookmarked(ctx context.Context, id int) (bool, error) {
	a, err := s.store.Get(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to get annotation: %w", err)
	}
	return a.Bookmarked, nil
}

// BookmarkedIDs returns the set of bookmarked prompt ids.
func (s *Service) BookmarkedIDs(ctx context.Context) (map[int]bool, error) {
	annotations, err := s.store.Annotations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list annotations: %w", err)
	}
	ids := make(map[int]bool, len(annotations))
	for _, a := range annotations {
		if a.Bookmarked {
			ids[a.PromptID] = true
		}
	}
	return ids, nil
}

// Bookmark marks a prompt. Bookmarking twice is a no-op.
func (s *Service) Bookmark(ctx context.Context, id int) error {
	if _, err := s.Get(ctx, id); err != nil {
		s.metrics.ObserveAction("bookmark", err)
		return err
	}
	err := s.store.Set(ctx, id, true, s.now())
	if err != nil {
		err = fmt.Errorf("failed to bookmark prompt %d: %w", id, err)
	} else {
		s.logger.Debug("prompt bookmarked", logger.Int("id", id))
	}
	s.metrics.ObserveAction("bookmark", err)
	return err
}

// Unbookmark clears a bookmark. Unknown or unmarked ids are a no-op, so
// stale references left behind by a catalog reload can still be cleared.
func (s *Service) Unbookmark(ctx context.Context, id int) error {
	err := s.store.Set(ctx, id, false, s.now())
	if err != nil {
		err = fmt.Errorf("failed to unbookmark prompt %d: %w", id, err)
	} else {
		s.logger.Debug("prompt unbookmarked", logger.Int("id", id))
	}
	s.metrics.ObserveAction("unbookmark", err)
	return err
}

// CopyToClipboard sends the prompt text, verbatim, to the service clipboard.
func (s *Service) CopyToClipboard(ctx context.Context, id int) error {
	if s.clipboard == nil {
		return errors.New("no clipboard configured")
	}
	_, err := s.CopyTo(ctx, id, s.clipboard)
	return err
}

// CopyTo sends the prompt text, verbatim, to clip and returns it.
// The clipboard is not touched when the id does not resolve.
func (s *Service) CopyTo(ctx context.Context, id int, clip Clipboard) (string, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		s.metrics.ObserveAction("copy", err)
		return "", err
	}
	if err := clip.Write(ctx, p.Prompt); err != nil {
		err = fmt.Errorf("failed to write clipboard: %w", err)
		s.metrics.ObserveAction("copy", err)
		return "", err
	}
	s.metrics.ObserveAction("copy", nil)
	return p.Prompt, nil
}

// Use returns the prompt text to forward to the chat input.
func (s *Service) Use(ctx context.Context, id int) (string, error) {
	p, err := s.Get(ctx, id)
	s.metrics.ObserveAction("use", err)
	if err != nil {
		return "", err
	}
	return p.Prompt, nil
}

// CreateCustom validates and stores a user-authored prompt.
func (s *Service) CreateCustom(ctx context.Context, in CustomInput) (*domain.Prompt, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: empty title", domain.ErrInvalidPrompt)
	}
	if strings.TrimSpace(in.Prompt) == "" {
		return nil, fmt.Errorf("%w: empty prompt", domain.ErrInvalidPrompt)
	}

	id, err := s.store.NextCustomID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate custom id: %w", err)
	}

	p := &domain.Prompt{
		ID:        id,
		Title:     title,
		Prompt:    in.Prompt,
		Remark:    in.Remark,
		Website:   in.Website,
		Tags:      normalizeTags(in.Tags),
		Custom:    true,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.SaveCustom(ctx, p); err != nil {
		s.metrics.ObserveAction("create_custom", err)
		return nil, fmt.Errorf("failed to save custom prompt: %w", err)
	}

	s.metrics.ObserveAction("create_custom", nil)
	s.logger.Info("custom prompt created",
		logger.Int("id", p.ID),
		logger.String("title", p.Title))
	return p, nil
}

// DeleteCustom removes a custom prompt and its bookmark.
func (s *Service) DeleteCustom(ctx context.Context, id int) error {
	if id < domain.CustomIDBase {
		return domain.NotFound(id)
	}
	if err := s.store.DeleteCustom(ctx, id); err != nil {
		s.metrics.ObserveAction("delete_custom", err)
		return err
	}
	if err := s.store.Set(ctx, id, false, s.now()); err != nil {
		s.logger.Warn("failed to clear bookmark of deleted custom prompt",
			logger.Int("id", id),
			logger.Error(err))
	}
	s.metrics.ObserveAction("delete_custom", nil)
	return nil
}

// Tags counts tags over catalog and custom prompts.
func (s *Service) Tags(ctx context.Context) ([]domain.TagCount, error) {
	c, err := s.current()
	if err != nil {
		return nil, err
	}
	custom, err := s.store.ListCustom(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list custom prompts: %w", err)
	}
	if len(custom) == 0 {
		return c.Tags(), nil
	}
	return domain.TagCounts(append(c.All(), custom...)), nil
}
