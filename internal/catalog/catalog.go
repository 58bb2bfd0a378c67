package catalog

import (
	"slices"
	"strings"

	"github.com/MrSnakeDoc/promptdeck/internal/domain"
)

// Catalog is an immutable, validated snapshot of the curated prompts.
// Records keep their authoring order, which is the order of the All view.
type Catalog struct {
	prompts []*domain.Prompt
	byID    map[int]*domain.Prompt
	tags    []domain.TagCount
}

// New validates records and builds a snapshot.
//
// Records are copied, tags are lowercased. It fails with a
// *domain.CatalogLoadError on a duplicate or out-of-range id, an empty
// title or prompt, or a negative weight.
func New(records []*domain.Prompt) (*Catalog, error) {
	c := &Catalog{
		prompts: make([]*domain.Prompt, 0, len(records)),
		byID:    make(map[int]*domain.Prompt, len(records)),
	}

	for i, rec := range records {
		if rec == nil {
			return nil, &domain.CatalogLoadError{Index: i, Reason: "nil record"}
		}
		if err := validate(i, rec); err != nil {
			return nil, err
		}
		if _, dup := c.byID[rec.ID]; dup {
			return nil, &domain.CatalogLoadError{Index: i, ID: rec.ID, Reason: "duplicate id"}
		}

		p := rec.Clone()
		p.Tags = normalizeTags(p.Tags)
		p.Custom = false

		c.prompts = append(c.prompts, p)
		c.byID[p.ID] = p
	}

	c.tags = domain.TagCounts(c.prompts)
	return c, nil
}

func validate(i int, rec *domain.Prompt) error {
	switch {
	case rec.ID <= 0:
		return &domain.CatalogLoadError{Index: i, ID: rec.ID, Reason: "id must be positive"}
	case rec.ID >= domain.CustomIDBase:
		return &domain.CatalogLoadError{Index: i, ID: rec.ID, Reason: "id collides with custom id range"}
	case strings.TrimSpace(rec.Title) == "":
		return &domain.CatalogLoadError{Index: i, ID: rec.ID, Reason: "empty title"}
	case rec.Prompt == "":
		return &domain.CatalogLoadError{Index: i, ID: rec.ID, Reason: "empty prompt"}
	case rec.Weight < 0:
		return &domain.CatalogLoadError{Index: i, ID: rec.ID, Reason: "negative weight"}
	}
	return nil
}

// All returns every prompt in authoring order.
// The slice is a copy; the records are shared and must not be mutated.
func (c *Catalog) All() []*domain.Prompt {
	return slices.Clone(c.prompts)
}

// Get resolves an id to a copy of its prompt.
func (c *Catalog) Get(id int) (*domain.Prompt, error) {
	if p, ok := c.byID[id]; ok {
		return p.Clone(), nil
	}
	return nil, domain.NotFound(id)
}

// Has reports whether id belongs to the catalog.
func (c *Catalog) Has(id int) bool {
	_, ok := c.byID[id]
	return ok
}

// Len returns the number of prompts.
func (c *Catalog) Len() int {
	return len(c.prompts)
}

// Tags returns the distinct catalog tags with their counts.
func (c *Catalog) Tags() []domain.TagCount {
	return slices.Clone(c.tags)
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = domain.NormalizeTag(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
