package catalogfile

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/promptdeck/internal/catalog"
	"github.com/MrSnakeDoc/promptdeck/internal/domain"
)

// Mapper converts catalog entries to domain prompts
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapPrompts converts a CatalogConfig to []*domain.Prompt, keeping order.
// Only the title is trimmed: prompt text is sent verbatim.
func (m *Mapper) MapPrompts(config CatalogConfig) []*domain.Prompt {
	prompts := make([]*domain.Prompt, 0, len(config))
	for _, entry := range config {
		prompts = append(prompts, &domain.Prompt{
			ID:      entry.ID,
			Title:   strings.TrimSpace(entry.Title),
			Prompt:  entry.Prompt,
			Remark:  entry.Remark,
			Website: entry.Website,
			Tags:    entry.Tags,
			Weight:  entry.Weight,
		})
	}
	return prompts
}

// LoadCatalog reads, maps and validates a catalog in one step.
// An empty path loads the embedded default catalog.
func LoadCatalog(path string) (*catalog.Catalog, error) {
	config, err := NewLoader(path).Load()
	if err != nil {
		return nil, err
	}

	c, err := catalog.New(NewMapper().MapPrompts(config))
	if err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", NewLoader(path).Source(), err)
	}
	return c, nil
}
