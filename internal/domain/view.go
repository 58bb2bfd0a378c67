package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Category selects one of the tab views of the gallery.
type Category string

const (
	CategoryAll        Category = "all"
	CategoryCustom     Category = "custom"
	CategoryBookmarked Category = "bookmarked"
)

// ParseCategory resolves a view name (case-insensitive).
// An empty name selects the All view.
func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return CategoryAll, nil
	case CategoryAll, CategoryCustom, CategoryBookmarked:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
}

// ViewFor composes the result set of a tab view.
//
//   - All: the catalog, in catalog order.
//   - Bookmarked: catalog and custom prompts with a bookmarked annotation,
//     most recently bookmarked first. Equal timestamps keep catalog order,
//     then custom order.
//   - Custom: custom prompts, newest first.
func ViewFor(category Category, catalog, custom []*Prompt, annotations []Annotation) ([]*Prompt, error) {
	switch category {
	case CategoryAll:
		return catalog, nil
	case CategoryBookmarked:
		return bookmarkedView(catalog, custom, annotations), nil
	case CategoryCustom:
		return customView(custom), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, string(category))
	}
}

func bookmarkedView(catalog, custom []*Prompt, annotations []Annotation) []*Prompt {
	marked := make(map[int]time.Time, len(annotations))
	for _, a := range annotations {
		if a.Bookmarked {
			marked[a.PromptID] = a.BookmarkedAt
		}
	}

	result := make([]*Prompt, 0, len(marked))
	if len(marked) == 0 {
		return result
	}
	for _, group := range [][]*Prompt{catalog, custom} {
		for _, p := range group {
			if _, ok := marked[p.ID]; ok {
				result = append(result, p)
			}
		}
	}

	slices.SortStableFunc(result, func(a, b *Prompt) int {
		return marked[b.ID].Compare(marked[a.ID])
	})
	return result
}

func customView(custom []*Prompt) []*Prompt {
	result := slices.Clone(custom)
	if result == nil {
		result = []*Prompt{}
	}
	slices.SortStableFunc(result, func(a, b *Prompt) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return result
}
