package domain

import (
	"cmp"
	"slices"
	"strings"
)

// NormalizeQuery trims and lowercases free-text input.
func NormalizeQuery(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// NormalizeTag lowercases and trims a tag label.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// Search returns the prompts whose title, prompt text or remark contains
// query as a case-insensitive substring. Website and tags are not searched.
// An empty query returns the input unchanged. Input order is preserved.
func Search(prompts []*Prompt, query string) []*Prompt {
	q := NormalizeQuery(query)
	if q == "" {
		return prompts
	}

	result := make([]*Prompt, 0, len(prompts))
	for _, p := range prompts {
		if matchesText(p, q) {
			result = append(result, p)
		}
	}
	return result
}

// matchesText expects q to be normalized already
func matchesText(p *Prompt, q string) bool {
	if strings.Contains(strings.ToLower(p.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Prompt), q) {
		return true
	}
	return p.Remark != nil && strings.Contains(strings.ToLower(*p.Remark), q)
}

// FilterByTag keeps the prompts carrying tag (case-insensitive exact match).
// An empty tag is no filter. Input order is preserved.
func FilterByTag(prompts []*Prompt, tag string) []*Prompt {
	tag = NormalizeTag(tag)
	if tag == "" {
		return prompts
	}

	result := make([]*Prompt, 0, len(prompts))
	for _, p := range prompts {
		if p.HasTag(tag) {
			result = append(result, p)
		}
	}
	return result
}

// FilterByTags applies FilterByTag once per tag: a prompt must carry
// every tag to be kept.
func FilterByTags(prompts []*Prompt, tags ...string) []*Prompt {
	for _, tag := range tags {
		prompts = FilterByTag(prompts, tag)
	}
	return prompts
}

// SortByWeightDescending returns a new slice ordered by weight, highest
// first. Equal weights keep their input order.
func SortByWeightDescending(prompts []*Prompt) []*Prompt {
	sorted := slices.Clone(prompts)
	slices.SortStableFunc(sorted, func(a, b *Prompt) int {
		return cmp.Compare(b.Weight, a.Weight)
	})
	return sorted
}
