package domain

import (
	"cmp"
	"slices"
)

// TagCount is a distinct tag with the number of prompts carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TagCounts lists distinct tags, most used first, then alphabetically.
// A tag repeated inside one prompt is counted once for that prompt.
func TagCounts(prompts []*Prompt) []TagCount {
	counts := make(map[string]int)
	for _, p := range prompts {
		seen := make(map[string]bool, len(p.Tags))
		for _, t := range p.Tags {
			t = NormalizeTag(t)
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			counts[t]++
		}
	}

	result := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		result = append(result, TagCount{Tag: tag, Count: n})
	}
	slices.SortFunc(result, func(a, b TagCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Tag, b.Tag)
	})
	return result
}
