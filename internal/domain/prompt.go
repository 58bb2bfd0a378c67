package domain

import (
	"slices"
	"time"
)

// CustomIDBase is the first id handed out to user-authored prompts.
// Catalog ids must stay below it so both id spaces never collide.
const CustomIDBase = 1_000_000

// Prompt represents a reusable prompt template.
//
// Catalog prompts are immutable once loaded. Custom prompts share the
// same shape and are owned by the annotation store.
//
// A Prompt is uniquely identified by its ID.
type Prompt struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier.
	ID int `json:"id"`

	// ─────────────────────────────
	// Content
	// ─────────────────────────────

	// Title is the display name. Not unique.
	// Example: English translator
	Title string `json:"title"`

	// Prompt is the literal template text sent to the chat input.
	// It is never trimmed or rewritten.
	Prompt string `json:"prompt"`

	// Remark explains what the prompt is for (optional).
	Remark *string `json:"remark"`

	// Website is an attribution URL (optional, not validated).
	Website *string `json:"website"`

	// Tags are lowercase category labels.
	// Example: ["contribute", "write"]
	Tags []string `json:"tags"`

	// ─────────────────────────────
	// Ordering
	// ─────────────────────────────

	// Weight is a static popularity score set at authoring time.
	Weight int `json:"weight"`

	// ─────────────────────────────
	// Provenance
	// ─────────────────────────────

	// Custom marks a user-authored prompt.
	Custom bool `json:"custom"`

	// CreatedAt is set for custom prompts only.
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// Clone returns a deep copy of p.
func (p *Prompt) Clone() *Prompt {
	cp := *p
	cp.Tags = slices.Clone(p.Tags)
	if p.Remark != nil {
		r := *p.Remark
		cp.Remark = &r
	}
	if p.Website != nil {
		w := *p.Website
		cp.Website = &w
	}
	return &cp
}

// HasTag reports whether the prompt carries tag (case-insensitive).
func (p *Prompt) HasTag(tag string) bool {
	tag = NormalizeTag(tag)
	for _, t := range p.Tags {
		if NormalizeTag(t) == tag {
			return true
		}
	}
	return false
}
