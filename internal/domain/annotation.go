package domain

import "time"

// Annotation is the per-user state attached to a prompt id.
// It lives in the annotation store, never in the catalog.
type Annotation struct {
	PromptID     int       `json:"prompt_id"`
	Bookmarked   bool      `json:"bookmarked"`
	BookmarkedAt time.Time `json:"bookmarked_at,omitzero"`
}
