package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/promptdeck/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready   bool   `json:"ready"`
	Prompts int    `json:"prompts"`
	Source  string `json:"source,omitempty"`
}

// Readyz is ready once a catalog snapshot is installed.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ready := d.MemoryIndex.Current() != nil

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		if ready {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}

		_ = json.NewEncoder(w).Encode(readyzResponse{
			Ready:   ready,
			Prompts: d.MemoryIndex.Count(),
			Source:  d.MemoryIndex.Source(),
		})
	}
}
