package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/promptdeck/internal/httpserver/deps"
)

type componentStatus struct {
	OK            bool   `json:"ok"`
	PromptsLoaded *int   `json:"prompts_loaded,omitempty"`
	Reloads       *int   `json:"reloads,omitempty"`
	LastReload    string `json:"last_reload,omitempty"`
	Source        string `json:"source,omitempty"`
	Mode          string `json:"mode,omitempty"`
	Impact        string `json:"impact,omitempty"`
	Error         string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of the catalog and of the annotation store.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		count := d.MemoryIndex.Count()
		reloads := d.MemoryIndex.Reloads()
		lastReload := d.MemoryIndex.GetLastReload()
		lastReloadStr := "never"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
		}

		components := map[string]componentStatus{
			"catalog": {
				OK:            d.MemoryIndex.Current() != nil,
				PromptsLoaded: &count,
				Reloads:       &reloads,
				LastReload:    lastReloadStr,
				Source:        d.MemoryIndex.Source(),
			},
			"store": checkStore(r.Context(), d),
		}

		response := infraResponse{
			Status:     determineStatus(components),
			Components: components,
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

func determineStatus(components map[string]componentStatus) string {
	if c, exists := components["catalog"]; exists && !c.OK {
		return "critical" // nothing to serve
	}
	if s, exists := components["store"]; exists && !s.OK {
		return "degraded" // browsing works, bookmarks and custom prompts fail
	}
	return "operational"
}

func checkStore(ctx context.Context, d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     true,
			Mode:   d.StoreBackend,
			Impact: "annotations-not-persisted",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   d.StoreBackend,
			Impact: "annotations-unavailable",
			Error:  err.Error(),
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   d.StoreBackend,
		Impact: "annotations-persisted",
	}
}
