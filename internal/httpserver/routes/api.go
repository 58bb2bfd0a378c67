package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/promptdeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/promptdeck/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/promptdeck/internal/httpserver/mw"
)

func init() { Register("api", registerAPI) }

func registerAPI(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:      d.RateLimitBurst,
		PerMinute:  d.RateLimitPerMin,
		MaxClients: 10000,
		TrustProxy: d.TrustProxy,
		Logger:     d.Logger,
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(mw.CORS(d.CORSOrigins))

		r.Get("/prompts", handlers.ListPrompts(d))
		r.Get("/prompts/{id}", handlers.GetPrompt(d))
		r.Get("/tags", handlers.Tags(d))

		// Mutations
		r.Group(func(r chi.Router) {
			r.Use(limit)
			r.Post("/prompts/{id}/copy", handlers.CopyPrompt(d))
			r.Post("/prompts/{id}/use", handlers.UsePrompt(d))
			r.Put("/prompts/{id}/bookmark", handlers.Bookmark(d))
			r.Delete("/prompts/{id}/bookmark", handlers.Unbookmark(d))
			r.Post("/custom", handlers.CreateCustom(d))
			r.Delete("/custom/{id}", handlers.DeleteCustom(d))
		})
	})
}
