package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/promptdeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/promptdeck/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/promptdeck/internal/httpserver/mw"
)

func init() { Register("infra", registerInfra) }

func registerInfra(r chi.Router, d deps.Deps) {
	admin := r.With(mw.Admin(d.AllowedCIDRS, d.AllowedHosts, d.TrustProxy, d.Logger))
	admin.Get("/infra", handlers.Infra(d))
	admin.Method("GET", "/metrics", handlers.Metrics(d))
}
