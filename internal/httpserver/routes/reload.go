package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/promptdeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/promptdeck/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/promptdeck/internal/httpserver/mw"
)

func init() { Register("reload", registerReload) }

func registerReload(r chi.Router, d deps.Deps) {
	r.With(mw.Admin(d.AllowedCIDRS, d.AllowedHosts, d.TrustProxy, d.Logger)).Post("/reload", handlers.Reload(d))
}
