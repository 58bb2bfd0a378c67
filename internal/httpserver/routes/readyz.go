package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/promptdeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/promptdeck/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/promptdeck/internal/httpserver/mw"
)

func init() { Register("readyz", registerReadyz) }

func registerReadyz(r chi.Router, d deps.Deps) {
	r.With(mw.Admin(d.AllowedCIDRS, nil, d.TrustProxy, d.Logger)).Get("/readyz", handlers.Readyz(d))
}
