package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrSnakeDoc/promptdeck/internal/httpserver/deps"
)

// Metrics exposes the prometheus registry. It answers 404 when metrics
// are disabled.
func Metrics(d deps.Deps) http.Handler {
	if d.Metrics == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(d.Metrics.Registry(), promhttp.HandlerOpts{})
}
