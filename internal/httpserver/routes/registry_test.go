package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/promptdeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/promptdeck/internal/logger"
)

func TestRegistrySorted(t *testing.T) {
	want := []string{"api", "healthz", "infra", "readyz", "reload"}
	got := sorted()
	if len(got) != len(want) {
		t.Fatalf("got %d groups, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].name != want[i] {
			t.Fatalf("group %d = %q, want %q", i, got[i].name, want[i])
		}
	}
}

func TestRegisterAllAppliesMiddlewares(t *testing.T) {
	saved := registry
	t.Cleanup(func() { registry = saved })
	registry = nil

	tag := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Tagged", "1")
			next.ServeHTTP(w, r)
		})
	}
	Register("plain", func(r chi.Router, _ deps.Deps) {
		r.Get("/plain", func(w http.ResponseWriter, _ *http.Request) {})
	})
	Register("tagged", func(r chi.Router, _ deps.Deps) {
		r.Get("/tagged", func(w http.ResponseWriter, _ *http.Request) {})
	}, tag)

	r := chi.NewRouter()
	RegisterAll(r, deps.Deps{Logger: logger.NewNop()})

	for path, tagged := range map[string]bool{"/plain": false, "/tagged": true} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", path, rec.Code)
		}
		if got := rec.Header().Get("X-Tagged") == "1"; got != tagged {
			t.Fatalf("%s: tagged = %v, want %v", path, got, tagged)
		}
	}
}
