package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/promptdeck/internal/catalog"
	"github.com/MrSnakeDoc/promptdeck/internal/clipboard"
	"github.com/MrSnakeDoc/promptdeck/internal/domain"
	"github.com/MrSnakeDoc/promptdeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/promptdeck/internal/logger"
)

type promptView struct {
	*domain.Prompt
	Bookmarked bool `json:"bookmarked"`
}

type listResponse struct {
	View    domain.Category `json:"view"`
	Count   int             `json:"count"`
	Prompts []promptView    `json:"prompts"`
}

type textResponse struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// ListPrompts serves GET /api/prompts?view=&q=&tag=&sort=weight
func ListPrompts(d deps.Deps) http.HandlerFunc {
	return apiHandler(d, func(r *http.Request) (int, any, error) {
		params := r.URL.Query()

		view, err := domain.ParseCategory(params.Get("view"))
		if err != nil {
			return 0, nil, err
		}

		sort := params.Get("sort")
		if sort != "" && sort != "weight" {
			return 0, nil, badRequest("unknown sort %q", sort)
		}

		ctx := r.Context()
		prompts, err := d.Service.List(ctx, catalog.Query{
			View:         view,
			Text:         params.Get("q"),
			Tags:         params["tag"],
			SortByWeight: sort == "weight",
		})
		if err != nil {
			return 0, nil, err
		}

		marked, err := d.Service.BookmarkedIDs(ctx)
		if err != nil {
			return 0, nil, err
		}

		views := make([]promptView, 0, len(prompts))
		for _, p := range prompts {
			views = append(views, promptView{Prompt: p, Bookmarked: marked[p.ID]})
		}
		return http.StatusOK, listResponse{View: view, Count: len(views), Prompts: views}, nil
	})
}

// GetPrompt serves GET /api/prompts/{id}
func GetPrompt(d deps.Deps) http.HandlerFunc {
	return apiHandler(d, func(r *http.Request) (int, any, error) {
		id, err := idParam(r)
		if err != nil {
			return 0, nil, err
		}
		p, err := d.Service.Get(r.Context(), id)
		if err != nil {
			return 0, nil, err
		}
		marked, err := d.Service.IsBookmarked(r.Context(), id)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, promptView{Prompt: p, Bookmarked: marked}, nil
	})
}

// CopyPrompt serves POST /api/prompts/{id}/copy. The server has no
// clipboard of its own: the text is returned for the browser to place.
func CopyPrompt(d deps.Deps) http.HandlerFunc {
	return apiHandler(d, func(r *http.Request) (int, any, error) {
		id, err := idParam(r)
		if err != nil {
			return 0, nil, err
		}
		buf := &clipboard.Buffer{}
		text, err := d.Service.CopyTo(r.Context(), id, buf)
		if err != nil {
			return 0, nil, err
		}
		d.Logger.Debug("prompt copied", logger.Int("id", id))
		return http.StatusOK, textResponse{ID: id, Text: text}, nil
	})
}

// UsePrompt serves POST /api/prompts/{id}/use
func UsePrompt(d deps.Deps) http.HandlerFunc {
	return apiHandler(d, func(r *http.Request) (int, any, error) {
		id, err := idParam(r)
		if err != nil {
			return 0, nil, err
		}
		text, err := d.Service.Use(r.Context(), id)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, textResponse{ID: id, Text: text}, nil
	})
}

// Bookmark serves PUT /api/prompts/{id}/bookmark
func Bookmark(d deps.Deps) http.HandlerFunc {
	return apiHandler(d, func(r *http.Request) (int, any, error) {
		id, err := idParam(r)
		if err != nil {
			return 0, nil, err
		}
		if err := d.Service.Bookmark(r.Context(), id); err != nil {
			return 0, nil, err
		}
		return http.StatusNoContent, nil, nil
	})
}

// Unbookmark serves DELETE /api/prompts/{id}/bookmark
func Unbookmark(d deps.Deps) http.HandlerFunc {
	return apiHandler(d, func(r *http.Request) (int, any, error) {
		id, err := idParam(r)
		if err != nil {
			return 0, nil, err
		}
		if err := d.Service.Unbookmark(r.Context(), id); err != nil {
			return 0, nil, err
		}
		return http.StatusNoContent, nil, nil
	})
}
