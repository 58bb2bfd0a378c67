package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/promptdeck/internal/catalog"
	"github.com/MrSnakeDoc/promptdeck/internal/domain"
	"github.com/MrSnakeDoc/promptdeck/internal/httpserver/deps"
)

// CreateCustom serves POST /api/custom
func CreateCustom(d deps.Deps) http.HandlerFunc {
	return apiHandler(d, func(r *http.Request) (int, any, error) {
		in, err := decodeBody[catalog.CustomInput](r)
		if err != nil {
			return 0, nil, err
		}
		p, err := d.Service.CreateCustom(r.Context(), in)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusCreated, promptView{Prompt: p}, nil
	})
}

// DeleteCustom serves DELETE /api/custom/{id}
func DeleteCustom(d deps.Deps) http.HandlerFunc {
	return apiHandler(d, func(r *http.Request) (int, any, error) {
		id, err := idParam(r)
		if err != nil {
			return 0, nil, err
		}
		if err := d.Service.DeleteCustom(r.Context(), id); err != nil {
			return 0, nil, err
		}
		return http.StatusNoContent, nil, nil
	})
}

type tagsResponse struct {
	Tags []domain.TagCount `json:"tags"`
}

// Tags serves GET /api/tags
func Tags(d deps.Deps) http.HandlerFunc {
	return apiHandler(d, func(r *http.Request) (int, any, error) {
		tags, err := d.Service.Tags(r.Context())
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, tagsResponse{Tags: tags}, nil
	})
}
