package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/promptdeck/internal/catalog"
	"github.com/MrSnakeDoc/promptdeck/internal/domain"
	"github.com/MrSnakeDoc/promptdeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/promptdeck/internal/logger"
)

const maxBodyBytes = 64 << 10

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// codedError carries the HTTP status for request-level failures
type codedError struct {
	err  error
	code int
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

func badRequest(format string, args ...any) error {
	return &codedError{err: fmt.Errorf(format, args...), code: http.StatusBadRequest}
}

// apiHandler adapts a handler returning (status, body, error) and maps
// domain errors onto HTTP statuses.
func apiHandler(d deps.Deps, h func(r *http.Request) (int, any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, body, err := h(r)
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		if body == nil {
			w.WriteHeader(status)
			return
		}
		writeJSON(w, status, body)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, r *http.Request, d deps.Deps, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		d.Logger.Error("request failed",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Error(err))
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{
		Error:     msg,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func statusFor(err error) int {
	var cerr *codedError
	switch {
	case errors.As(err, &cerr):
		return cerr.code
	case errors.Is(err, domain.ErrPromptNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidCategory), errors.Is(err, domain.ErrInvalidPrompt):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrNotLoaded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func idParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, badRequest("invalid prompt id %q", raw)
	}
	return id, nil
}

// decodeBody parses a JSON body of at most maxBodyBytes, rejecting
// unknown fields.
func decodeBody[T any](r *http.Request) (T, error) {
	var data T
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		return data, badRequest("unable to parse request body: %v", err)
	}
	return data, nil
}
