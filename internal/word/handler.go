// AngelaMos | 2026
// handler.go

package word

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/lexisarthi/api/internal/core"
	"github.com/lexisarthi/api/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the catalog. Reads need a valid token; writes are
// admin-only.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/words", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Get("/search", h.Search)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Post("/", h.Create)
			r.Put("/{word}", h.Update)
			r.Delete("/{word}", h.Delete)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	word, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.Conflict(w, "word")
			return
		}
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "word is required")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToWordResponse(word))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	words, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, WordListResponse{Words: ToWordResponseList(words)})
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("word")

	word, err := h.service.Search(r.Context(), query)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "word query parameter is required")
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "word")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToWordResponse(word))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	text := chi.URLParam(r, "word")

	var req UpdateWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	word, err := h.service.Update(r.Context(), text, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "word")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToWordResponse(word))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	text := chi.URLParam(r, "word")

	if err := h.service.Delete(r.Context(), text); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "word")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
