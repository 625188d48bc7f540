// AngelaMos | 2026
// handler.go

package user

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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/profile", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.GetProfile)
		r.Put("/", h.UpdateProfile)
		r.Delete("/", h.DeleteProfile)
		r.Patch("/digest", h.ToggleDigestOptIn)
	})
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToProfileResponse(user))
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrAdminReserved) {
			core.JSONError(w, core.AdminReservedError())
			return
		}
		if errors.Is(err, core.ErrDuplicateKey) {
			core.Conflict(w, "email")
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToProfileResponse(user))
}

func (h *Handler) ToggleDigestOptIn(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	optIn, err := h.service.ToggleDigestOptIn(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	message := "daily word email turned off"
	if optIn {
		message = "daily word email turned on"
	}

	core.OK(w, DigestOptInResponse{
		DigestOptIn: optIn,
		Message:     message,
	})
}

func (h *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if err := h.service.DeleteProfile(r.Context(), userID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
