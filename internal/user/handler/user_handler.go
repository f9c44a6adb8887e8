// Package handler exposes admin user management over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/julienschmidt/httprouter"

	"aims/backend/internal/platform/rbac"
	"aims/backend/internal/server/middleware"
	"aims/backend/internal/server/response"
	"aims/backend/internal/user/domain"
	"aims/backend/internal/user/service"
)

// Handler serves the /api/admin/users endpoints.
type Handler struct {
	users    *service.UserService
	validate *validator.Validate
}

// New returns the user admin handler.
func New(users *service.UserService) *Handler {
	return &Handler{users: users, validate: validator.New()}
}

type createUserRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      string(u.Role),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

// Create handles POST /api/admin/users.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			response.WriteError(w, http.StatusBadRequest, response.ValidationMessage(verrs))
			return
		}
		response.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.users.CreateUser(r.Context(), middleware.GetCaller(r.Context()), req.Email, req.Role)
	switch {
	case err == nil:
		response.WriteJSON(w, http.StatusCreated, toResponse(u))
	case errors.Is(err, rbac.ErrForbidden):
		response.WriteError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrAlreadyExists):
		response.WriteError(w, http.StatusConflict, "a user with this email already exists")
	default:
		// Unknown role or validation failure surfaces as 400; anything else
		// is unexpected.
		if _, perr := domain.ParseRole(req.Role); perr != nil {
			response.WriteError(w, http.StatusBadRequest, perr.Error())
			return
		}
		slog.ErrorContext(r.Context(), "create user", "error", err)
		response.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

// List handles GET /api/admin/users.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context(), middleware.GetCaller(r.Context()))
	switch {
	case err == nil:
		out := make([]userResponse, 0, len(users))
		for _, u := range users {
			out = append(out, toResponse(u))
		}
		response.WriteJSON(w, http.StatusOK, out)
	case errors.Is(err, rbac.ErrForbidden):
		response.WriteError(w, http.StatusForbidden, "forbidden")
	default:
		slog.ErrorContext(r.Context(), "list users", "error", err)
		response.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

// Deactivate handles DELETE /api/admin/users/:id. Soft delete: the identity is
// marked inactive, never removed.
func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")

	err := h.users.DeactivateUser(r.Context(), middleware.GetCaller(r.Context()), id)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, rbac.ErrForbidden):
		response.WriteError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrNotFound):
		response.WriteError(w, http.StatusNotFound, "user not found")
	default:
		slog.ErrorContext(r.Context(), "deactivate user", "error", err)
		response.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
