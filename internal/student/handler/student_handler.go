// Package handler exposes student record management over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"aims/backend/internal/platform/rbac"
	"aims/backend/internal/server/middleware"
	"aims/backend/internal/server/response"
	"aims/backend/internal/student/domain"
	"aims/backend/internal/student/service"
)

// Handler serves the /api/admin/students endpoints.
type Handler struct {
	students *service.StudentService
	validate *validator.Validate
}

// New returns the student handler.
func New(students *service.StudentService) *Handler {
	return &Handler{students: students, validate: validator.New()}
}

type createStudentRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Program string `json:"program" validate:"required"`
}

type studentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Program   string    `json:"program"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(s *domain.Student) studentResponse {
	return studentResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Program:   s.Program,
		CreatedAt: s.CreatedAt,
	}
}

// Create handles POST /api/admin/students.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createStudentRequest
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

	st, err := h.students.CreateStudent(r.Context(), middleware.GetCaller(r.Context()), req.Name, req.Email, req.Program)
	switch {
	case err == nil:
		response.WriteJSON(w, http.StatusCreated, toResponse(st))
	case errors.Is(err, rbac.ErrForbidden):
		response.WriteError(w, http.StatusForbidden, "forbidden")
	default:
		slog.ErrorContext(r.Context(), "create student", "error", err)
		response.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

// List handles GET /api/admin/students.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	students, err := h.students.ListStudents(r.Context(), middleware.GetCaller(r.Context()))
	switch {
	case err == nil:
		out := make([]studentResponse, 0, len(students))
		for _, s := range students {
			out = append(out, toResponse(s))
		}
		response.WriteJSON(w, http.StatusOK, out)
	case errors.Is(err, rbac.ErrForbidden):
		response.WriteError(w, http.StatusForbidden, "forbidden")
	default:
		slog.ErrorContext(r.Context(), "list students", "error", err)
		response.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
