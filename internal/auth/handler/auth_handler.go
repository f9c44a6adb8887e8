// Package handler exposes the email-OTP login flow over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"aims/backend/internal/auth/service"
	"aims/backend/internal/server/response"
)

// Handler serves the login endpoints.
type Handler struct {
	otp      *service.OTPService
	validate *validator.Validate
}

// New returns the auth handler.
func New(otp *service.OTPService) *Handler {
	return &Handler{otp: otp, validate: validator.New()}
}

type sendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type verifyOTPResponse struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SendOTP handles POST /api/auth/login/send-otp.
func (h *Handler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req sendOTPRequest
	if !h.decode(w, r, &req) {
		return
	}

	err := h.otp.SendChallenge(r.Context(), req.Email)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, service.ErrUnknownSubject):
		response.WriteError(w, http.StatusNotFound, "no account for this email")
	case errors.Is(err, service.ErrDeliveryFailed):
		response.WriteError(w, http.StatusBadGateway, "could not deliver the code")
	default:
		slog.ErrorContext(r.Context(), "send otp", "error", err)
		response.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

// VerifyOTP handles POST /api/auth/login/verify-otp.
func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if !h.decode(w, r, &req) {
		return
	}

	cred, err := h.otp.VerifyChallenge(r.Context(), req.Email, req.OTP)
	switch {
	case err == nil:
		response.WriteJSON(w, http.StatusOK, verifyOTPResponse{
			Token:     cred.Token,
			Role:      cred.Role,
			ExpiresAt: cred.ExpiresAt,
		})
	case errors.Is(err, service.ErrNoPendingChallenge):
		response.WriteError(w, http.StatusUnauthorized, "no pending code for this email")
	case errors.Is(err, service.ErrChallengeExpired):
		response.WriteError(w, http.StatusUnauthorized, "code expired, request a new one")
	case errors.Is(err, service.ErrInvalidChallenge):
		response.WriteError(w, http.StatusUnauthorized, "invalid code")
	case errors.Is(err, service.ErrTooManyAttempts):
		response.WriteError(w, http.StatusTooManyRequests, "too many attempts, request a new code")
	case errors.Is(err, service.ErrUnknownSubject):
		response.WriteError(w, http.StatusNotFound, "no account for this email")
	default:
		slog.ErrorContext(r.Context(), "verify otp", "error", err)
		response.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.WriteError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			response.WriteError(w, http.StatusBadRequest, response.ValidationMessage(verrs))
		} else {
			response.WriteError(w, http.StatusBadRequest, "invalid request body")
		}
		return false
	}
	return true
}
