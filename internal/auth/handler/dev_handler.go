package handler

import (
	"net/http"

	"aims/backend/internal/devotp"
	"aims/backend/internal/server/response"
)

// DevOTPHandler serves GET /dev/auth/otp. It exists only when dev OTP mode is
// enabled; config refuses that in production.
type DevOTPHandler struct {
	store devotp.Store
}

// NewDevOTP returns the dev OTP handler.
func NewDevOTP(store devotp.Store) *DevOTPHandler {
	return &DevOTPHandler{store: store}
}

type devOTPResponse struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// Get returns the pending plaintext code for the email query parameter.
func (h *DevOTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		response.WriteError(w, http.StatusBadRequest, "email query parameter is required")
		return
	}

	code, ok := h.store.Get(r.Context(), email)
	if !ok {
		response.WriteError(w, http.StatusNotFound, "no pending code for this email")
		return
	}

	response.WriteJSON(w, http.StatusOK, devOTPResponse{Email: email, OTP: code})
}
