package api

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/dealdash/dealdash/internal/auth"
)

type credentialsRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	UserID      string `json:"userId"`
	Email       string `json:"email"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := h.decodeValid(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	u, err := h.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		// Covers validation failures and storage.ErrDuplicateEmail alike.
		badRequest(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"userId":  u.ID,
		"email":   u.Email,
		"message": "User registered successfully",
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := h.decodeValid(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	u, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      u.ID,
		Email:       u.Email,
	})
}

// passwordResetRequest always answers the same message so it cannot be used
// to probe which emails are registered. The token is logged for development;
// a mail sender would pick it up in production.
func (h *Handler) passwordResetRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required"`
	}
	if err := h.decodeValid(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	token, err := h.auth.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		badRequest(w, err)
		return
	}
	if token != "" {
		h.logger.Info("password reset token issued", zap.String("email", req.Email))
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "If the email exists, a password reset link has been sent",
	})
}

func (h *Handler) passwordResetConfirm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"newPassword" validate:"required"`
	}
	if err := h.decodeValid(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	err := h.auth.ConfirmPasswordReset(r.Context(), req.Token, req.NewPassword)
	if err != nil {
		badRequest(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password has been reset successfully"})
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.auth.User(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
