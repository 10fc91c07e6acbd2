package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/kashmiricraft/treasures-api/internal/http/middleware"
	"github.com/kashmiricraft/treasures-api/internal/http/response"
	"github.com/kashmiricraft/treasures-api/internal/observability"
	"github.com/kashmiricraft/treasures-api/internal/service"
)

type AuthHandler struct {
	auth service.AuthServiceInterface
}

func NewAuthHandler(auth service.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := "success"
	defer func() {
		observability.RecordAuthRequestDuration(r.Context(), "login", status, time.Since(start))
	}()

	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		status = "bad_request"
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}

	result, err := h.auth.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			status = "unauthorized"
			observability.Audit(r, "auth.login.failed", "username", body.Username)
			response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "incorrect username or password", nil)
			return
		}
		status = "error"
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to log in", nil)
		return
	}

	observability.Audit(r, "auth.login.success", "username", body.Username)
	response.JSON(w, r, http.StatusOK, map[string]string{
		"access_token": result.AccessToken,
		"token_type":   result.TokenType,
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := "success"
	defer func() {
		observability.RecordAuthRequestDuration(r.Context(), "me", status, time.Since(start))
	}()

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		status = "unauthorized"
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing access token", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]string{"username": claims.Subject})
}
