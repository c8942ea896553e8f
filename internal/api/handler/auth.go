package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aweston/charkeep/internal/api/middleware"
	"github.com/aweston/charkeep/internal/api/request"
	"github.com/aweston/charkeep/internal/api/response"
	"github.com/aweston/charkeep/internal/services/auth"
)

// AuthHandler handles login, registration and token-protected endpoints
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles POST /login/
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	pair, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TokenPairFromService(pair))
}

// Register handles POST /register/
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	pair, err := h.authService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TokenPairFromService(pair))
}

// Protected handles GET /protected/
func (h *AuthHandler) Protected(w http.ResponseWriter, r *http.Request) {
	claims := middleware.MustGetClaims(r.Context())
	response.JSON(w, http.StatusOK, response.Message{
		Message: fmt.Sprintf("Hello %s, you are authenticated!", claims.Username),
	})
}

// Me handles GET /user/
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.MustGetClaims(r.Context())
	response.JSON(w, http.StatusOK, response.CurrentUserFromClaims(claims))
}
