package handlers

import (
	"GophMart/internal/config"
	"GophMart/internal/service"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// UserHandler - регистрация и вход.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger, Config: cfg}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *UserHandler) decode(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("invalid credentials body", "error", err)
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	return req, true
}

// Signup регистрирует пользователя
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	u, err := h.UserService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.Logger, "Signup", err)
		return
	}
	h.Logger.Infow("user registered", "user_id", u.ID)
	writeJSON(w, http.StatusOK, userResponse{Email: u.Email, IsActive: u.IsActive})
}

// Login выдаёт bearer token
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	token, err := h.UserService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.Logger, "Login", err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}
