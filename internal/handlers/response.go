package handlers

import (
	"GophMart/internal/middleware"
	"GophMart/internal/model"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

func writeUnauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeDetail(w, http.StatusUnauthorized, detail)
}

// writeError переводит ошибку домена в HTTP-статус.
func writeError(w http.ResponseWriter, logger *zap.SugaredLogger, op string, err error) {
	switch {
	case errors.Is(err, model.ErrUnauthenticated):
		writeUnauthorized(w, "Could not validate credentials")
	case errors.Is(err, model.ErrInvalidCredentials):
		// 400, а не 401: ошибка входа, а не отсутствие сессии
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeDetail(w, http.StatusBadRequest, "Incorrect email or password")
	case errors.Is(err, model.ErrForbidden):
		writeDetail(w, http.StatusForbidden, "You do not have permission to access this resource")
	case errors.Is(err, model.ErrNotFound):
		writeDetail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrInvalidInput):
		writeDetail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrEmailTaken):
		writeDetail(w, http.StatusBadRequest, "Email already registered")
	default:
		logger.Errorw(op+": internal error", "error", err)
		writeDetail(w, http.StatusInternalServerError, "internal error")
	}
}

// requireUser возвращает пользователя запроса или пишет 401.
func requireUser(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	u, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Not authenticated")
		return nil, false
	}
	return u, true
}
