package middleware

import (
	"GophMart/internal/model"
	"context"
	"errors"
	"net/http"
	"strings"
)

type ctxKey int

const userKey ctxKey = iota

// Resolver превращает bearer-токен в пользователя.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*model.User, error)
}

// WithAuth читает Authorization: Bearer <token> и кладёт пользователя в контекст.
// Без токена или с плохим токеном запрос идёт дальше анонимно: 401 решает хендлер.
// Сбой при поиске пользователя - сразу 500.
func WithAuth(resolver Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			u, err := resolver.Resolve(r.Context(), token)
			if errors.Is(err, model.ErrUnauthenticated) {
				sugar.Debugw("auth: token rejected", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if err != nil {
				sugar.Errorw("auth: resolve user failed", "path", r.URL.Path, "error", err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"detail":"internal server error"}`))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// BearerToken достаёт токен из заголовка Authorization.
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// WithUser кладёт пользователя в контекст.
func WithUser(ctx context.Context, u *model.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// GetUserFromContext возвращает аутентифицированного пользователя запроса.
func GetUserFromContext(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(userKey).(*model.User)
	return u, ok && u != nil
}
