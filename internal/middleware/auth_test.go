package middleware

import (
	"GophMart/internal/model"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeResolver принимает один токен
type fakeResolver struct {
	token string
	user  *model.User
}

func (f fakeResolver) Resolve(_ context.Context, token string) (*model.User, error) {
	if token == "db-down" {
		return nil, fmt.Errorf("%w: %w", model.ErrStorageFault, errors.New("connection refused"))
	}
	if token != f.token {
		return nil, model.ErrUnauthenticated
	}
	return f.user, nil
}

// Тест: валидный bearer - пользователь попадает в контекст
func TestWithAuth_ValidBearerSetsUser(t *testing.T) {
	res := fakeResolver{token: "good", user: &model.User{ID: 77, Email: "a@x.com"}}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, ok := GetUserFromContext(r.Context()); ok && u.ID == 77 {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rr := httptest.NewRecorder()
	WithAuth(res)(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", rr.Code)
	}
}

// Тест: отсутствие заголовка - пользователь не устанавливается
func TestWithAuth_NoHeaderLeavesAnonymous(t *testing.T) {
	h := WithAuth(fakeResolver{token: "good"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserFromContext(r.Context()); ok {
			t.Fatalf("user must not be set without token")
		}
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

// Тест: невалидный токен или чужая схема - пользователь не устанавливается
func TestWithAuth_InvalidToken(t *testing.T) {
	for _, header := range []string{"Bearer bad", "Basic good", "Bearer", "good"} {
		h := WithAuth(fakeResolver{token: "good", user: &model.User{ID: 1}})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetUserFromContext(r.Context()); ok {
				t.Fatalf("user must not be set for header %q", header)
			}
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
	}
}

// Тест: сбой хранилища при поиске пользователя - 500, хендлер не вызывается
func TestWithAuth_StorageFaultIsServerError(t *testing.T) {
	h := WithAuth(fakeResolver{token: "good"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run when the user lookup fails")
	}))

	req := httptest.NewRequest(http.MethodGet, "/user/items", nil)
	req.Header.Set("Authorization", "Bearer db-down")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("expected JSON body, got %q", rr.Header().Get("Content-Type"))
	}
}

func TestBearerToken_CaseInsensitiveScheme(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer  tok ")
	tok, ok := BearerToken(req)
	if !ok || tok != "tok" {
		t.Fatalf("unexpected token %q ok=%v", tok, ok)
	}
}
