// File: internal/middleware/auth_test.go
package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeValidator struct {
	token  string
	userID uint
}

func (f *fakeValidator) Validate(ctx context.Context, token string) (uint, error) {
	if token == f.token {
		return f.userID, nil
	}
	return 0, errors.New("invalid token")
}

func protectedHandler(t *testing.T, wantUserID uint) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, wantUserID, userID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_BearerToken(t *testing.T) {
	mw := NewAuthMiddleware(&fakeValidator{token: "good-token", userID: 42})

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	mw(protectedHandler(t, 42)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_CookieFallback(t *testing.T) {
	mw := NewAuthMiddleware(&fakeValidator{token: "good-token", userID: 7})

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "good-token"})
	rec := httptest.NewRecorder()

	mw(protectedHandler(t, 7)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_HeaderWinsOverCookie(t *testing.T) {
	mw := NewAuthMiddleware(&fakeValidator{token: "header-token", userID: 1})

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "cookie-token"})
	rec := httptest.NewRecorder()

	mw(protectedHandler(t, 1)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	mw := NewAuthMiddleware(&fakeValidator{token: "good-token", userID: 1})

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()

	called := false
	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Authentication required","code":"UNAUTHORIZED"}`, rec.Body.String())
}

func TestAuthMiddleware_InvalidTokenClearsCookie(t *testing.T) {
	mw := NewAuthMiddleware(&fakeValidator{token: "good-token", userID: 1})

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "stale-token"})
	rec := httptest.NewRecorder()

	mw(protectedHandler(t, 0)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "auth_token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
