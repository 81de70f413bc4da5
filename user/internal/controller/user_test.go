package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userErrors "github.com/Alturino/storefront/user/internal/errors"
)

func passthrough(next http.Handler) http.Handler { return next }

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{err: userErrors.ErrWeakPassword, expected: http.StatusBadRequest},
		{err: userErrors.ErrEmailExist, expected: http.StatusConflict},
		{err: fmt.Errorf("failed login with error=%w", userErrors.ErrInvalidCredential), expected: http.StatusUnauthorized},
		{err: userErrors.ErrUserNotFound, expected: http.StatusNotFound},
		{err: userErrors.ErrAddressNotFound, expected: http.StatusNotFound},
		{err: errors.New("connection refused"), expected: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.expected, statusCode(tt.err))
		})
	}
}

func TestWriteErrorReturnsProviderMessage(t *testing.T) {
	err := fmt.Errorf("failed registering user with error=%w", userErrors.ErrWeakPassword)
	recorder := httptest.NewRecorder()

	writeError(recorder, httptest.NewRequest(http.MethodPost, "/users/register", nil), err)

	body := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, userErrors.ErrWeakPassword.Error(), body["message"])
}

func TestProtectedRoutes(t *testing.T) {
	deny := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	}
	router := mux.NewRouter()
	AttachUserController(router, nil, deny, false)

	tests := []struct {
		method   string
		path     string
		expected int
	}{
		{method: http.MethodPost, path: "/users/register", expected: http.StatusBadRequest},
		{method: http.MethodPost, path: "/users/login", expected: http.StatusBadRequest},
		{method: http.MethodPost, path: "/users/logout", expected: http.StatusUnauthorized},
		{method: http.MethodGet, path: "/users/me", expected: http.StatusUnauthorized},
		{method: http.MethodGet, path: "/users/me/wallet", expected: http.StatusUnauthorized},
		{method: http.MethodPost, path: "/users/me/addresses", expected: http.StatusUnauthorized},
		{method: http.MethodGet, path: "/users/6b1e6f0c-7d0b-4e7f-9d1c-3a1f2b3c4d5e", expected: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(tt.method, tt.path, strings.NewReader("{")))
			assert.Equal(t, tt.expected, recorder.Code)
		})
	}
}

func TestBadRequests(t *testing.T) {
	router := mux.NewRouter()
	AttachUserController(router, nil, passthrough, false)

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		expected int
	}{
		{
			name:     "given invalid email should reject register",
			method:   http.MethodPost,
			path:     "/users/register",
			body:     `{"email":"not-an-email","password":"secret123"}`,
			expected: http.StatusBadRequest,
		},
		{
			name:     "given missing password should reject login",
			method:   http.MethodPost,
			path:     "/users/login",
			body:     `{"email":"jane@example.com"}`,
			expected: http.StatusBadRequest,
		},
		{
			name:     "given malformed userId should return bad request",
			method:   http.MethodGet,
			path:     "/users/not-a-uuid",
			expected: http.StatusBadRequest,
		},
		{
			name:     "given no token should reject profile",
			method:   http.MethodGet,
			path:     "/users/me",
			expected: http.StatusUnauthorized,
		},
		{
			name:     "given no token should reject top up",
			method:   http.MethodPost,
			path:     "/users/me/wallet/topup",
			body:     `{"amount":"10"}`,
			expected: http.StatusUnauthorized,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))
			assert.Equal(t, tt.expected, recorder.Code)
		})
	}
}
