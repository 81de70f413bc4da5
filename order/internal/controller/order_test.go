package controller

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	orderErrors "github.com/Alturino/storefront/order/internal/errors"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{err: orderErrors.ErrEmptyOrder, expected: http.StatusBadRequest},
		{err: fmt.Errorf("failed recording order with error=%w", orderErrors.ErrInsufficientBalance), expected: http.StatusUnprocessableEntity},
		{err: fmt.Errorf("failed pricing productId=x with error=%w", orderErrors.ErrUnknownProduct), expected: http.StatusUnprocessableEntity},
		{err: orderErrors.ErrOrderNotFound, expected: http.StatusNotFound},
		{err: orderErrors.ErrUserNotFound, expected: http.StatusNotFound},
		{err: errors.New("connection refused"), expected: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.expected, statusCode(tt.err))
		})
	}
}

func TestOrderRoutesRequireToken(t *testing.T) {
	router := mux.NewRouter()
	AttachOrderController(router, nil, func(next http.Handler) http.Handler {
		return next
	})

	tests := []struct {
		method string
		path   string
	}{
		{method: http.MethodGet, path: "/orders"},
		{method: http.MethodPost, path: "/orders/checkout"},
		{method: http.MethodGet, path: "/orders/" + "6b1e6f0c-7d0b-4e7f-9d1c-3a1f2b3c4d5e"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(tt.method, tt.path, strings.NewReader("{}")))
			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		})
	}
}
