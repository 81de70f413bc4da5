package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/internal/common"
	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	"github.com/Alturino/storefront/product/pkg/catalog"
)

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusCode(fmt.Errorf("wrapped: %w", catalog.ErrProductNotFound)))
	assert.Equal(t, http.StatusUnauthorized, statusCode(commonErrors.ErrUnauthenticated))
	assert.Equal(t, http.StatusInternalServerError, statusCode(errors.New("boom")))
}

func TestVisitor(t *testing.T) {
	sid := uuid.NewString()
	r := httptest.NewRequest(http.MethodGet, "/wishlists", nil)
	r = r.WithContext(common.AttachSessionID(r.Context(), sid))

	v := visitor(r)
	assert.Equal(t, sid, v.SessionID)
	assert.False(t, v.SignedIn)

	userId := uuid.New()
	raw, err := common.CreateToken("secret", userId, time.Now())
	require.NoError(t, err)
	token, err := common.VerifyToken(context.Background(), "secret", raw)
	require.NoError(t, err)

	v = visitor(r.WithContext(common.AttachJwtToken(r.Context(), token)))
	assert.True(t, v.SignedIn)
	assert.Equal(t, userId, v.UserID)
}

func TestBadRequests(t *testing.T) {
	router := mux.NewRouter()
	AttachWishlistController(router, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{name: "given malformed body should return bad request", method: http.MethodPost, path: "/wishlists/items", body: "{"},
		{name: "given missing productId should return bad request", method: http.MethodPost, path: "/wishlists/items", body: "{}"},
		{name: "given malformed path id on delete should return bad request", method: http.MethodDelete, path: "/wishlists/items/abc"},
		{name: "given malformed path id on toggle should return bad request", method: http.MethodPost, path: "/wishlists/items/abc/toggle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}
