package controller

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	productErrors "github.com/Alturino/storefront/product/internal/errors"
)

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusCode(fmt.Errorf("failed finding product with error=%w", productErrors.ErrProductNotFound)))
	assert.Equal(t, http.StatusInternalServerError, statusCode(fmt.Errorf("connection reset")))
}

func TestBadQueries(t *testing.T) {
	router := mux.NewRouter()
	AttachProductController(router, nil)

	tests := []struct {
		name string
		path string
	}{
		{name: "given non numeric limit should return bad request", path: "/products?limit=ten"},
		{name: "given limit above max should return bad request", path: "/products?limit=500"},
		{name: "given negative offset should return bad request", path: "/products?offset=-1"},
		{name: "given empty search should return bad request", path: "/products/search?q="},
		{name: "given malformed productId should return bad request", path: "/products/not-a-uuid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}
