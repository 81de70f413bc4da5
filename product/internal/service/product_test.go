package service

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/product/pkg/request"
	"github.com/Alturino/storefront/product/pkg/response"
)

func TestLimit(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		expected  int32
	}{
		{name: "given zero should use default", requested: 0, expected: request.DefaultLimit},
		{name: "given negative should use default", requested: -5, expected: request.DefaultLimit},
		{name: "given within bounds should keep it", requested: 12, expected: 12},
		{name: "given above max should clamp to max", requested: 1000, expected: request.MaxLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, limit(tt.requested))
		})
	}
}

func TestGroupCategories(t *testing.T) {
	rows := []repository.FindCategoriesRow{
		{Category: "men", Subcategory: "shirts"},
		{Category: "men", Subcategory: "shoes"},
		{Category: "sale", Subcategory: ""},
		{Category: "women", Subcategory: "dresses"},
	}
	expected := []response.Category{
		{Name: "men", Subcategories: []string{"shirts", "shoes"}},
		{Name: "sale", Subcategories: []string{}},
		{Name: "women", Subcategories: []string{"dresses"}},
	}
	if diff := cmp.Diff(expected, groupCategories(rows)); diff != "" {
		t.Errorf("groupCategories mismatch (-expected +actual):\n%s", diff)
	}
	assert.Empty(t, groupCategories(nil))
}
