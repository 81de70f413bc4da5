package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/internal/common/constants"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/internal/testutil"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		size     int
		expected [][]int
	}{
		{name: "given empty slice should return no chunk", input: nil, size: 10, expected: [][]int{}},
		{name: "given fewer than size should return one chunk", input: []int{1, 2, 3}, size: 10, expected: [][]int{{1, 2, 3}}},
		{
			name:     "given 23 items and size 10 should return 10 10 3",
			input:    []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23},
			size:     10,
			expected: [][]int{{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, {11, 12, 13, 14, 15, 16, 17, 18, 19, 20}, {21, 22, 23}},
		},
		{name: "given exact multiple should not return empty tail", input: []int{1, 2, 3, 4}, size: 2, expected: [][]int{{1, 2}, {3, 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Chunk(tt.input, tt.size))
		})
	}
}

func TestCatalog(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	c := context.Background()
	pool := testutil.StartPostgres(t, c)
	cache := testutil.StartRedis(t, c)
	queries := repository.New(pool)
	cat := New(queries, cache)

	insert := func(t *testing.T) repository.Product {
		product, err := queries.UpsertProduct(c, repository.UpsertProductParams{
			Slug:        gofakeit.UUID(),
			Name:        gofakeit.ProductName(),
			Description: gofakeit.ProductDescription(),
			Category:    gofakeit.ProductCategory(),
			Price:       repository.NumericFromDecimal(decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2)),
			Quantity:    int32(gofakeit.IntRange(0, 100)),
			Images:      []string{gofakeit.URL()},
			Colors:      []string{},
			Sizes:       []string{},
		})
		require.NoError(t, err)
		return product
	}

	t.Run("given product should cache it by id and slug", func(t *testing.T) {
		product := insert(t)

		found, err := cat.FindProductById(c, product.ID)
		require.NoError(t, err)
		assert.Equal(t, product.Slug, found.Slug)

		exists, err := cache.Exists(
			c,
			fmt.Sprintf(constants.KeyProducts, product.ID),
			fmt.Sprintf(constants.KeyProductsSlug, product.Slug),
		).Result()
		require.NoError(t, err)
		assert.EqualValues(t, 2, exists)

		bySlug, err := cat.FindProductBySlug(c, product.Slug)
		require.NoError(t, err)
		assert.Equal(t, product.ID, bySlug.ID)
	})

	t.Run("given unknown slug should return error product not found", func(t *testing.T) {
		_, err := cat.FindProductBySlug(c, gofakeit.UUID())
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("given more ids than one batch should return all in request order", func(t *testing.T) {
		ids := make([]uuid.UUID, 0, 25)
		for range 23 {
			ids = append(ids, insert(t).ID)
		}
		ids = append(ids, uuid.New(), uuid.New())
		gofakeit.ShuffleAnySlice(ids)

		products, err := cat.FindProductsByIds(c, ids)
		require.NoError(t, err)
		require.Len(t, products, 23)

		known := make([]uuid.UUID, 0, 23)
		for _, id := range ids {
			for _, p := range products {
				if p.ID == id {
					known = append(known, id)
				}
			}
		}
		for i, p := range products {
			assert.Equal(t, known[i], p.ID)
		}
	})
}
