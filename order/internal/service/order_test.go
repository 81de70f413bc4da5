package service

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/internal/common/constants"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/internal/testutil"
	orderErrors "github.com/Alturino/storefront/order/internal/errors"
	"github.com/Alturino/storefront/order/pkg/request"
	"github.com/Alturino/storefront/order/pkg/response"
	"github.com/Alturino/storefront/product/pkg/catalog"
	productResponse "github.com/Alturino/storefront/product/pkg/response"
	userResponse "github.com/Alturino/storefront/user/pkg/response"
)

// lineOf is what a client would submit for product, with a tampered price
// and name.
func lineOf(product productResponse.Product) request.OrderItem {
	return request.OrderItem{
		Name:      "tampered " + product.Name,
		Image:     gofakeit.URL(),
		Slug:      product.Slug,
		Color:     gofakeit.SafeColor(),
		Price:     decimal.RequireFromString("0.01"),
		ProductID: product.ID,
		Quantity:  gofakeit.IntRange(1, 5),
	}
}

// pricedLine is the line the order should record for item.
func pricedLine(product productResponse.Product, item request.OrderItem) response.OrderItem {
	return response.OrderItem{
		Name:      product.Name,
		Image:     product.Image(),
		Slug:      product.Slug,
		Color:     item.Color,
		Price:     product.Price,
		ProductID: product.ID,
		Quantity:  item.Quantity,
	}
}

func TestTotal(t *testing.T) {
	tests := []struct {
		name     string
		items    []response.OrderItem
		expected decimal.Decimal
	}{
		{name: "given no items should return zero", items: nil, expected: decimal.Zero},
		{
			name: "given items should sum price times quantity",
			items: []response.OrderItem{
				{Price: decimal.RequireFromString("10.50"), Quantity: 2},
				{Price: decimal.RequireFromString("3.25"), Quantity: 4},
			},
			expected: decimal.RequireFromString("34"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.expected.Equal(Total(tt.items)), "expected=%s actual=%s", tt.expected, Total(tt.items))
		})
	}
}

func TestOrderService(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	c := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339Nano}).
		WithContext(context.Background())
	pool := testutil.StartPostgres(t, c)
	cache := testutil.StartRedis(t, c)
	queries := repository.New(pool)
	service := NewOrderService(pool, queries, cache, catalog.New(queries, cache), "USD")

	newUser := func(t *testing.T) repository.User {
		user, err := queries.InsertUser(c, repository.InsertUserParams{
			Email:       gofakeit.Email(),
			Password:    gofakeit.Password(true, true, true, false, false, 12),
			DisplayName: gofakeit.Name(),
		})
		require.NoError(t, err)
		return user
	}

	newProduct := func(t *testing.T) productResponse.Product {
		product, err := queries.UpsertProduct(c, repository.UpsertProductParams{
			Slug:     gofakeit.UUID(),
			Name:     gofakeit.ProductName(),
			Category: gofakeit.ProductCategory(),
			Price:    repository.NumericFromDecimal(decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2)),
			Images:   []string{gofakeit.URL()},
			Colors:   []string{},
			Sizes:    []string{},
		})
		require.NoError(t, err)
		return product.Response()
	}

	randomItem := func(t *testing.T) request.OrderItem {
		return lineOf(newProduct(t))
	}

	t.Run("given card payment should record completed order and publish it", func(t *testing.T) {
		user := newUser(t)
		sub := cache.Subscribe(c, constants.ChannelOrderCreated)
		defer sub.Close()
		_, err := sub.Receive(c)
		require.NoError(t, err)

		a, b := newProduct(t), newProduct(t)
		items := []request.OrderItem{lineOf(a), lineOf(b)}
		order, err := service.CreateOrder(c, user.ID, request.Checkout{
			PaymentMethod: request.PaymentMethodCard,
			Items:         items,
		})
		require.NoError(t, err)

		expected := []response.OrderItem{pricedLine(a, items[0]), pricedLine(b, items[1])}
		assert.Equal(t, response.StatusCompleted, order.Status)
		assert.Equal(t, user.ID, order.UserId)
		assert.Equal(t, "USD", order.Currency)
		assert.True(t, Total(expected).Equal(order.Total), "expected=%s actual=%s", Total(expected), order.Total)
		assert.Empty(t, cmp.Diff(expected, order.Items, cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })))

		msg, err := sub.ReceiveMessage(c)
		require.NoError(t, err)
		assert.Contains(t, msg.Payload, order.ID.String())

		found, err := service.FindOrderById(c, request.FindOrderById{UserId: user.ID, OrderId: order.ID})
		require.NoError(t, err)
		assert.Equal(t, order.ID, found.ID)
	})

	t.Run("given orders should list newest first", func(t *testing.T) {
		user := newUser(t)
		first, err := service.CreateOrder(c, user.ID, request.Checkout{
			PaymentMethod: request.PaymentMethodCashOnDelivery,
			Items:         []request.OrderItem{randomItem(t)},
		})
		require.NoError(t, err)
		second, err := service.CreateOrder(c, user.ID, request.Checkout{
			PaymentMethod: request.PaymentMethodCard,
			Items:         []request.OrderItem{randomItem(t)},
		})
		require.NoError(t, err)

		orders, err := service.FindOrders(c, user.ID)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, second.ID, orders[0].ID)
		assert.Equal(t, first.ID, orders[1].ID)
	})

	t.Run("given wallet payment with enough balance should debit wallet", func(t *testing.T) {
		user := newUser(t)
		_, err := queries.CreditWalletBalance(c, repository.CreditWalletBalanceParams{
			Amount: repository.NumericFromDecimal(decimal.NewFromInt(1000)),
			ID:     user.ID,
		})
		require.NoError(t, err)

		product := newProduct(t)
		items := []request.OrderItem{lineOf(product)}
		order, err := service.CreateOrder(c, user.ID, request.Checkout{
			PaymentMethod: request.PaymentMethodWallet,
			Items:         items,
		})
		require.NoError(t, err)

		stored, err := queries.FindUserById(c, user.ID)
		require.NoError(t, err)
		expected := decimal.NewFromInt(1000).Sub(Total([]response.OrderItem{pricedLine(product, items[0])}))
		assert.True(t, expected.Equal(repository.DecimalFromNumeric(stored.WalletBalance)))

		transactions, err := queries.FindWalletTransactionsByUserId(c, user.ID)
		require.NoError(t, err)
		require.Len(t, transactions, 1)
		assert.Equal(t, userResponse.WalletKindPayment, transactions[0].Kind)
		assert.Equal(t, order.ID, uuid.UUID(transactions[0].OrderID.UUID))
	})

	t.Run("given wallet payment without balance should not record order", func(t *testing.T) {
		user := newUser(t)
		_, err := service.CreateOrder(c, user.ID, request.Checkout{
			PaymentMethod: request.PaymentMethodWallet,
			Items:         []request.OrderItem{randomItem(t)},
		})
		assert.ErrorIs(t, err, orderErrors.ErrInsufficientBalance)

		orders, err := service.FindOrders(c, user.ID)
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("given unknown user should return error user not found", func(t *testing.T) {
		_, err := service.CreateOrder(c, uuid.New(), request.Checkout{
			PaymentMethod: request.PaymentMethodCard,
			Items:         []request.OrderItem{randomItem(t)},
		})
		assert.ErrorIs(t, err, orderErrors.ErrUserNotFound)
	})

	t.Run("given client prices should charge catalog prices", func(t *testing.T) {
		user := newUser(t)
		product := newProduct(t)
		item := lineOf(product)
		item.Quantity = 3

		order, err := service.CreateOrder(c, user.ID, request.Checkout{
			PaymentMethod: request.PaymentMethodCashOnDelivery,
			Items:         []request.OrderItem{item},
		})
		require.NoError(t, err)

		require.Len(t, order.Items, 1)
		assert.Equal(t, product.Name, order.Items[0].Name)
		assert.True(t, product.Price.Equal(order.Items[0].Price))
		assert.True(t, product.Price.Mul(decimal.NewFromInt(3)).Equal(order.Total), "total=%s", order.Total)
	})

	t.Run("given unknown product should not record order", func(t *testing.T) {
		user := newUser(t)
		_, err := service.CreateOrder(c, user.ID, request.Checkout{
			PaymentMethod: request.PaymentMethodCard,
			Items:         []request.OrderItem{randomItem(t), lineOf(productResponse.Product{ID: uuid.New(), Name: "gone"})},
		})
		assert.ErrorIs(t, err, orderErrors.ErrUnknownProduct)

		orders, err := service.FindOrders(c, user.ID)
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("given empty items should return error empty order", func(t *testing.T) {
		_, err := service.CreateOrder(c, newUser(t).ID, request.Checkout{PaymentMethod: request.PaymentMethodCard})
		assert.ErrorIs(t, err, orderErrors.ErrEmptyOrder)
	})

	t.Run("given order of another user should return error order not found", func(t *testing.T) {
		owner := newUser(t)
		order, err := service.CreateOrder(c, owner.ID, request.Checkout{
			PaymentMethod: request.PaymentMethodCard,
			Items:         []request.OrderItem{randomItem(t)},
		})
		require.NoError(t, err)

		_, err = service.FindOrderById(c, request.FindOrderById{UserId: newUser(t).ID, OrderId: order.ID})
		assert.ErrorIs(t, err, orderErrors.ErrOrderNotFound)
	})
}
