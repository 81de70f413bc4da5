package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	commonHttp "github.com/Alturino/storefront/internal/common/http"
	orderRequest "github.com/Alturino/storefront/order/pkg/request"
	orderResponse "github.com/Alturino/storefront/order/pkg/response"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func checkoutRequest() orderRequest.Checkout {
	return orderRequest.Checkout{
		PaymentMethod: orderRequest.PaymentMethodCard,
		Items: []orderRequest.OrderItem{
			{ProductID: uuid.New(), Name: "Mug", Price: decimal.RequireFromString("8.00"), Quantity: 2},
		},
	}
}

func TestCheckout(t *testing.T) {
	orderId := uuid.New()

	tests := []struct {
		name        string
		handler     http.HandlerFunc
		wantErr     error
		wantMessage string
	}{
		{
			name: "order recorded",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/orders/checkout", r.URL.Path)
				assert.Equal(t, "Bearer token", r.Header.Get(commonHttp.HeaderAuthorization))
				body := orderRequest.Checkout{}
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Len(t, body.Items, 1)

				w.WriteHeader(http.StatusOK)
				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"status":     "success",
					"statusCode": http.StatusOK,
					"message":    "order recorded",
					"data": map[string]interface{}{"order": orderResponse.Order{
						ID:            orderId,
						Status:        orderResponse.StatusCompleted,
						PaymentMethod: body.PaymentMethod,
						Total:         decimal.RequireFromString("16.00"),
						CreatedAt:     time.Now(),
					}},
				})
			},
		},
		{
			name: "order-service rejects the order",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnprocessableEntity,
					"message":    "insufficient wallet balance",
				})
			},
			wantErr:     commonErrors.ErrUpstreamFailure,
			wantMessage: "insufficient wallet balance",
		},
		{
			name: "order-service answers garbage",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte("<html>bad gateway</html>"))
			},
			wantErr: commonErrors.ErrUpstreamFailure,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			server := httptest.NewServer(test.handler)
			defer server.Close()

			client := NewOrderClient(server.URL+"/", &http.Transport{})
			defer client.CloseIdleConnections()

			order, err := client.Checkout(context.Background(), "token", checkoutRequest())

			if test.wantErr != nil {
				require.ErrorIs(t, err, test.wantErr)
				if test.wantMessage != "" {
					assert.Equal(t, test.wantMessage, err.Error())
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, orderId, order.ID)
			assert.Equal(t, orderResponse.StatusCompleted, order.Status)
			assert.True(t, decimal.RequireFromString("16").Equal(order.Total))
		})
	}
}
