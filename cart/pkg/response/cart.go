package response

import (
	"github.com/shopspring/decimal"

	"github.com/Alturino/storefront/cart/pkg/store"
	orderResponse "github.com/Alturino/storefront/order/pkg/response"
)

type Cart struct {
	Items     []store.Item    `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

func FromStore(s *store.Store) Cart {
	return Cart{Items: s.Items(), Total: s.Total(), ItemCount: s.ItemCount()}
}

type Checkout struct {
	Order orderResponse.Order `json:"order"`
	State string              `json:"state"`
}
