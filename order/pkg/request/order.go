package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentMethodCard           = "card"
	PaymentMethodWallet         = "wallet"
	PaymentMethodCashOnDelivery = "cash_on_delivery"
)

// Checkout is the cart snapshot submitted when the shopper pays.
type Checkout struct {
	PaymentMethod string      `validate:"required,oneof=card wallet cash_on_delivery" json:"paymentMethod"`
	Items         []OrderItem `validate:"required,min=1,dive"                         json:"items"`
}

// OrderItem is a cart line as the shopper saw it. Name, image, slug and price
// are informational; the order is priced from the catalog.
type OrderItem struct {
	Name      string          `                          json:"name"`
	Image     string          `                          json:"image"`
	Slug      string          `                          json:"slug"`
	Color     string          `                          json:"color,omitempty"`
	Size      string          `                          json:"size,omitempty"`
	Price     decimal.Decimal `validate:"price"          json:"price"`
	ProductID uuid.UUID       `validate:"required"       json:"productId"`
	Quantity  int             `validate:"required,gte=1" json:"quantity"`
}

type FindOrderById struct {
	UserId  uuid.UUID `validate:"required"`
	OrderId uuid.UUID `validate:"required"`
}
