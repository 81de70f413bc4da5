package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AddItem struct {
	Name      string          `validate:"required"       json:"name"`
	Image     string          `                          json:"image"`
	Slug      string          `                          json:"slug"`
	Color     string          `validate:"max=64"         json:"color"`
	Size      string          `validate:"max=64"         json:"size"`
	Price     decimal.Decimal `validate:"price"          json:"price"`
	ProductID uuid.UUID       `validate:"required"       json:"productId"`
	Quantity  int             `validate:"required,gte=1" json:"quantity"`
}

type UpdateQuantity struct {
	Quantity int `validate:"required,gte=1" json:"quantity"`
}

type Checkout struct {
	PaymentMethod string `validate:"required,oneof=card wallet cash_on_delivery" json:"paymentMethod"`
}
