package request

import (
	"github.com/shopspring/decimal"
)

type Address struct {
	Name         string `validate:"required,max=128"     json:"name"`
	AddressLine1 string `validate:"required,max=256"     json:"addressLine1"`
	AddressLine2 string `validate:"omitempty,max=256"    json:"addressLine2"`
	City         string `validate:"required,max=128"     json:"city"`
	State        string `validate:"required,max=128"     json:"state"`
	PostalCode   string `validate:"required,max=16"      json:"postalCode"`
	IsDefault    bool   `                                json:"isDefault"`
}

type TopUp struct {
	Amount decimal.Decimal `validate:"gt=0" json:"amount"`
}
