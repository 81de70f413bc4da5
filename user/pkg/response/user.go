package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	CreatedAt   time.Time `json:"createdAt"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	PhoneNumber string    `json:"phoneNumber"`
	ID          uuid.UUID `json:"uid"`
}

type Address struct {
	Name         string    `json:"name"`
	AddressLine1 string    `json:"addressLine1"`
	AddressLine2 string    `json:"addressLine2,omitempty"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	PostalCode   string    `json:"postalCode"`
	ID           uuid.UUID `json:"id"`
	IsDefault    bool      `json:"isDefault"`
}

type Wallet struct {
	Balance      decimal.Decimal     `json:"balance"`
	Currency     string              `json:"currency"`
	Transactions []WalletTransaction `json:"transactions"`
}

type WalletTransaction struct {
	CreatedAt time.Time       `json:"createdAt"`
	OrderID   *uuid.UUID      `json:"orderId,omitempty"`
	Kind      string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	ID        uuid.UUID       `json:"id"`
}

type Token struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

const (
	WalletKindTopUp   = "topup"
	WalletKindPayment = "payment"
)
