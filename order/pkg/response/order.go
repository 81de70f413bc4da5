package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const StatusCompleted = "completed"

type Order struct {
	CreatedAt     time.Time       `json:"createdAt"`
	Items         []OrderItem     `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        string          `json:"status"`
	ID            uuid.UUID       `json:"id"`
	UserId        uuid.UUID       `json:"userId"`
}

type OrderItem struct {
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Slug      string          `json:"slug"`
	Color     string          `json:"color,omitempty"`
	Size      string          `json:"size,omitempty"`
	Price     decimal.Decimal `json:"price"`
	ProductID uuid.UUID       `json:"productId"`
	Quantity  int             `json:"quantity"`
}
