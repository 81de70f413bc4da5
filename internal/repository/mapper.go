package repository

import (
	"encoding/json"
	"math/big"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	orderResponse "github.com/Alturino/storefront/order/pkg/response"
	productResponse "github.com/Alturino/storefront/product/pkg/response"
	userResponse "github.com/Alturino/storefront/user/pkg/response"
)

func DecimalFromNumeric(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func NumericFromDecimal(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: new(big.Int).Set(d.Coefficient()), Exp: d.Exponent(), Valid: true}
}

func (p Product) Response() productResponse.Product {
	product := productResponse.Product{
		ID:          p.ID,
		Slug:        p.Slug,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		Price:       DecimalFromNumeric(p.Price),
		Quantity:    p.Quantity,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		Images:      nonNil(p.Images),
		Colors:      nonNil(p.Colors),
		Sizes:       nonNil(p.Sizes),
		CreatedAt:   p.CreatedAt.Time,
		UpdatedAt:   p.UpdatedAt.Time,
	}
	if p.CompareAtPrice.Valid {
		compareAt := DecimalFromNumeric(p.CompareAtPrice)
		product.CompareAtPrice = &compareAt
	}
	return product
}

func (o Order) Response() (orderResponse.Order, error) {
	items := []orderResponse.OrderItem{}
	if err := json.Unmarshal(o.Items, &items); err != nil {
		return orderResponse.Order{}, err
	}
	return orderResponse.Order{
		ID:            o.ID,
		UserId:        o.UserID,
		Items:         items,
		Total:         DecimalFromNumeric(o.Total),
		Currency:      o.Currency,
		PaymentMethod: o.PaymentMethod,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt.Time,
	}, nil
}

func (u User) Response() userResponse.User {
	return userResponse.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt.Time,
	}
}

func (a Address) Response() userResponse.Address {
	return userResponse.Address{
		ID:           a.ID,
		Name:         a.Name,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.PostalCode,
		IsDefault:    a.IsDefault,
	}
}

func (w WalletTransaction) Response() userResponse.WalletTransaction {
	transaction := userResponse.WalletTransaction{
		ID:        w.ID,
		Kind:      w.Kind,
		Amount:    DecimalFromNumeric(w.Amount),
		CreatedAt: w.CreatedAt.Time,
	}
	if w.OrderID.Valid {
		orderID := uuid.UUID(w.OrderID.UUID)
		transaction.OrderID = &orderID
	}
	return transaction
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
