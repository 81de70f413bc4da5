package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
	CompareAtPrice *decimal.Decimal `json:"compareAtPrice,omitempty"`
	Name           string           `json:"name"`
	Slug           string           `json:"slug"`
	Description    string           `json:"description"`
	Category       string           `json:"category"`
	Subcategory    string           `json:"subcategory"`
	Price          decimal.Decimal  `json:"price"`
	Images         []string         `json:"images"`
	Colors         []string         `json:"colors"`
	Sizes          []string         `json:"sizes"`
	Rating         float64          `json:"rating"`
	ID             uuid.UUID        `json:"id"`
	Quantity       int32            `json:"quantity"`
	ReviewCount    int32            `json:"reviewCount"`
}

// Image returns the first product image or an empty string.
func (p Product) Image() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

type Category struct {
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
}
