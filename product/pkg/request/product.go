package request

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	DefaultLimit = 24
	MaxLimit     = 100
)

type FindProducts struct {
	Category    string `validate:"omitempty,max=64"       json:"category"`
	Subcategory string `validate:"omitempty,max=64"       json:"subcategory"`
	Limit       int    `validate:"gte=0,lte=100"          json:"limit"`
	Offset      int    `validate:"gte=0"                  json:"offset"`
}

func (f FindProducts) MarshalZerologObject(e *zerolog.Event) {
	e.Str("category", f.Category).
		Str("subcategory", f.Subcategory).
		Int("limit", f.Limit).
		Int("offset", f.Offset)
}

type SearchProducts struct {
	Query string `validate:"required,min=1,max=128" json:"q"`
	Limit int    `validate:"gte=0,lte=100"          json:"limit"`
}

// Product is one catalog entry of the seed file.
type Product struct {
	Name           string           `validate:"required"              json:"name"`
	Slug           string           `                                 json:"slug"`
	Description    string           `                                 json:"description"`
	Category       string           `validate:"required"              json:"category"`
	Subcategory    string           `                                 json:"subcategory"`
	Price          decimal.Decimal  `validate:"price"                 json:"price"`
	CompareAtPrice *decimal.Decimal `                                 json:"compareAtPrice,omitempty"`
	Quantity       int32            `validate:"gte=0"                 json:"quantity"`
	Rating         float64          `validate:"gte=0,lte=5"           json:"rating"`
	ReviewCount    int32            `validate:"gte=0"                 json:"reviewCount"`
	Images         []string         `validate:"dive,required"         json:"images"`
	Colors         []string         `                                 json:"colors"`
	Sizes          []string         `                                 json:"sizes"`
}
