package request

import "github.com/google/uuid"

type AddItem struct {
	ProductID uuid.UUID `validate:"required" json:"productId"`
}
