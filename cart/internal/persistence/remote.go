package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Alturino/storefront/cart/pkg/store"
	"github.com/Alturino/storefront/internal/repository"
)

// Remote is the per-user cart document.
type Remote struct {
	queries *repository.Queries
	userID  uuid.UUID
}

func NewRemote(queries *repository.Queries, userID uuid.UUID) *Remote {
	return &Remote{queries: queries, userID: userID}
}

func (p *Remote) Load(c context.Context) ([]store.Item, error) {
	cart, err := p.queries.FindCartByUserId(c, p.userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return []store.Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed finding cart of userId=%s with error=%w", p.userID, err)
	}
	return decodeItems(cart.Items)
}

func (p *Remote) Save(c context.Context, items []store.Item) error {
	data, err := encodeItems(items)
	if err != nil {
		return err
	}
	_, err = p.queries.UpsertCart(c, repository.UpsertCartParams{UserID: p.userID, Items: data})
	if err != nil {
		return fmt.Errorf("failed saving cart of userId=%s with error=%w", p.userID, err)
	}
	return nil
}

func (p *Remote) Erase(c context.Context) error {
	if err := p.queries.DeleteCartByUserId(c, p.userID); err != nil {
		return fmt.Errorf("failed deleting cart of userId=%s with error=%w", p.userID, err)
	}
	return nil
}
