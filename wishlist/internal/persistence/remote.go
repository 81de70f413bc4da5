package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/product/pkg/response"
	"github.com/Alturino/storefront/wishlist/internal/store"
)

const foreignKeyViolation = "23503"

type ProductFinder interface {
	FindProductsByIds(c context.Context, ids []uuid.UUID) ([]response.Product, error)
}

// Remote is the per-user wishlist. Only product ids are stored; products are
// resolved through the catalog in batches.
type Remote struct {
	queries  *repository.Queries
	products ProductFinder
	userID   uuid.UUID
}

func NewRemote(queries *repository.Queries, products ProductFinder, userID uuid.UUID) *Remote {
	return &Remote{queries: queries, products: products, userID: userID}
}

func (p *Remote) Load(c context.Context) ([]response.Product, error) {
	ids, err := p.queries.FindWishlistProductIds(c, p.userID)
	if err != nil {
		return nil, fmt.Errorf("failed finding wishlist of userId=%s with error=%w", p.userID, err)
	}
	if len(ids) == 0 {
		return []response.Product{}, nil
	}
	products, err := p.products.FindProductsByIds(c, ids)
	if err != nil {
		return nil, fmt.Errorf("failed resolving wishlist products with error=%w", err)
	}
	return products, nil
}

func (p *Remote) Add(c context.Context, productID uuid.UUID) error {
	err := p.queries.InsertWishlistItem(
		c,
		repository.InsertWishlistItemParams{UserID: p.userID, ProductID: productID},
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return fmt.Errorf("failed inserting productId=%s with error=%w", productID, errors.Join(store.ErrProductUnavailable, err))
	}
	if err != nil {
		return fmt.Errorf("failed inserting productId=%s with error=%w", productID, err)
	}
	return nil
}

func (p *Remote) Remove(c context.Context, productID uuid.UUID) error {
	err := p.queries.DeleteWishlistItem(
		c,
		repository.DeleteWishlistItemParams{UserID: p.userID, ProductID: productID},
	)
	if err != nil {
		return fmt.Errorf("failed deleting productId=%s with error=%w", productID, err)
	}
	return nil
}

func (p *Remote) Clear(c context.Context) error {
	if err := p.queries.DeleteWishlistByUserId(c, p.userID); err != nil {
		return fmt.Errorf("failed deleting wishlist of userId=%s with error=%w", p.userID, err)
	}
	return nil
}
