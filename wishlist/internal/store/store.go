// Package store holds a visitor's wishlist. Signed-out wishlists live in
// memory backed by local storage; signed-in wishlists are read from the
// remote per-user list and every change is written there first, then
// re-fetched.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/reconcile"
	"github.com/Alturino/storefront/product/pkg/response"
)

type Local interface {
	Load(c context.Context) ([]response.Product, error)
	Save(c context.Context, items []response.Product) error
	Erase(c context.Context) error
}

type Remote interface {
	Load(c context.Context) ([]response.Product, error)
	Add(c context.Context, productID uuid.UUID) error
	Remove(c context.Context, productID uuid.UUID) error
	Clear(c context.Context) error
}

type Store struct {
	local  Local
	remote Remote
	items  []response.Product
}

func productID(p response.Product) uuid.UUID { return p.ID }

// Open loads the wishlist. remote is nil for signed-out visitors.
func Open(c context.Context, local Local, remote Remote) (*Store, error) {
	s := &Store{local: local, remote: remote}
	if err := s.refresh(c); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) SignedIn() bool { return s.remote != nil }

func (s *Store) refresh(c context.Context) error {
	var (
		items []response.Product
		err   error
	)
	if s.SignedIn() {
		items, err = s.remote.Load(c)
	} else {
		items, err = s.local.Load(c)
	}
	if err != nil {
		return fmt.Errorf("failed loading wishlist with error=%w", err)
	}
	s.items = reconcile.Union(items, nil, productID, nil)
	return nil
}

func (s *Store) Items() []response.Product {
	return append([]response.Product{}, s.items...)
}

func (s *Store) Contains(id uuid.UUID) bool {
	for _, item := range s.items {
		if item.ID == id {
			return true
		}
	}
	return false
}

// AddItem is a no-op when the product is already listed.
func (s *Store) AddItem(c context.Context, product response.Product) error {
	if s.SignedIn() {
		if err := s.remote.Add(c, product.ID); err != nil {
			return fmt.Errorf("failed adding productId=%s to remote wishlist with error=%w", product.ID, err)
		}
		return s.refresh(c)
	}
	if s.Contains(product.ID) {
		return nil
	}
	return s.saveLocal(c, append(s.Items(), product))
}

func (s *Store) RemoveItem(c context.Context, id uuid.UUID) error {
	if s.SignedIn() {
		if err := s.remote.Remove(c, id); err != nil {
			return fmt.Errorf("failed removing productId=%s from remote wishlist with error=%w", id, err)
		}
		return s.refresh(c)
	}
	kept := make([]response.Product, 0, len(s.items))
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	return s.saveLocal(c, kept)
}

// Toggle removes the product when listed and adds it otherwise. It reports
// whether the product is listed afterwards.
func (s *Store) Toggle(c context.Context, product response.Product) (bool, error) {
	if s.Contains(product.ID) {
		return false, s.RemoveItem(c, product.ID)
	}
	return true, s.AddItem(c, product)
}

// ClearWishlist deletes the remote entries when signed in, otherwise writes an
// empty list to local storage. The in-memory list is emptied either way.
func (s *Store) ClearWishlist(c context.Context) error {
	s.items = []response.Product{}
	if s.SignedIn() {
		if err := s.remote.Clear(c); err != nil {
			return fmt.Errorf("failed clearing remote wishlist with error=%w", err)
		}
		return nil
	}
	if err := s.local.Save(c, []response.Product{}); err != nil {
		return fmt.Errorf("failed clearing local wishlist with error=%w", err)
	}
	return nil
}

func (s *Store) saveLocal(c context.Context, items []response.Product) error {
	if err := s.local.Save(c, items); err != nil {
		return fmt.Errorf("failed saving local wishlist with error=%w", err)
	}
	s.items = items
	return nil
}

var (
	ErrNotSignedIn        = errors.New("wishlist merge needs a signed-in visitor")
	ErrProductUnavailable = errors.New("product is no longer in the catalog")
)

// Merge writes every local-only product to the remote wishlist one by one,
// erases local storage and re-fetches. Products the remote reports as
// ErrProductUnavailable are dropped. Any other failure before the erase
// leaves both local storage and the in-memory list as they were.
func (s *Store) Merge(c context.Context) error {
	c, span := otel.Tracer.Start(c, "Store Merge")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "Store Merge").Logger()

	if !s.SignedIn() {
		otel.RecordError(ErrNotSignedIn, span)
		return ErrNotSignedIn
	}

	logger = logger.With().Str(log.KeyProcess, "loading local wishlist").Logger()
	local, err := s.local.Load(c)
	if err != nil {
		err = fmt.Errorf("failed loading local wishlist with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	missing := reconcile.Missing(s.items, local, productID)
	logger = logger.With().
		Str(log.KeyProcess, "writing local only products").
		Int("missing", len(missing)).
		Logger()
	logger.Info().Msg("writing local only products")
	for _, product := range missing {
		err = s.remote.Add(c, product.ID)
		if errors.Is(err, ErrProductUnavailable) {
			logger.Warn().Str(log.KeyProductID, product.ID.String()).Msg("skipping product removed from catalog")
			continue
		}
		if err != nil {
			err = fmt.Errorf("failed adding productId=%s to remote wishlist with error=%w", product.ID, err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return err
		}
	}
	logger.Info().Msg("wrote local only products")

	logger = logger.With().Str(log.KeyProcess, "erasing local storage").Logger()
	if err = s.local.Erase(c); err != nil {
		err = fmt.Errorf("failed erasing local wishlist with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("erased local storage")

	return s.refresh(c)
}
