// Package store holds the shopping cart of one visitor and mirrors every
// change into its persisters.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
)

type Item struct {
	Name      string          `validate:"required" json:"name"`
	Image     string          `                    json:"image"`
	Slug      string          `                    json:"slug"`
	Color     string          `                    json:"color,omitempty"`
	Size      string          `                    json:"size,omitempty"`
	Price     decimal.Decimal `validate:"price"    json:"price"`
	ProductID uuid.UUID       `validate:"required" json:"productId"`
	Quantity  int             `validate:"gte=0"    json:"quantity"`
}

// Key identifies a cart line. Two lines of the same product with a different
// color or size are different lines.
type Key struct {
	Color     string
	Size      string
	ProductID uuid.UUID
}

func (i Item) Key() Key {
	return Key{ProductID: i.ProductID, Color: i.Color, Size: i.Size}
}

func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Persister stores the whole cart as one value.
type Persister interface {
	Load(c context.Context) ([]Item, error)
	Save(c context.Context, items []Item) error
	Erase(c context.Context) error
}

type Store struct {
	items      []Item
	persisters []Persister
}

// Open loads the cart from the first persister holding a non-empty cart.
// Load failures are logged and the next persister is tried.
func Open(c context.Context, persisters ...Persister) *Store {
	c, span := otel.Tracer.Start(c, "store Open")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "store Open").
		Str(log.KeyProcess, "loading cart").
		Logger()

	s := &Store{items: []Item{}, persisters: persisters}
	for i, p := range persisters {
		items, err := p.Load(c)
		if err != nil {
			err = fmt.Errorf("failed loading cart from persister=%d with error=%w", i, err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			continue
		}
		if len(items) > 0 {
			s.items = items
			logger.Trace().Int(log.KeyCartItemsCount, len(items)).Int("persister", i).Msg("loaded cart")
			break
		}
	}
	return s
}

// Mirror adds persisters that receive every change without being read on Open.
func (s *Store) Mirror(persisters ...Persister) *Store {
	s.persisters = append(s.persisters, persisters...)
	return s
}

func (s *Store) Items() []Item {
	return slices.Clone(s.items)
}

// Total is recomputed from the lines on every call.
func (s *Store) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (s *Store) ItemCount() int {
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *Store) IsEmpty() bool {
	return len(s.items) == 0
}

// AddItem merges the item into the line with the same product, color and size
// or appends it as a new line.
func (s *Store) AddItem(c context.Context, item Item) error {
	i := slices.IndexFunc(s.items, func(existing Item) bool { return existing.Key() == item.Key() })
	if i >= 0 {
		s.items[i].Quantity += item.Quantity
	} else {
		s.items = append(s.items, item)
	}
	return s.persist(c)
}

// RemoveItem drops every line of the product regardless of color and size.
func (s *Store) RemoveItem(c context.Context, productID uuid.UUID) error {
	s.items = slices.DeleteFunc(s.items, func(item Item) bool { return item.ProductID == productID })
	return s.persist(c)
}

// UpdateQuantity sets the quantity of every line of the product. Any value is
// stored as given, bounds are the caller's concern.
func (s *Store) UpdateQuantity(c context.Context, productID uuid.UUID, quantity int) error {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
		}
	}
	return s.persist(c)
}

// Replace swaps the whole cart, used after reconciliation.
func (s *Store) Replace(c context.Context, items []Item) error {
	s.items = slices.Clone(items)
	if s.items == nil {
		s.items = []Item{}
	}
	return s.persist(c)
}

func (s *Store) ClearCart(c context.Context) error {
	c, span := otel.Tracer.Start(c, "Store ClearCart")
	defer span.End()

	s.items = []Item{}
	var errs []error
	for _, p := range s.persisters {
		if err := p.Erase(c); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		err = fmt.Errorf("failed erasing cart with error=%w", err)
		otel.RecordError(err, span)
		zerolog.Ctx(c).Error().Err(err).Str(log.KeyTag, "Store ClearCart").Msg(err.Error())
		return err
	}
	return nil
}

func (s *Store) persist(c context.Context) error {
	c, span := otel.Tracer.Start(c, "Store persist")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Store persist").
		Str(log.KeyProcess, "saving cart").
		Logger()

	var errs []error
	for _, p := range s.persisters {
		if err := p.Save(c, s.items); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		err = fmt.Errorf("failed saving cart with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Int(log.KeyCartItemsCount, len(s.items)).Msg("saved cart")
	return nil
}
