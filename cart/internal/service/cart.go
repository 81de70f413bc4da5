package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/cart/internal/persistence"
	"github.com/Alturino/storefront/cart/pkg/request"
	"github.com/Alturino/storefront/cart/pkg/response"
	"github.com/Alturino/storefront/cart/pkg/store"
	"github.com/Alturino/storefront/internal/common"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/reconcile"
	"github.com/Alturino/storefront/internal/repository"
	orderRequest "github.com/Alturino/storefront/order/pkg/request"
	orderResponse "github.com/Alturino/storefront/order/pkg/response"
)

type OrderRecorder interface {
	Checkout(c context.Context, token string, param orderRequest.Checkout) (orderResponse.Order, error)
}

// Visitor is whoever owns the cart of the current request. Cookie is the
// cookie view of the visitor's own cart; GuestCookie only ever holds a cart
// built while signed out, so a stale signed-in mirror is never merged.
type Visitor struct {
	Cookie      store.Persister
	GuestCookie store.Persister
	SessionID   string
	SignInID    string
	Token       string
	UserID      uuid.UUID
	SignedIn    bool
}

func (v Visitor) mergeKey() reconcile.Key {
	return reconcile.Key{SessionID: v.SessionID, UserID: v.UserID.String(), SignInID: v.SignInID}
}

type CartService struct {
	queries *repository.Queries
	cache   *redis.Client
	orders  OrderRecorder
	gate    *reconcile.Gate
}

func NewCartService(
	queries *repository.Queries,
	cache *redis.Client,
	orders OrderRecorder,
) *CartService {
	return &CartService{queries: queries, cache: cache, orders: orders, gate: reconcile.NewGate(common.TokenTTL)}
}

// open loads the visitor's cart. Signed-out carts live in the cookie with
// local storage as fallback. Signed-in carts are read from the remote document
// and mirrored into the cookie; the first read of a session merges the local
// cart in.
func (s *CartService) open(c context.Context, v Visitor) *store.Store {
	c, span := otel.Tracer.Start(c, "CartService open")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService open").
		Str(log.KeySessionID, v.SessionID).
		Bool(log.KeySignedIn, v.SignedIn).
		Logger()
	c = logger.WithContext(c)

	if !v.SignedIn {
		return store.Open(c, v.Cookie, persistence.NewLocalStorage(s.cache, v.SessionID))
	}

	if !s.gate.Done(v.mergeKey()) {
		logger = logger.With().Str(log.KeyProcess, "merging local cart").Logger()
		logger.Info().Msg("merging local cart")
		if _, err := s.Reconcile(c, v); err != nil {
			logger.Error().Err(err).Msg("failed merging local cart, serving remote cart")
		}
	}

	return store.Open(c, persistence.NewRemote(s.queries, v.UserID)).Mirror(v.Cookie)
}

func (s *CartService) FindCart(c context.Context, v Visitor) response.Cart {
	c, span := otel.Tracer.Start(c, "CartService FindCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService FindCart").
		Str(log.KeyProcess, "finding cart").
		Logger()

	logger.Trace().Msg("finding cart")
	cart := response.FromStore(s.open(logger.WithContext(c), v))
	logger.Trace().Int(log.KeyCartItemsCount, cart.ItemCount).Msg("found cart")
	return cart
}

func (s *CartService) AddItem(c context.Context, v Visitor, param request.AddItem) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddItem").
		Str(log.KeyProductID, param.ProductID.String()).
		Str(log.KeyProcess, "adding item").
		Logger()
	c = logger.WithContext(c)

	logger.Info().Msg("adding item")
	cart := s.open(c, v)
	err := cart.AddItem(c, store.Item{
		ProductID: param.ProductID,
		Name:      param.Name,
		Price:     param.Price,
		Quantity:  param.Quantity,
		Image:     param.Image,
		Slug:      param.Slug,
		Color:     param.Color,
		Size:      param.Size,
	})
	if err != nil {
		err = fmt.Errorf("failed adding productId=%s with error=%w", param.ProductID, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.FromStore(cart), err
	}
	logger.Info().Msg("added item")

	return response.FromStore(cart), nil
}

func (s *CartService) UpdateQuantity(
	c context.Context,
	v Visitor,
	productID uuid.UUID,
	param request.UpdateQuantity,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService UpdateQuantity")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService UpdateQuantity").
		Str(log.KeyProductID, productID.String()).
		Int("quantity", param.Quantity).
		Str(log.KeyProcess, "updating quantity").
		Logger()
	c = logger.WithContext(c)

	logger.Info().Msg("updating quantity")
	cart := s.open(c, v)
	if err := cart.UpdateQuantity(c, productID, param.Quantity); err != nil {
		err = fmt.Errorf("failed updating quantity of productId=%s with error=%w", productID, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.FromStore(cart), err
	}
	logger.Info().Msg("updated quantity")

	return response.FromStore(cart), nil
}

func (s *CartService) RemoveItem(c context.Context, v Visitor, productID uuid.UUID) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService RemoveItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveItem").
		Str(log.KeyProductID, productID.String()).
		Str(log.KeyProcess, "removing item").
		Logger()
	c = logger.WithContext(c)

	logger.Info().Msg("removing item")
	cart := s.open(c, v)
	if err := cart.RemoveItem(c, productID); err != nil {
		err = fmt.Errorf("failed removing productId=%s with error=%w", productID, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.FromStore(cart), err
	}
	logger.Info().Msg("removed item")

	return response.FromStore(cart), nil
}

func (s *CartService) ClearCart(c context.Context, v Visitor) error {
	c, span := otel.Tracer.Start(c, "CartService ClearCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ClearCart").
		Str(log.KeyProcess, "clearing cart").
		Logger()
	c = logger.WithContext(c)

	logger.Info().Msg("clearing cart")
	if err := s.open(c, v).ClearCart(c); err != nil {
		err = fmt.Errorf("failed clearing cart with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("cleared cart")
	return nil
}
