package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/common"
	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/metrics"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/reconcile"
	"github.com/Alturino/storefront/internal/repository"
	productResponse "github.com/Alturino/storefront/product/pkg/response"
	wishlistErrors "github.com/Alturino/storefront/wishlist/internal/errors"
	"github.com/Alturino/storefront/wishlist/internal/persistence"
	"github.com/Alturino/storefront/wishlist/internal/store"
	"github.com/Alturino/storefront/wishlist/pkg/response"
)

type Catalog interface {
	persistence.ProductFinder
	FindProductById(c context.Context, id uuid.UUID) (productResponse.Product, error)
}

// Visitor is whoever owns the wishlist of the current request. SignInID is the
// token id of a signed-in visitor.
type Visitor struct {
	SessionID string
	SignInID  string
	UserID    uuid.UUID
	SignedIn  bool
}

func (v Visitor) mergeKey() reconcile.Key {
	return reconcile.Key{SessionID: v.SessionID, UserID: v.UserID.String(), SignInID: v.SignInID}
}

type WishlistService struct {
	queries *repository.Queries
	cache   *redis.Client
	catalog Catalog
	gate    *reconcile.Gate
}

func NewWishlistService(queries *repository.Queries, cache *redis.Client, catalog Catalog) *WishlistService {
	return &WishlistService{queries: queries, cache: cache, catalog: catalog, gate: reconcile.NewGate(common.TokenTTL)}
}

// open loads the visitor's wishlist, merging local storage into the remote
// list on the first load after each sign-in.
func (s *WishlistService) open(c context.Context, v Visitor) (*store.Store, error) {
	c, span := otel.Tracer.Start(c, "WishlistService open")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "WishlistService open").
		Str(log.KeySessionID, v.SessionID).
		Bool(log.KeySignedIn, v.SignedIn).
		Logger()
	c = logger.WithContext(c)

	local := persistence.NewLocalStorage(s.cache, v.SessionID)
	if !v.SignedIn {
		wishlist, err := store.Open(c, local, nil)
		if err != nil {
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
		}
		return wishlist, err
	}

	wishlist, err := store.Open(c, local, persistence.NewRemote(s.queries, s.catalog, v.UserID))
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	if s.gate.Done(v.mergeKey()) {
		return wishlist, nil
	}

	logger = logger.With().Str(log.KeyProcess, "merging local wishlist").Logger()
	logger.Info().Msg("merging local wishlist")
	if err = wishlist.Merge(c); err != nil {
		metrics.Reconciliations.WithLabelValues("wishlist", "failure").Inc()
		logger.Error().Err(err).Msg("failed merging local wishlist, serving remote wishlist")
		return wishlist, nil
	}
	s.gate.Mark(v.mergeKey())
	metrics.Reconciliations.WithLabelValues("wishlist", "success").Inc()
	logger.Info().Msg("merged local wishlist")
	return wishlist, nil
}

func (s *WishlistService) FindWishlist(c context.Context, v Visitor) (response.Wishlist, error) {
	c, span := otel.Tracer.Start(c, "WishlistService FindWishlist")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "WishlistService FindWishlist").Logger()

	wishlist, err := s.open(logger.WithContext(c), v)
	if err != nil {
		err = fmt.Errorf("failed opening wishlist with error=%w", err)
		otel.RecordError(err, span)
		return response.Wishlist{}, err
	}
	return response.NewWishlist(wishlist.Items()), nil
}

func (s *WishlistService) AddItem(c context.Context, v Visitor, productId uuid.UUID) (response.Wishlist, error) {
	c, span := otel.Tracer.Start(c, "WishlistService AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "WishlistService AddItem").
		Str(log.KeyProductID, productId.String()).
		Logger()
	c = logger.WithContext(c)

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Trace().Msg("finding product")
	product, err := s.catalog.FindProductById(c, productId)
	if err != nil {
		err = fmt.Errorf("failed finding productId=%s with error=%w", productId, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Wishlist{}, err
	}
	logger.Trace().Msg("found product")

	wishlist, err := s.open(c, v)
	if err != nil {
		otel.RecordError(err, span)
		return response.Wishlist{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "adding product").Logger()
	logger.Info().Msg("adding product")
	if err = wishlist.AddItem(c, product); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.NewWishlist(wishlist.Items()), err
	}
	logger.Info().Msg("added product")

	return response.NewWishlist(wishlist.Items()), nil
}

func (s *WishlistService) RemoveItem(c context.Context, v Visitor, productId uuid.UUID) (response.Wishlist, error) {
	c, span := otel.Tracer.Start(c, "WishlistService RemoveItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "WishlistService RemoveItem").
		Str(log.KeyProductID, productId.String()).
		Str(log.KeyProcess, "removing product").
		Logger()
	c = logger.WithContext(c)

	wishlist, err := s.open(c, v)
	if err != nil {
		otel.RecordError(err, span)
		return response.Wishlist{}, err
	}

	logger.Info().Msg("removing product")
	if err = wishlist.RemoveItem(c, productId); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.NewWishlist(wishlist.Items()), err
	}
	logger.Info().Msg("removed product")

	return response.NewWishlist(wishlist.Items()), nil
}

// Toggle reports whether the product is listed after the call.
func (s *WishlistService) Toggle(c context.Context, v Visitor, productId uuid.UUID) (response.Wishlist, bool, error) {
	c, span := otel.Tracer.Start(c, "WishlistService Toggle")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "WishlistService Toggle").
		Str(log.KeyProductID, productId.String()).
		Logger()
	c = logger.WithContext(c)

	wishlist, err := s.open(c, v)
	if err != nil {
		otel.RecordError(err, span)
		return response.Wishlist{}, false, err
	}

	product := productResponse.Product{ID: productId}
	if !wishlist.Contains(productId) {
		logger.Trace().Msg("finding product")
		if product, err = s.catalog.FindProductById(c, productId); err != nil {
			err = fmt.Errorf("failed finding productId=%s with error=%w", productId, err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.NewWishlist(wishlist.Items()), false, err
		}
		logger.Trace().Msg("found product")
	}

	logger.Info().Msg("toggling product")
	listed, err := wishlist.Toggle(c, product)
	if err != nil {
		err = fmt.Errorf("failed toggling productId=%s with error=%w", productId, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.NewWishlist(wishlist.Items()), wishlist.Contains(productId), err
	}
	logger.Info().Bool("listed", listed).Msg("toggled product")

	return response.NewWishlist(wishlist.Items()), listed, nil
}

func (s *WishlistService) ClearWishlist(c context.Context, v Visitor) error {
	c, span := otel.Tracer.Start(c, "WishlistService ClearWishlist")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "WishlistService ClearWishlist").
		Str(log.KeyProcess, "clearing wishlist").
		Logger()
	c = logger.WithContext(c)

	wishlist, err := s.open(c, v)
	if err != nil {
		otel.RecordError(err, span)
		return err
	}

	logger.Info().Msg("clearing wishlist")
	if err = wishlist.ClearWishlist(c); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("cleared wishlist")
	return nil
}

// Reconcile forces the merge of local storage into the remote wishlist even
// when the session already merged once.
func (s *WishlistService) Reconcile(c context.Context, v Visitor) (response.Wishlist, error) {
	c, span := otel.Tracer.Start(c, "WishlistService Reconcile")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "WishlistService Reconcile").
		Str(log.KeySessionID, v.SessionID).
		Logger()

	if !v.SignedIn {
		err := commonErrors.ErrUnauthenticated
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Wishlist{}, err
	}

	s.gate.Reset(v.mergeKey())
	wishlist, err := s.open(logger.WithContext(c), v)
	if err != nil {
		otel.RecordError(err, span)
		return response.Wishlist{}, err
	}
	if !s.gate.Done(v.mergeKey()) {
		err = fmt.Errorf("failed merging sessionId=%s with error=%w", v.SessionID, wishlistErrors.ErrMergeFailed)
		otel.RecordError(err, span)
		return response.NewWishlist(wishlist.Items()), err
	}
	return response.NewWishlist(wishlist.Items()), nil
}
