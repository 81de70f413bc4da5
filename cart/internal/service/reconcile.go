package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/cart/internal/persistence"
	"github.com/Alturino/storefront/cart/pkg/response"
	"github.com/Alturino/storefront/cart/pkg/store"
	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/metrics"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/reconcile"
)

// keepLargerQuantity makes repeated merges of the same local cart converge.
func keepLargerQuantity(remote, local store.Item) store.Item {
	if local.Quantity > remote.Quantity {
		remote.Quantity = local.Quantity
	}
	return remote
}

// Reconcile writes local ∪ remote to the remote cart and only then erases the
// session's local storage. Local is the guest cookie, falling back to local
// storage. On any failure local storage is left untouched and
// the session stays unmerged.
func (s *CartService) Reconcile(c context.Context, v Visitor) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService Reconcile")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService Reconcile").
		Str(log.KeySessionID, v.SessionID).
		Logger()

	if !v.SignedIn {
		err := commonErrors.ErrUnauthenticated
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().Str(log.KeyUserID, v.UserID.String()).Logger()
	c = logger.WithContext(c)

	localStorage := persistence.NewLocalStorage(s.cache, v.SessionID)
	remote := persistence.NewRemote(s.queries, v.UserID)

	logger = logger.With().Str(log.KeyProcess, "loading local cart").Logger()
	logger.Trace().Msg("loading local cart")
	local := store.Open(c, v.GuestCookie, localStorage).Items()
	logger.Trace().Int(log.KeyCartItemsCount, len(local)).Msg("loaded local cart")

	logger = logger.With().Str(log.KeyProcess, "loading remote cart").Logger()
	logger.Trace().Msg("loading remote cart")
	remoteItems, err := remote.Load(c)
	if err != nil {
		err = fmt.Errorf("failed loading remote cart with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		metrics.Reconciliations.WithLabelValues("cart", "failure").Inc()
		return response.Cart{}, err
	}
	logger.Trace().Int(log.KeyCartItemsCount, len(remoteItems)).Msg("loaded remote cart")

	merged := reconcile.Union(remoteItems, local, store.Item.Key, keepLargerQuantity)

	logger = logger.With().Str(log.KeyProcess, "writing merged cart").Logger()
	logger.Info().Int(log.KeyCartItemsCount, len(merged)).Msg("writing merged cart")
	cart := store.Open(c, remote).Mirror(v.Cookie)
	if err = cart.Replace(c, merged); err != nil {
		err = fmt.Errorf("failed writing merged cart with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		metrics.Reconciliations.WithLabelValues("cart", "failure").Inc()
		return response.Cart{}, err
	}
	logger.Info().Msg("wrote merged cart")

	logger = logger.With().Str(log.KeyProcess, "erasing local storage").Logger()
	logger.Info().Msg("erasing local storage")
	if err = localStorage.Erase(c); err != nil {
		err = fmt.Errorf("failed erasing local storage with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		metrics.Reconciliations.WithLabelValues("cart", "failure").Inc()
		return response.FromStore(cart), err
	}
	logger.Info().Msg("erased local storage")

	s.gate.Mark(v.mergeKey())
	metrics.Reconciliations.WithLabelValues("cart", "success").Inc()
	return response.FromStore(cart), nil
}
