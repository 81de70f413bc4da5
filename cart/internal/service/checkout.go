package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	cartErrors "github.com/Alturino/storefront/cart/internal/errors"
	"github.com/Alturino/storefront/cart/pkg/request"
	"github.com/Alturino/storefront/cart/pkg/store"
	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/metrics"
	"github.com/Alturino/storefront/internal/otel"
	orderRequest "github.com/Alturino/storefront/order/pkg/request"
	orderResponse "github.com/Alturino/storefront/order/pkg/response"
)

type CheckoutState string

const (
	StateIdle        CheckoutState = "idle"
	StatePaying      CheckoutState = "paying"
	StateSuccess     CheckoutState = "success"
	StateFailure     CheckoutState = "failure"
	StateCartCleared CheckoutState = "cart_cleared"
)

var transitions = map[CheckoutState][]CheckoutState{
	StateIdle:    {StatePaying},
	StatePaying:  {StateSuccess, StateFailure},
	StateSuccess: {StateCartCleared},
	StateFailure: {StateIdle},
}

// Checkout tracks one payment attempt. A new attempt starts Idle.
type Checkout struct {
	state   CheckoutState
	history []CheckoutState
}

func NewCheckout() *Checkout {
	return &Checkout{state: StateIdle, history: []CheckoutState{StateIdle}}
}

func (ch *Checkout) State() CheckoutState {
	return ch.state
}

func (ch *Checkout) History() []CheckoutState {
	return slices.Clone(ch.history)
}

func (ch *Checkout) transition(to CheckoutState) error {
	if !slices.Contains(transitions[ch.state], to) {
		return fmt.Errorf("%w from=%s to=%s", cartErrors.ErrInvalidTransition, ch.state, to)
	}
	ch.state = to
	ch.history = append(ch.history, to)
	return nil
}

// Checkout records the current cart as an order and clears the cart once the
// order is stored. A failed attempt returns to Idle with the cart intact.
func (s *CartService) Checkout(
	c context.Context,
	v Visitor,
	param request.Checkout,
) (orderResponse.Order, *Checkout, error) {
	c, span := otel.Tracer.Start(c, "CartService Checkout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService Checkout").
		Str(log.KeyPaymentMethod, param.PaymentMethod).
		Logger()

	checkout := NewCheckout()
	if !v.SignedIn {
		err := commonErrors.ErrUnauthenticated
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, checkout, err
	}
	logger = logger.With().Str(log.KeyUserID, v.UserID.String()).Logger()
	c = logger.WithContext(c)

	logger = logger.With().Str(log.KeyProcess, "loading cart").Logger()
	logger.Info().Msg("loading cart")
	cart := s.open(c, v)
	if cart.IsEmpty() {
		err := cartErrors.ErrEmptyCart
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, checkout, err
	}
	logger.Info().Int(log.KeyCartItemsCount, cart.ItemCount()).Msg("loaded cart")

	if err := checkout.transition(StatePaying); err != nil {
		return orderResponse.Order{}, checkout, err
	}

	logger = logger.With().Str(log.KeyProcess, "recording order").Logger()
	logger.Info().Msg("recording order")
	order, err := s.orders.Checkout(c, v.Token, snapshot(cart.Items(), param.PaymentMethod))
	if err != nil {
		_ = checkout.transition(StateFailure)
		_ = checkout.transition(StateIdle)
		metrics.CheckoutsFailed.Inc()
		err = fmt.Errorf("failed recording order with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Str(log.KeyCheckoutState, string(checkout.State())).Msg(err.Error())
		return orderResponse.Order{}, checkout, err
	}
	_ = checkout.transition(StateSuccess)
	logger.Info().Str(log.KeyOrderID, order.ID.String()).Msg("recorded order")

	logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
	logger.Info().Msg("clearing cart")
	if err = cart.ClearCart(c); err != nil {
		// the order is already stored, the shopper still gets the confirmation
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg("failed clearing cart after order was recorded")
		return order, checkout, nil
	}
	_ = checkout.transition(StateCartCleared)
	logger.Info().Str(log.KeyCheckoutState, string(checkout.State())).Msg("cleared cart")

	return order, checkout, nil
}

// snapshot copies only the fields an order keeps from each cart line.
func snapshot(items []store.Item, paymentMethod string) orderRequest.Checkout {
	orderItems := make([]orderRequest.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, orderRequest.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
			Slug:      item.Slug,
			Color:     item.Color,
			Size:      item.Size,
		})
	}
	return orderRequest.Checkout{PaymentMethod: paymentMethod, Items: orderItems}
}
