package listener

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/common/constants"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/metrics"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/order/pkg/response"
)

// Notifier is called once per recorded order.
type Notifier func(c context.Context, order response.Order)

// LogNotice writes the order confirmation notice to the logger in c.
func LogNotice(c context.Context, order response.Order) {
	zerolog.Ctx(c).Info().
		Str(log.KeyOrderID, order.ID.String()).
		Str(log.KeyUserID, order.UserId.String()).
		Str(log.KeyPaymentMethod, order.PaymentMethod).
		Str(log.KeyCartTotal, order.Total.StringFixed(2)+" "+order.Currency).
		Int(log.KeyCartItemsCount, len(order.Items)).
		Msg("order confirmed")
}

type Listener struct {
	cache  *redis.Client
	notify Notifier
}

func NewListener(cache *redis.Client, notify Notifier) *Listener {
	return &Listener{cache: cache, notify: notify}
}

// Listen subscribes to order created events and blocks until c is cancelled.
func (l *Listener) Listen(c context.Context) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Listener Listen").
		Str(log.KeyProcess, "subscribing order created").
		Logger()

	logger.Info().Msg("subscribing order created")
	sub := l.cache.Subscribe(c, constants.ChannelOrderCreated)
	defer sub.Close()
	if _, err := sub.Receive(c); err != nil {
		err = fmt.Errorf("failed subscribing %s with error=%w", constants.ChannelOrderCreated, err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("subscribed order created")

	messages := sub.Channel()
	for {
		select {
		case <-c.Done():
			logger.Info().Msg("stopped listening order created")
			return nil
		case message, ok := <-messages:
			if !ok {
				return nil
			}
			l.handle(c, message.Payload)
		}
	}
}

func (l *Listener) handle(c context.Context, payload string) {
	c, span := otel.Tracer.Start(c, "Listener handle")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Listener handle").
		Str(log.KeyProcess, "decoding order created").
		Logger()

	logger.Trace().Msg("decoding order created")
	order := response.Order{}
	if err := json.Unmarshal([]byte(payload), &order); err != nil {
		err = fmt.Errorf("failed decoding order created with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		metrics.OrderNotices.WithLabelValues("invalid").Inc()
		return
	}
	logger.Trace().Str(log.KeyOrderID, order.ID.String()).Msg("decoded order created")

	l.notify(logger.WithContext(c), order)
	metrics.OrderNotices.WithLabelValues("notified").Inc()
}
