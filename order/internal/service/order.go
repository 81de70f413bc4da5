package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Alturino/storefront/internal/common/constants"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/metrics"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
	orderErrors "github.com/Alturino/storefront/order/internal/errors"
	"github.com/Alturino/storefront/order/pkg/request"
	"github.com/Alturino/storefront/order/pkg/response"
	productResponse "github.com/Alturino/storefront/product/pkg/response"
	userResponse "github.com/Alturino/storefront/user/pkg/response"
)

type ProductFinder interface {
	FindProductsByIds(c context.Context, ids []uuid.UUID) ([]productResponse.Product, error)
}

type OrderService struct {
	pool     *pgxpool.Pool
	queries  *repository.Queries
	cache    *redis.Client
	products ProductFinder
	currency string
}

func NewOrderService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
	products ProductFinder,
	currency string,
) *OrderService {
	return &OrderService{pool: pool, queries: queries, cache: cache, products: products, currency: currency}
}

// Total is Σ price×quantity of the priced lines.
func Total(items []response.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// price rebuilds the submitted lines from the catalog. Name, price, slug and
// image always come from the catalog; only the product, variant and quantity
// are taken from the client.
func (s *OrderService) price(c context.Context, items []request.OrderItem) ([]response.OrderItem, error) {
	ids := make([]uuid.UUID, 0, len(items))
	seen := map[uuid.UUID]bool{}
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	products, err := s.products.FindProductsByIds(c, ids)
	if err != nil {
		return nil, fmt.Errorf("failed finding ordered products with error=%w", err)
	}
	byId := make(map[uuid.UUID]productResponse.Product, len(products))
	for _, product := range products {
		byId[product.ID] = product
	}

	priced := make([]response.OrderItem, 0, len(items))
	for _, item := range items {
		product, ok := byId[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("failed pricing productId=%s with error=%w", item.ProductID, orderErrors.ErrUnknownProduct)
		}
		priced = append(priced, response.OrderItem{
			Name:      product.Name,
			Image:     product.Image(),
			Slug:      product.Slug,
			Color:     item.Color,
			Size:      item.Size,
			Price:     product.Price,
			ProductID: product.ID,
			Quantity:  item.Quantity,
		})
	}
	return priced, nil
}

func (s *OrderService) CreateOrder(
	c context.Context,
	userId uuid.UUID,
	param request.Checkout,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService CreateOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService CreateOrder").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyPaymentMethod, param.PaymentMethod).
		Logger()

	if len(param.Items) == 0 {
		err := orderErrors.ErrEmptyOrder
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "pricing order items").Logger()
	logger.Trace().Msg("pricing order items")
	priced, err := s.price(c, param.Items)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "encoding order items").Logger()
	logger.Trace().Msg("encoding order items")
	items, err := json.Marshal(priced)
	if err != nil {
		err = fmt.Errorf("failed encoding order items with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	total := Total(priced)
	logger = logger.With().Str(log.KeyCartTotal, total.String()).Logger()
	logger.Trace().Msg("encoded order items")

	orderId := uuid.New()
	logger = logger.With().
		Str(log.KeyOrderID, orderId.String()).
		Str(log.KeyProcess, "recording order").
		Logger()
	logger.Info().Msg("recording order")
	order, err := repository.WithTx(c, s.pool, s.queries, func(q *repository.Queries) (repository.Order, error) {
		if _, err := q.FindUserById(c, userId); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return repository.Order{}, orderErrors.ErrUserNotFound
			}
			return repository.Order{}, fmt.Errorf("failed finding userId=%s with error=%w", userId, err)
		}

		order, err := q.InsertOrder(c, repository.InsertOrderParams{
			ID:            orderId,
			UserID:        userId,
			Items:         items,
			Total:         repository.NumericFromDecimal(total),
			Currency:      s.currency,
			PaymentMethod: param.PaymentMethod,
			Status:        response.StatusCompleted,
		})
		if err != nil {
			return repository.Order{}, fmt.Errorf("failed inserting order with error=%w", err)
		}

		if param.PaymentMethod != request.PaymentMethodWallet {
			return order, nil
		}

		_, err = q.DebitWalletBalance(c, repository.DebitWalletBalanceParams{
			Amount: repository.NumericFromDecimal(total),
			ID:     userId,
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return repository.Order{}, orderErrors.ErrInsufficientBalance
			}
			return repository.Order{}, fmt.Errorf("failed debiting wallet with error=%w", err)
		}
		_, err = q.InsertWalletTransaction(c, repository.InsertWalletTransactionParams{
			UserID:  userId,
			Kind:    userResponse.WalletKindPayment,
			Amount:  repository.NumericFromDecimal(total),
			OrderID: uuid.NullUUID{UUID: orderId, Valid: true},
		})
		if err != nil {
			return repository.Order{}, fmt.Errorf("failed inserting wallet transaction with error=%w", err)
		}
		return order, nil
	})
	if err != nil {
		err = fmt.Errorf("failed recording order with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	metrics.OrdersRecorded.WithLabelValues(param.PaymentMethod).Inc()
	logger.Info().Msg("recorded order")

	res, err := order.Response()
	if err != nil {
		err = fmt.Errorf("failed mapping order with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	s.publish(logger.WithContext(c), res)

	return res, nil
}

// publish announces a recorded order. The order is already durable, so a
// failure here is only logged.
func (s *OrderService) publish(c context.Context, order response.Order) {
	c, span := otel.Tracer.Start(c, "OrderService publish")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService publish").
		Str(log.KeyProcess, "publishing order created").
		Logger()

	if s.cache == nil {
		return
	}

	logger.Trace().Msg("publishing order created")
	payload, err := json.Marshal(order)
	if err != nil {
		err = fmt.Errorf("failed encoding order created with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	if err = s.cache.Publish(c, constants.ChannelOrderCreated, payload).Err(); err != nil {
		err = fmt.Errorf("failed publishing order created with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Trace().Msg("published order created")
}

func (s *OrderService) FindOrders(c context.Context, userId uuid.UUID) ([]response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrders").
		Str(log.KeyProcess, "finding orders by userId").
		Str(log.KeyUserID, userId.String()).
		Logger()

	logger.Info().Msg("finding orders")
	orders, err := s.queries.FindOrdersByUserId(c, userId)
	if err != nil {
		err = fmt.Errorf("failed finding orders by userId=%s with error=%w", userId, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Int("count", len(orders)).Msg("found orders")

	res := make([]response.Order, 0, len(orders))
	for _, order := range orders {
		mapped, err := order.Response()
		if err != nil {
			err = fmt.Errorf("failed mapping orderId=%s with error=%w", order.ID, err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		res = append(res, mapped)
	}
	return res, nil
}

func (s *OrderService) FindOrderById(
	c context.Context,
	param request.FindOrderById,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrderById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrderById").
		Str(log.KeyProcess, "finding order by id").
		Str(log.KeyUserID, param.UserId.String()).
		Str(log.KeyOrderID, param.OrderId.String()).
		Logger()

	logger.Info().Msg("finding order by id")
	order, err := s.queries.FindOrderById(
		c,
		repository.FindOrderByIdParams{ID: param.OrderId, UserID: param.UserId},
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = orderErrors.ErrOrderNotFound
		}
		err = fmt.Errorf("failed finding order by id with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("found order by id")

	res, err := order.Response()
	if err != nil {
		err = fmt.Errorf("failed mapping order with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	return res, nil
}
