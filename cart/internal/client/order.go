package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	commonHttp "github.com/Alturino/storefront/internal/common/http"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
	orderRequest "github.com/Alturino/storefront/order/pkg/request"
	orderResponse "github.com/Alturino/storefront/order/pkg/response"
)

// OrderClient calls order-service on behalf of the signed-in shopper.
type OrderClient struct {
	client    *http.Client
	transport http.RoundTripper
	baseURL   string
}

func NewOrderClient(baseURL string, transport http.RoundTripper) OrderClient {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return OrderClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		transport: transport,
		client:    &http.Client{Transport: otelhttp.NewTransport(transport)},
	}
}

func (o OrderClient) CloseIdleConnections() {
	if closer, ok := o.transport.(interface{ CloseIdleConnections() }); ok {
		closer.CloseIdleConnections()
	}
}

type envelope struct {
	Data       map[string]json.RawMessage `json:"data"`
	Status     string                     `json:"status"`
	Message    string                     `json:"message"`
	StatusCode int                        `json:"statusCode"`
}

// Checkout records the order. A non-200 answer is returned as an error
// carrying the message order-service replied with.
func (o OrderClient) Checkout(
	c context.Context,
	token string,
	param orderRequest.Checkout,
) (orderResponse.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderClient Checkout")
	defer span.End()

	requestId := log.RequestIDFromContext(c)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderClient Checkout").
		Str(log.KeyPaymentMethod, param.PaymentMethod).
		Int(log.KeyCartItemsCount, len(param.Items)).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "creating checkout request to order-service").Logger()
	logger.Info().Msg("creating checkout request to order-service")
	body, err := json.Marshal(param)
	if err != nil {
		err = fmt.Errorf("failed marshaling checkout with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}
	req, err := http.NewRequestWithContext(c, http.MethodPost, o.baseURL+"/orders/checkout", bytes.NewReader(body))
	if err != nil {
		err = fmt.Errorf("failed creating request to order-service with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}
	req.Header.Set(commonHttp.HeaderContentType, commonHttp.HeaderValueJson)
	req.Header.Set(commonHttp.HeaderAuthorization, "Bearer "+token)
	if requestId != "" {
		req.Header.Set(commonHttp.HeaderRequestID, requestId)
	}
	logger.Info().Msg("created checkout request to order-service")

	logger = logger.With().Str(log.KeyProcess, "sending checkout request to order-service").Logger()
	logger.Info().Msg("sending checkout request to order-service")
	resp, err := o.client.Do(req)
	if err != nil {
		err = fmt.Errorf("failed sending checkout to order-service with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}
	defer resp.Body.Close()
	logger.Info().Msg("sent checkout request to order-service")

	logger = logger.With().Str(log.KeyProcess, "decoding checkout response").Logger()
	respBody := envelope{}
	if err = json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		err = fmt.Errorf("failed decoding order-service response with status code=%d error=%w", resp.StatusCode, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, errors.Join(commonErrors.ErrUpstreamFailure, err)
	}
	if resp.StatusCode != http.StatusOK {
		err = &UpstreamError{StatusCode: resp.StatusCode, Message: respBody.Message}
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}

	order := orderResponse.Order{}
	if err = json.Unmarshal(respBody.Data["order"], &order); err != nil {
		err = fmt.Errorf("failed decoding order with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, errors.Join(commonErrors.ErrUpstreamFailure, err)
	}
	logger.Info().Str(log.KeyOrderID, order.ID.String()).Msg("recorded order")

	return order, nil
}

type UpstreamError struct {
	Message    string
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return e.Message
}

func (e *UpstreamError) Unwrap() error {
	return commonErrors.ErrUpstreamFailure
}
