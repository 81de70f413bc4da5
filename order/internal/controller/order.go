package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/common"
	commonRequest "github.com/Alturino/storefront/internal/common/request"
	"github.com/Alturino/storefront/internal/common/response"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
	orderErrors "github.com/Alturino/storefront/order/internal/errors"
	"github.com/Alturino/storefront/order/internal/service"
	"github.com/Alturino/storefront/order/pkg/request"
)

type OrderController struct {
	service *service.OrderService
}

// AttachOrderController mounts the order routes behind auth, which must reject
// anonymous requests.
func AttachOrderController(router *mux.Router, service *service.OrderService, auth mux.MiddlewareFunc) {
	controller := OrderController{service: service}

	orders := router.PathPrefix("/orders").Subrouter()
	orders.Use(auth)
	orders.HandleFunc("", controller.FindOrders).Methods(http.MethodGet)
	orders.HandleFunc("/checkout", controller.CreateOrder).Methods(http.MethodPost)
	orders.HandleFunc("/{orderId}", controller.FindOrderById).Methods(http.MethodGet)
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, orderErrors.ErrEmptyOrder):
		return http.StatusBadRequest
	case errors.Is(err, orderErrors.ErrInsufficientBalance), errors.Is(err, orderErrors.ErrUnknownProduct):
		return http.StatusUnprocessableEntity
	case errors.Is(err, orderErrors.ErrOrderNotFound), errors.Is(err, orderErrors.ErrUserNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (ctrl OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController CreateOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController CreateOrder").
		Str(log.KeyProcess, "decoding request body").
		Logger()

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusUnauthorized, err)
		return
	}

	logger.Trace().Msg("decoding request body")
	reqBody := request.Checkout{}
	if err = commonRequest.DecodeAndValidate(c, r, &reqBody); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusBadRequest, err)
		return
	}
	logger.Trace().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "creating order").Logger()
	logger.Info().Msg("creating order")
	order, err := ctrl.service.CreateOrder(logger.WithContext(c), userId, reqBody)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, statusCode(err), err)
		return
	}
	logger.Info().Str(log.KeyOrderID, order.ID.String()).Msg("created order")

	response.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "order recorded",
		"data":       map[string]interface{}{"order": order},
	})
}

func (ctrl OrderController) FindOrders(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindOrders").
		Str(log.KeyProcess, "finding orders").
		Logger()

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusUnauthorized, err)
		return
	}

	logger.Info().Msg("finding orders")
	orders, err := ctrl.service.FindOrders(logger.WithContext(c), userId)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, statusCode(err), err)
		return
	}
	logger.Info().Msg("found orders")

	response.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "found orders",
		"data":       map[string]interface{}{"orders": orders},
	})
}

func (ctrl OrderController) FindOrderById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindOrderById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindOrderById").
		Str(log.KeyProcess, "validating orderId").
		Logger()

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusUnauthorized, err)
		return
	}

	logger.Trace().Msg("validating orderId")
	orderId, err := uuid.Parse(mux.Vars(r)["orderId"])
	if err != nil {
		err = fmt.Errorf("failed validating orderId=%s with error=%w", mux.Vars(r)["orderId"], err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusBadRequest, err)
		return
	}
	logger.Trace().Msg("validated orderId")

	logger = logger.With().Str(log.KeyProcess, "finding order").Logger()
	order, err := ctrl.service.FindOrderById(
		logger.WithContext(c),
		request.FindOrderById{UserId: userId, OrderId: orderId},
	)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, statusCode(err), err)
		return
	}

	response.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "found order",
		"data":       map[string]interface{}{"order": order},
	})
}
