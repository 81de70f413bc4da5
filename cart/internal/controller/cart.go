package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/cart/internal/client"
	cartErrors "github.com/Alturino/storefront/cart/internal/errors"
	"github.com/Alturino/storefront/cart/internal/persistence"
	"github.com/Alturino/storefront/cart/internal/service"
	"github.com/Alturino/storefront/cart/pkg/request"
	cartResponse "github.com/Alturino/storefront/cart/pkg/response"
	"github.com/Alturino/storefront/internal/common"
	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	commonRequest "github.com/Alturino/storefront/internal/common/request"
	"github.com/Alturino/storefront/internal/common/response"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
)

type CartController struct {
	service      *service.CartService
	cookieSecure bool
}

func AttachCartController(router *mux.Router, service *service.CartService, cookieSecure bool) {
	controller := CartController{service: service, cookieSecure: cookieSecure}

	carts := router.PathPrefix("/carts").Subrouter()
	carts.HandleFunc("", controller.FindCart).Methods(http.MethodGet)
	carts.HandleFunc("", controller.ClearCart).Methods(http.MethodDelete)
	carts.HandleFunc("/items", controller.AddItem).Methods(http.MethodPost)
	carts.HandleFunc("/items/{productId}", controller.UpdateQuantity).Methods(http.MethodPatch)
	carts.HandleFunc("/items/{productId}", controller.RemoveItem).Methods(http.MethodDelete)
	carts.HandleFunc("/reconcile", controller.Reconcile).Methods(http.MethodPost)
	carts.HandleFunc("/checkout", controller.Checkout).Methods(http.MethodPost)
}

func (ctrl CartController) visitor(w http.ResponseWriter, r *http.Request) service.Visitor {
	c := r.Context()
	guest := persistence.NewCookie(w, r, ctrl.cookieSecure, uuid.Nil)
	v := service.Visitor{
		SessionID:   common.SessionIDFromContext(c),
		Cookie:      guest,
		GuestCookie: guest,
	}
	if userId, err := common.UserIdFromJwtToken(c); err == nil {
		v.SignedIn = true
		v.UserID = userId
		v.Cookie = persistence.NewCookie(w, r, ctrl.cookieSecure, userId)
		v.Token = common.JwtTokenFromContext(c).Raw
		v.SignInID, _, _ = common.TokenIdAndExpiry(c)
	}
	return v
}

func productIdFromPath(r *http.Request) (uuid.UUID, error) {
	productId, err := uuid.Parse(mux.Vars(r)["productId"])
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed parsing productId=%s with error=%w", mux.Vars(r)["productId"], err)
	}
	return productId, nil
}

func (ctrl CartController) FindCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController FindCart")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "CartController FindCart").Logger()
	c = logger.WithContext(c)

	cart := ctrl.service.FindCart(c, ctrl.visitor(w, r.WithContext(c)))

	response.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "found cart",
		"data":       map[string]interface{}{"cart": cart},
	})
}

func (ctrl CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController AddItem").
		Str(log.KeyProcess, "decoding request body").
		Logger()

	logger.Trace().Msg("decoding request body")
	reqBody := request.AddItem{}
	if err := commonRequest.DecodeAndValidate(c, r, &reqBody); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusBadRequest, err)
		return
	}
	logger.Trace().Msg("decoded request body")

	c = logger.WithContext(c)
	cart, err := ctrl.service.AddItem(c, ctrl.visitor(w, r.WithContext(c)), reqBody)
	if err != nil {
		otel.RecordError(err, span)
		response.WriteErrorResponse(c, w, http.StatusInternalServerError, err)
		return
	}

	response.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "added item to cart",
		"data":       map[string]interface{}{"cart": cart},
	})
}

func (ctrl CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController UpdateQuantity")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController UpdateQuantity").
		Str(log.KeyProcess, "parsing productId").
		Logger()

	productId, err := productIdFromPath(r)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusBadRequest, err)
		return
	}

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	reqBody := request.UpdateQuantity{}
	if err = commonRequest.DecodeAndValidate(c, r, &reqBody); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusBadRequest, err)
		return
	}

	c = logger.WithContext(c)
	cart, err := ctrl.service.UpdateQuantity(c, ctrl.visitor(w, r.WithContext(c)), productId, reqBody)
	if err != nil {
		otel.RecordError(err, span)
		response.WriteErrorResponse(c, w, http.StatusInternalServerError, err)
		return
	}

	response.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "updated item quantity",
		"data":       map[string]interface{}{"cart": cart},
	})
}

func (ctrl CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController RemoveItem").
		Str(log.KeyProcess, "parsing productId").
		Logger()

	productId, err := productIdFromPath(r)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusBadRequest, err)
		return
	}

	c = logger.WithContext(c)
	cart, err := ctrl.service.RemoveItem(c, ctrl.visitor(w, r.WithContext(c)), productId)
	if err != nil {
		otel.RecordError(err, span)
		response.WriteErrorResponse(c, w, http.StatusInternalServerError, err)
		return
	}

	response.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "removed item from cart",
		"data":       map[string]interface{}{"cart": cart},
	})
}

func (ctrl CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController ClearCart")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "CartController ClearCart").Logger()
	c = logger.WithContext(c)

	if err := ctrl.service.ClearCart(c, ctrl.visitor(w, r.WithContext(c))); err != nil {
		otel.RecordError(err, span)
		response.WriteErrorResponse(c, w, http.StatusInternalServerError, err)
		return
	}

	response.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "cleared cart",
	})
}

func (ctrl CartController) Reconcile(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController Reconcile")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "CartController Reconcile").Logger()
	c = logger.WithContext(c)

	cart, err := ctrl.service.Reconcile(c, ctrl.visitor(w, r.WithContext(c)))
	if errors.Is(err, commonErrors.ErrUnauthenticated) {
		response.WriteErrorResponse(c, w, http.StatusUnauthorized, err)
		return
	}
	if err != nil {
		otel.RecordError(err, span)
		response.WriteErrorResponse(c, w, http.StatusInternalServerError, err)
		return
	}

	response.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "merged local cart",
		"data":       map[string]interface{}{"cart": cart},
	})
}

func (ctrl CartController) Checkout(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController Checkout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController Checkout").
		Str(log.KeyProcess, "decoding request body").
		Logger()

	reqBody := request.Checkout{}
	if err := commonRequest.DecodeAndValidate(c, r, &reqBody); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusBadRequest, err)
		return
	}

	c = logger.WithContext(c)
	order, checkout, err := ctrl.service.Checkout(c, ctrl.visitor(w, r.WithContext(c)), reqBody)
	if err != nil {
		otel.RecordError(err, span)
		response.WriteErrorResponse(c, w, checkoutStatusCode(err), err)
		return
	}

	response.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "order placed",
		"data":       cartResponse.Checkout{Order: order, State: string(checkout.State())},
	})
}

func checkoutStatusCode(err error) int {
	upstream := &client.UpstreamError{}
	switch {
	case errors.Is(err, commonErrors.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, cartErrors.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.As(err, &upstream) && upstream.StatusCode < http.StatusInternalServerError:
		return upstream.StatusCode
	default:
		return http.StatusBadGateway
	}
}
