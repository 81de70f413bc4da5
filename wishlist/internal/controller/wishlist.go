package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/common"
	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	commonRequest "github.com/Alturino/storefront/internal/common/request"
	"github.com/Alturino/storefront/internal/common/response"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/product/pkg/catalog"
	"github.com/Alturino/storefront/wishlist/internal/service"
	"github.com/Alturino/storefront/wishlist/pkg/request"
)

type WishlistController struct {
	service *service.WishlistService
}

func AttachWishlistController(router *mux.Router, service *service.WishlistService) {
	controller := WishlistController{service: service}

	wishlists := router.PathPrefix("/wishlists").Subrouter()
	wishlists.HandleFunc("", controller.FindWishlist).Methods(http.MethodGet)
	wishlists.HandleFunc("", controller.ClearWishlist).Methods(http.MethodDelete)
	wishlists.HandleFunc("/items", controller.AddItem).Methods(http.MethodPost)
	wishlists.HandleFunc("/items/{productId}", controller.RemoveItem).Methods(http.MethodDelete)
	wishlists.HandleFunc("/items/{productId}/toggle", controller.Toggle).Methods(http.MethodPost)
	wishlists.HandleFunc("/reconcile", controller.Reconcile).Methods(http.MethodPost)
}

func visitor(r *http.Request) service.Visitor {
	c := r.Context()
	v := service.Visitor{SessionID: common.SessionIDFromContext(c)}
	if userId, err := common.UserIdFromJwtToken(c); err == nil {
		v.SignedIn = true
		v.UserID = userId
		v.SignInID, _, _ = common.TokenIdAndExpiry(c)
	}
	return v
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, commonErrors.ErrUnauthenticated):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func productIdFromPath(r *http.Request) (uuid.UUID, error) {
	productId, err := uuid.Parse(mux.Vars(r)["productId"])
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed parsing productId=%s with error=%w", mux.Vars(r)["productId"], err)
	}
	return productId, nil
}

func writeWishlist(w http.ResponseWriter, r *http.Request, message string, data map[string]interface{}) {
	response.WriteJsonResponse(r.Context(), w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    message,
		"data":       data,
	})
}

func (ctrl WishlistController) FindWishlist(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "WishlistController FindWishlist")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "WishlistController FindWishlist").Logger()
	c = logger.WithContext(c)

	wishlist, err := ctrl.service.FindWishlist(c, visitor(r))
	if err != nil {
		otel.RecordError(err, span)
		response.WriteErrorResponse(c, w, statusCode(err), err)
		return
	}
	writeWishlist(w, r.WithContext(c), "found wishlist", map[string]interface{}{"wishlist": wishlist})
}

func (ctrl WishlistController) AddItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "WishlistController AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "WishlistController AddItem").
		Str(log.KeyProcess, "decoding request body").
		Logger()

	reqBody := request.AddItem{}
	if err := commonRequest.DecodeAndValidate(c, r, &reqBody); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusBadRequest, err)
		return
	}

	c = logger.WithContext(c)
	wishlist, err := ctrl.service.AddItem(c, visitor(r), reqBody.ProductID)
	if err != nil {
		otel.RecordError(err, span)
		response.WriteErrorResponse(c, w, statusCode(err), err)
		return
	}
	writeWishlist(w, r.WithContext(c), "added product to wishlist", map[string]interface{}{"wishlist": wishlist})
}

func (ctrl WishlistController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "WishlistController RemoveItem")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "WishlistController RemoveItem").Logger()

	productId, err := productIdFromPath(r)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusBadRequest, err)
		return
	}

	c = logger.WithContext(c)
	wishlist, err := ctrl.service.RemoveItem(c, visitor(r), productId)
	if err != nil {
		otel.RecordError(err, span)
		response.WriteErrorResponse(c, w, statusCode(err), err)
		return
	}
	writeWishlist(w, r.WithContext(c), "removed product from wishlist", map[string]interface{}{"wishlist": wishlist})
}

func (ctrl WishlistController) Toggle(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "WishlistController Toggle")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "WishlistController Toggle").Logger()

	productId, err := productIdFromPath(r)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusBadRequest, err)
		return
	}

	c = logger.WithContext(c)
	wishlist, listed, err := ctrl.service.Toggle(c, visitor(r), productId)
	if err != nil {
		otel.RecordError(err, span)
		response.WriteErrorResponse(c, w, statusCode(err), err)
		return
	}
	writeWishlist(w, r.WithContext(c), "toggled product", map[string]interface{}{
		"wishlist": wishlist,
		"listed":   listed,
	})
}

func (ctrl WishlistController) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "WishlistController ClearWishlist")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "WishlistController ClearWishlist").Logger()
	c = logger.WithContext(c)

	if err := ctrl.service.ClearWishlist(c, visitor(r)); err != nil {
		otel.RecordError(err, span)
		response.WriteErrorResponse(c, w, statusCode(err), err)
		return
	}
	writeWishlist(w, r.WithContext(c), "cleared wishlist", map[string]interface{}{})
}

func (ctrl WishlistController) Reconcile(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "WishlistController Reconcile")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "WishlistController Reconcile").Logger()
	c = logger.WithContext(c)

	wishlist, err := ctrl.service.Reconcile(c, visitor(r))
	if err != nil {
		otel.RecordError(err, span)
		response.WriteErrorResponse(c, w, statusCode(err), err)
		return
	}
	writeWishlist(w, r.WithContext(c), "merged local wishlist", map[string]interface{}{"wishlist": wishlist})
}
