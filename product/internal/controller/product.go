package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/common/response"
	"github.com/Alturino/storefront/internal/common/validate"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
	productErrors "github.com/Alturino/storefront/product/internal/errors"
	"github.com/Alturino/storefront/product/internal/service"
	"github.com/Alturino/storefront/product/pkg/request"
)

type ProductController struct {
	service *service.ProductService
}

func AttachProductController(router *mux.Router, service *service.ProductService) {
	controller := ProductController{service: service}

	router.HandleFunc("/categories", controller.FindCategories).Methods(http.MethodGet)

	products := router.PathPrefix("/products").Subrouter()
	products.HandleFunc("", controller.FindProducts).Methods(http.MethodGet)
	products.HandleFunc("/search", controller.SearchProducts).Methods(http.MethodGet)
	products.HandleFunc("/slug/{slug}", controller.FindProductBySlug).Methods(http.MethodGet)
	products.HandleFunc("/{productId}", controller.FindProductById).Methods(http.MethodGet)
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("failed parsing %s=%s with error=%w", key, raw, err)
	}
	return n, nil
}

func statusCode(err error) int {
	if errors.Is(err, productErrors.ErrProductNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (ctrl ProductController) FindProducts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindProducts").
		Str(log.KeyProcess, "validating query").
		Logger()

	param := request.FindProducts{
		Category:    r.URL.Query().Get("category"),
		Subcategory: r.URL.Query().Get("subcategory"),
	}
	var err error
	if param.Limit, err = queryInt(r, "limit"); err == nil {
		param.Offset, err = queryInt(r, "offset")
	}
	if err == nil {
		err = validate.Get().StructCtx(c, param)
	}
	if err != nil {
		err = fmt.Errorf("failed validating query with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusBadRequest, err)
		return
	}

	products, err := ctrl.service.FindProducts(logger.WithContext(c), param)
	if err != nil {
		otel.RecordError(err, span)
		response.WriteErrorResponse(c, w, statusCode(err), err)
		return
	}

	response.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "found products",
		"data":       map[string]interface{}{"products": products},
	})
}

func (ctrl ProductController) SearchProducts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController SearchProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController SearchProducts").
		Str(log.KeyProcess, "validating query").
		Logger()

	param := request.SearchProducts{Query: r.URL.Query().Get("q")}
	var err error
	if param.Limit, err = queryInt(r, "limit"); err == nil {
		err = validate.Get().StructCtx(c, param)
	}
	if err != nil {
		err = fmt.Errorf("failed validating query with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusBadRequest, err)
		return
	}

	products, err := ctrl.service.SearchProducts(logger.WithContext(c), param)
	if err != nil {
		otel.RecordError(err, span)
		response.WriteErrorResponse(c, w, statusCode(err), err)
		return
	}

	response.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "searched products",
		"data":       map[string]interface{}{"products": products, "query": param.Query},
	})
}

func (ctrl ProductController) FindProductBySlug(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindProductBySlug")
	defer span.End()

	slug := mux.Vars(r)["slug"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindProductBySlug").
		Str(log.KeySlug, slug).
		Logger()

	product, err := ctrl.service.FindProductBySlug(logger.WithContext(c), slug)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, statusCode(err), err)
		return
	}

	response.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "found product",
		"data":       map[string]interface{}{"product": product},
	})
}

func (ctrl ProductController) FindProductById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindProductById").
		Str(log.KeyProcess, "validating productId").
		Logger()

	productId, err := uuid.Parse(mux.Vars(r)["productId"])
	if err != nil {
		err = fmt.Errorf("failed validating productId=%s with error=%w", mux.Vars(r)["productId"], err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusBadRequest, err)
		return
	}

	product, err := ctrl.service.FindProductById(logger.WithContext(c), productId)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, statusCode(err), err)
		return
	}

	response.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "found product",
		"data":       map[string]interface{}{"product": product},
	})
}

func (ctrl ProductController) FindCategories(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindCategories")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "ProductController FindCategories").Logger()

	categories, err := ctrl.service.FindCategories(logger.WithContext(c))
	if err != nil {
		otel.RecordError(err, span)
		response.WriteErrorResponse(c, w, statusCode(err), err)
		return
	}

	response.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "found categories",
		"data":       map[string]interface{}{"categories": categories},
	})
}
