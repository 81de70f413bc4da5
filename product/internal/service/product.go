package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/product/pkg/catalog"
	"github.com/Alturino/storefront/product/pkg/request"
	"github.com/Alturino/storefront/product/pkg/response"
)

type ProductService struct {
	queries *repository.Queries
	catalog *catalog.Catalog
}

func NewProductService(queries *repository.Queries, catalog *catalog.Catalog) *ProductService {
	return &ProductService{queries: queries, catalog: catalog}
}

func limit(requested int) int32 {
	switch {
	case requested <= 0:
		return request.DefaultLimit
	case requested > request.MaxLimit:
		return request.MaxLimit
	default:
		return int32(requested)
	}
}

func responses(products []repository.Product) []response.Product {
	res := make([]response.Product, 0, len(products))
	for _, product := range products {
		res = append(res, product.Response())
	}
	return res
}

func (svc *ProductService) FindProducts(
	c context.Context,
	param request.FindProducts,
) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProducts").
		Str(log.KeyProcess, "finding products").
		Object(log.KeyRequest, param).
		Logger()

	logger.Trace().Msg("finding products")
	products, err := svc.queries.FindProducts(c, repository.FindProductsParams{
		Category:    param.Category,
		Subcategory: param.Subcategory,
		MaxItems:    limit(param.Limit),
		Skip:        int32(param.Offset),
	})
	if err != nil {
		err = fmt.Errorf("failed finding products with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Int("count", len(products)).Msg("found products")

	return responses(products), nil
}

func (svc *ProductService) SearchProducts(
	c context.Context,
	param request.SearchProducts,
) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService SearchProducts")
	defer span.End()

	query := strings.TrimSpace(param.Query)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService SearchProducts").
		Str(log.KeyProcess, "searching products").
		Str(log.KeyQuery, query).
		Logger()

	if query == "" {
		return []response.Product{}, nil
	}

	logger.Trace().Msg("searching products")
	products, err := svc.queries.SearchProducts(c, repository.SearchProductsParams{
		Query:    query,
		MaxItems: limit(param.Limit),
	})
	if err != nil {
		err = fmt.Errorf("failed searching products with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Int("count", len(products)).Msg("searched products")

	return responses(products), nil
}

func (svc *ProductService) FindProductBySlug(c context.Context, slug string) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductBySlug")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductBySlug").
		Str(log.KeySlug, slug).
		Logger()

	product, err := svc.catalog.FindProductBySlug(logger.WithContext(c), slug)
	if err != nil {
		otel.RecordError(err, span)
		return response.Product{}, err
	}
	return product, nil
}

func (svc *ProductService) FindProductById(c context.Context, id uuid.UUID) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductById").
		Str(log.KeyProductID, id.String()).
		Logger()

	product, err := svc.catalog.FindProductById(logger.WithContext(c), id)
	if err != nil {
		otel.RecordError(err, span)
		return response.Product{}, err
	}
	return product, nil
}

// FindCategories groups subcategories under their category, both sorted.
func (svc *ProductService) FindCategories(c context.Context) ([]response.Category, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindCategories")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindCategories").
		Str(log.KeyProcess, "finding categories").
		Logger()

	logger.Trace().Msg("finding categories")
	rows, err := svc.queries.FindCategories(c)
	if err != nil {
		err = fmt.Errorf("failed finding categories with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Trace().Msg("found categories")

	return groupCategories(rows), nil
}

func groupCategories(rows []repository.FindCategoriesRow) []response.Category {
	categories := []response.Category{}
	for _, row := range rows {
		if len(categories) == 0 || categories[len(categories)-1].Name != row.Category {
			categories = append(categories, response.Category{Name: row.Category, Subcategories: []string{}})
		}
		if row.Subcategory == "" {
			continue
		}
		last := &categories[len(categories)-1]
		last.Subcategories = append(last.Subcategories, row.Subcategory)
	}
	return categories
}
