package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gosimple/slug"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/common/validate"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
	productErrors "github.com/Alturino/storefront/product/internal/errors"
	"github.com/Alturino/storefront/product/pkg/request"
)

func upsertParams(product request.Product) repository.UpsertProductParams {
	productSlug := product.Slug
	if productSlug == "" {
		productSlug = slug.Make(product.Name)
	}
	params := repository.UpsertProductParams{
		Slug:        productSlug,
		Name:        product.Name,
		Description: product.Description,
		Category:    slug.Make(product.Category),
		Subcategory: slug.Make(product.Subcategory),
		Price:       repository.NumericFromDecimal(product.Price),
		Quantity:    product.Quantity,
		Rating:      product.Rating,
		ReviewCount: product.ReviewCount,
		Images:      orEmpty(product.Images),
		Colors:      orEmpty(product.Colors),
		Sizes:       orEmpty(product.Sizes),
	}
	if product.CompareAtPrice != nil {
		params.CompareAtPrice = repository.NumericFromDecimal(*product.CompareAtPrice)
	} else {
		params.CompareAtPrice = pgtype.Numeric{}
	}
	return params
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Seed upserts every product keyed by slug. Invalid entries are skipped and
// reported together.
func (svc *ProductService) Seed(c context.Context, products []request.Product) (int, error) {
	c, span := otel.Tracer.Start(c, "ProductService Seed")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService Seed").
		Str(log.KeyProcess, "seeding products").
		Int("count", len(products)).
		Logger()

	logger.Info().Msg("seeding products")
	var errs []error
	seeded := 0
	for i, product := range products {
		if err := validate.Get().StructCtx(c, product); err != nil {
			errs = append(errs, fmt.Errorf("product index=%d: %w", i, errors.Join(productErrors.ErrInvalidProduct, err)))
			continue
		}

		params := upsertParams(product)
		lg := logger.With().Str(log.KeySlug, params.Slug).Logger()
		if _, err := svc.queries.UpsertProduct(c, params); err != nil {
			err = fmt.Errorf("failed upserting product slug=%s with error=%w", params.Slug, err)
			lg.Error().Err(err).Msg(err.Error())
			errs = append(errs, err)
			continue
		}
		lg.Trace().Msg("upserted product")
		seeded++
	}

	if err := errors.Join(errs...); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Int("seeded", seeded).Msg("seeded products with errors")
		return seeded, err
	}
	logger.Info().Int("seeded", seeded).Msg("seeded products")
	return seeded, nil
}
