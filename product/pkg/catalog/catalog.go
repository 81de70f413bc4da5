// Package catalog reads products from the document store through a Redis
// read-through cache. It is shared by the services that display products.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/common/constants"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/metrics"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
	productErrors "github.com/Alturino/storefront/product/internal/errors"
	"github.com/Alturino/storefront/product/pkg/response"
)

const (
	// BatchSize is the largest id list sent in one product query.
	BatchSize = 10
	CacheTTL  = time.Hour
)

var ErrProductNotFound = productErrors.ErrProductNotFound

type Catalog struct {
	queries *repository.Queries
	cache   *redis.Client
}

func New(queries *repository.Queries, cache *redis.Client) *Catalog {
	return &Catalog{queries: queries, cache: cache}
}

// Chunk splits s into consecutive slices of at most size elements.
func Chunk[T any](s []T, size int) [][]T {
	if size <= 0 {
		size = 1
	}
	chunks := make([][]T, 0, (len(s)+size-1)/size)
	for start := 0; start < len(s); start += size {
		end := min(start+size, len(s))
		chunks = append(chunks, s[start:end])
	}
	return chunks
}

func (cat *Catalog) FindProductById(c context.Context, id uuid.UUID) (response.Product, error) {
	return cat.find(c, fmt.Sprintf(constants.KeyProducts, id), func(c context.Context) (repository.Product, error) {
		return cat.queries.FindProductById(c, id)
	})
}

func (cat *Catalog) FindProductBySlug(c context.Context, slug string) (response.Product, error) {
	return cat.find(c, fmt.Sprintf(constants.KeyProductsSlug, slug), func(c context.Context) (repository.Product, error) {
		return cat.queries.FindProductBySlug(c, slug)
	})
}

func (cat *Catalog) find(
	c context.Context,
	cacheKey string,
	load func(c context.Context) (repository.Product, error),
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "Catalog find")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Catalog find").
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product in cache").Logger()
	logger.Trace().Msg("finding product in cache")
	if product, ok := cat.fromCache(logger.WithContext(c), cacheKey); ok {
		metrics.CatalogCacheLookups.WithLabelValues("hit").Inc()
		logger.Trace().Msg("found product in cache")
		return product, nil
	}
	metrics.CatalogCacheLookups.WithLabelValues("miss").Inc()

	logger = logger.With().Str(log.KeyProcess, "finding product in database").Logger()
	logger.Trace().Msg("finding product in database")
	product, err := load(c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = ErrProductNotFound
		}
		err = fmt.Errorf("failed finding product with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Trace().Msg("found product in database")

	res := product.Response()
	cat.toCache(logger.WithContext(c), res)
	return res, nil
}

func (cat *Catalog) fromCache(c context.Context, cacheKey string) (response.Product, bool) {
	if cat.cache == nil {
		return response.Product{}, false
	}
	logger := zerolog.Ctx(c)

	cached, err := cat.cache.Get(c, cacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Error().Err(err).Msgf("failed reading cache with error=%s", err.Error())
		}
		return response.Product{}, false
	}

	product := response.Product{}
	if err = json.Unmarshal(cached, &product); err != nil {
		logger.Error().Err(err).Msgf("failed decoding cached product with error=%s", err.Error())
		return response.Product{}, false
	}
	return product, true
}

// toCache stores the product under its id and slug keys. Failures only cost a
// cache miss later.
func (cat *Catalog) toCache(c context.Context, product response.Product) {
	if cat.cache == nil {
		return
	}
	logger := zerolog.Ctx(c).With().Str(log.KeyProcess, "caching product").Logger()

	payload, err := json.Marshal(product)
	if err != nil {
		logger.Error().Err(err).Msgf("failed encoding product with error=%s", err.Error())
		return
	}
	_, err = cat.cache.TxPipelined(c, func(pipe redis.Pipeliner) error {
		pipe.Set(c, fmt.Sprintf(constants.KeyProducts, product.ID), payload, CacheTTL)
		pipe.Set(c, fmt.Sprintf(constants.KeyProductsSlug, product.Slug), payload, CacheTTL)
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Msgf("failed caching product with error=%s", err.Error())
		return
	}
	logger.Trace().Msg("cached product")
}

// FindProductsByIds returns the products of ids in the order given, querying
// BatchSize ids at a time. Unknown ids are skipped.
func (cat *Catalog) FindProductsByIds(c context.Context, ids []uuid.UUID) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "Catalog FindProductsByIds")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Catalog FindProductsByIds").
		Int("count", len(ids)).
		Logger()

	byId := make(map[uuid.UUID]response.Product, len(ids))
	for i, batch := range Chunk(ids, BatchSize) {
		lg := logger.With().Int("batch", i).Str(log.KeyProcess, "finding products batch").Logger()
		lg.Trace().Msg("finding products batch")
		products, err := cat.queries.FindProductsByIds(c, batch)
		if err != nil {
			err = fmt.Errorf("failed finding products batch=%d with error=%w", i, err)
			otel.RecordError(err, span)
			lg.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		for _, product := range products {
			byId[product.ID] = product.Response()
		}
		lg.Trace().Int("found", len(products)).Msg("found products batch")
	}

	res := make([]response.Product, 0, len(byId))
	for _, id := range ids {
		if product, ok := byId[id]; ok {
			res = append(res, product)
			delete(byId, id)
		}
	}
	return res, nil
}
