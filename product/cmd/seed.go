package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/common/constants"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/internal/server"
	"github.com/Alturino/storefront/product/internal/service"
	"github.com/Alturino/storefront/product/pkg/catalog"
	"github.com/Alturino/storefront/product/pkg/request"
)

// RunSeed loads the JSON catalog at path into the products table.
func RunSeed(c context.Context, path string) error {
	c, span := otel.Tracer.Start(c, "RunSeed")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, constants.AppSeed).
		Str(log.KeyTag, "main RunSeed").
		Str("path", path).
		Logger()
	c = logger.WithContext(c)

	logger = logger.With().Str(log.KeyProcess, "reading catalog").Logger()
	logger.Info().Msg("reading catalog")
	file, err := os.Open(path)
	if err != nil {
		err = fmt.Errorf("failed opening catalog with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer file.Close()

	products := []request.Product{}
	if err = json.NewDecoder(file).Decode(&products); err != nil {
		err = fmt.Errorf("failed decoding catalog with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Int("count", len(products)).Msg("read catalog")

	in, err := server.Bootstrap(c, constants.AppSeed, server.Needs{Database: true})
	if err != nil {
		err = fmt.Errorf("failed bootstrapping %s with error=%w", constants.AppSeed, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer in.Close(c)

	queries := repository.New(in.Pool)
	_, err = service.NewProductService(queries, catalog.New(queries, nil)).Seed(c, products)
	return err
}
