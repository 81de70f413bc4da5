package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/common/constants"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/internal/server"
	"github.com/Alturino/storefront/product/internal/controller"
	"github.com/Alturino/storefront/product/internal/service"
	"github.com/Alturino/storefront/product/pkg/catalog"
)

func RunProductService(c context.Context) error {
	c, span := otel.Tracer.Start(c, "RunProductService")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, constants.AppProductService).
		Str(log.KeyTag, "main RunProductService").
		Logger()
	c = logger.WithContext(c)

	in, err := server.Bootstrap(c, constants.AppProductService, server.Needs{Database: true, Cache: true})
	if err != nil {
		err = fmt.Errorf("failed bootstrapping %s with error=%w", constants.AppProductService, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer in.Close(c)

	logger = logger.With().Str(log.KeyProcess, "initializing productService").Logger()
	logger.Info().Msg("initializing productService")
	queries := repository.New(in.Pool)
	productService := service.NewProductService(queries, catalog.New(queries, in.Cache))
	logger.Info().Msg("initialized productService")

	logger = logger.With().Str(log.KeyProcess, "attach product controller").Logger()
	logger.Info().Msg("attaching product controller")
	router := server.NewRouter(constants.AppProductService, in.Config.Application)
	controller.AttachProductController(router, productService)
	logger.Info().Msg("attached product controller")

	return server.Serve(c, in.Config.Application, router)
}
