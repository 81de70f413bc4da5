package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/common/constants"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/middleware"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/internal/server"
	"github.com/Alturino/storefront/product/pkg/catalog"
	"github.com/Alturino/storefront/wishlist/internal/controller"
	"github.com/Alturino/storefront/wishlist/internal/service"
)

func RunWishlistService(c context.Context) error {
	c, span := otel.Tracer.Start(c, "RunWishlistService")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, constants.AppWishlistService).
		Str(log.KeyTag, "main RunWishlistService").
		Logger()
	c = logger.WithContext(c)

	in, err := server.Bootstrap(c, constants.AppWishlistService, server.Needs{Database: true, Cache: true})
	if err != nil {
		err = fmt.Errorf("failed bootstrapping %s with error=%w", constants.AppWishlistService, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer in.Close(c)

	logger = logger.With().Str(log.KeyProcess, "initializing wishlist service").Logger()
	logger.Info().Msg("initializing wishlist service")
	queries := repository.New(in.Pool)
	wishlistService := service.NewWishlistService(queries, in.Cache, catalog.New(queries, in.Cache))
	logger.Info().Msg("initialized wishlist service")

	logger = logger.With().Str(log.KeyProcess, "initializing router").Logger()
	logger.Info().Msg("initializing router")
	router := server.NewRouter(constants.AppWishlistService, in.Config.Application)
	auth := middleware.NewAuthenticator(in.Config.Application.SecretKey, in.Cache)
	router.Use(auth.Optional)
	controller.AttachWishlistController(router, wishlistService)
	logger.Info().Msg("initialized router")

	return server.Serve(c, in.Config.Application, router)
}
