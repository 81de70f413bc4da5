package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/cart/internal/client"
	"github.com/Alturino/storefront/cart/internal/controller"
	"github.com/Alturino/storefront/cart/internal/service"
	"github.com/Alturino/storefront/internal/common/constants"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/middleware"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/internal/server"
)

func RunCartService(c context.Context) error {
	c, span := otel.Tracer.Start(c, "RunCartService")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, constants.AppCartService).
		Str(log.KeyTag, "main RunCartService").
		Logger()
	c = logger.WithContext(c)

	in, err := server.Bootstrap(c, constants.AppCartService, server.Needs{Database: true, Cache: true})
	if err != nil {
		err = fmt.Errorf("failed bootstrapping %s with error=%w", constants.AppCartService, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer in.Close(c)

	logger = logger.With().Str(log.KeyProcess, "initializing cart service").Logger()
	logger.Info().Msg("initializing cart service")
	orders := client.NewOrderClient(in.Config.Services.OrderURL, nil)
	cartService := service.NewCartService(repository.New(in.Pool), in.Cache, orders)
	logger.Info().Msg("initialized cart service")

	logger = logger.With().Str(log.KeyProcess, "initializing router").Logger()
	logger.Info().Msg("initializing router")
	router := server.NewRouter(constants.AppCartService, in.Config.Application)
	auth := middleware.NewAuthenticator(in.Config.Application.SecretKey, in.Cache)
	router.Use(auth.Optional)
	controller.AttachCartController(router, cartService, in.Config.Application.CookieSecure)
	logger.Info().Msg("initialized router")

	return server.Serve(c, in.Config.Application, router)
}
