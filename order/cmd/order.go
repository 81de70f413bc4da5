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
	"github.com/Alturino/storefront/order/internal/controller"
	"github.com/Alturino/storefront/order/internal/service"
	"github.com/Alturino/storefront/product/pkg/catalog"
)

func RunOrderService(c context.Context) error {
	c, span := otel.Tracer.Start(c, "RunOrderService")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, constants.AppOrderService).
		Str(log.KeyTag, "main RunOrderService").
		Logger()
	c = logger.WithContext(c)

	in, err := server.Bootstrap(c, constants.AppOrderService, server.Needs{Database: true, Cache: true})
	if err != nil {
		err = fmt.Errorf("failed bootstrapping %s with error=%w", constants.AppOrderService, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer in.Close(c)

	logger = logger.With().Str(log.KeyProcess, "initializing order service").Logger()
	logger.Info().Msg("initializing order service")
	queries := repository.New(in.Pool)
	orderService := service.NewOrderService(
		in.Pool,
		queries,
		in.Cache,
		catalog.New(queries, in.Cache),
		in.Config.Application.CurrencyUnit().String(),
	)
	logger.Info().Msg("initialized order service")

	logger = logger.With().Str(log.KeyProcess, "initializing router").Logger()
	logger.Info().Msg("initializing router")
	router := server.NewRouter(constants.AppOrderService, in.Config.Application)
	auth := middleware.NewAuthenticator(in.Config.Application.SecretKey, in.Cache)
	controller.AttachOrderController(router, orderService, auth.Required)
	logger.Info().Msg("initialized router")

	return server.Serve(c, in.Config.Application, router)
}
