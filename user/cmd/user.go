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
	"github.com/Alturino/storefront/user/internal/controller"
	"github.com/Alturino/storefront/user/internal/service"
)

func RunUserService(c context.Context) error {
	c, span := otel.Tracer.Start(c, "RunUserService")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, constants.AppUserService).
		Str(log.KeyTag, "main RunUserService").
		Logger()
	c = logger.WithContext(c)

	in, err := server.Bootstrap(c, constants.AppUserService, server.Needs{Database: true, Cache: true})
	if err != nil {
		err = fmt.Errorf("failed bootstrapping %s with error=%w", constants.AppUserService, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer in.Close(c)

	logger = logger.With().Str(log.KeyProcess, "initializing user service").Logger()
	logger.Info().Msg("initializing user service")
	userService := service.NewUserService(in.Pool, repository.New(in.Pool), in.Cache, in.Config.Application)
	logger.Info().Msg("initialized user service")

	logger = logger.With().Str(log.KeyProcess, "initializing router").Logger()
	logger.Info().Msg("initializing router")
	router := server.NewRouter(constants.AppUserService, in.Config.Application)
	auth := middleware.NewAuthenticator(in.Config.Application.SecretKey, in.Cache)
	controller.AttachUserController(router, userService, auth.Required, in.Config.Application.CookieSecure)
	logger.Info().Msg("initialized router")

	return server.Serve(c, in.Config.Application, router)
}
