package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/common/constants"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/server"
	"github.com/Alturino/storefront/notification/internal/listener"
)

// RunNotificationService logs a confirmation notice for every recorded order and
// exposes /metrics and /healthz.
func RunNotificationService(c context.Context) error {
	c, span := otel.Tracer.Start(c, "RunNotificationService")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, constants.AppNotificationService).
		Str(log.KeyTag, "main RunNotificationService").
		Logger()
	c = logger.WithContext(c)

	in, err := server.Bootstrap(c, constants.AppNotificationService, server.Needs{Cache: true})
	if err != nil {
		err = fmt.Errorf("failed bootstrapping %s with error=%w", constants.AppNotificationService, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer in.Close(c)

	c, cancel := context.WithCancel(c)
	defer cancel()

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- listener.NewListener(in.Cache, listener.LogNotice).Listen(c)
		cancel()
	}()

	router := server.NewRouter(constants.AppNotificationService, in.Config.Application)
	serveErr := server.Serve(c, in.Config.Application, router)
	cancel()

	return errors.Join(serveErr, <-listenErr)
}
