package server

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/infra"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
)

type Needs struct {
	Database bool
	Cache    bool
}

// Infra is what a service needs before it can attach its controllers.
type Infra struct {
	Config    *config.Config
	Pool      *pgxpool.Pool
	Cache     *redis.Client
	shutdowns []otel.ShutdownFunc
}

func Bootstrap(c context.Context, appName string, needs Needs) (*Infra, error) {
	c, span := otel.Tracer.Start(c, "main Bootstrap")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, appName).
		Str(log.KeyTag, "main Bootstrap").
		Logger()
	c = logger.WithContext(c)
	in := &Infra{}

	logger = logger.With().Str(log.KeyProcess, "init config").Logger()
	logger.Info().Msg("initializing config")
	in.Config = config.InitConfig(c, appName)
	logger.Info().Msg("initialized config")

	logger = logger.With().Str(log.KeyProcess, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	shutdowns, err := otel.InitOtelSdk(logger.WithContext(c), appName, in.Config.Otel)
	if err != nil {
		err = fmt.Errorf("failed initializing otel sdk with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	in.shutdowns = shutdowns
	logger.Info().Msg("initialized otel sdk")

	if needs.Database {
		logger = logger.With().Str(log.KeyProcess, "initializing database").Logger()
		logger.Info().Msg("initializing database")
		in.Pool, err = infra.NewDatabaseClient(logger.WithContext(c), in.Config.Database)
		if err != nil {
			otel.RecordError(err, span)
			in.Close(c)
			return nil, err
		}
		logger.Info().Msg("initialized database")
	}

	if needs.Cache {
		logger = logger.With().Str(log.KeyProcess, "initializing cache").Logger()
		logger.Info().Msg("initializing cache")
		in.Cache, err = infra.NewCacheClient(logger.WithContext(c), in.Config.Cache)
		if err != nil {
			otel.RecordError(err, span)
			in.Close(c)
			return nil, err
		}
		logger.Info().Msg("initialized cache")
	}

	return in, nil
}

// Close releases everything Bootstrap opened, in reverse order.
func (in *Infra) Close(c context.Context) {
	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "main Close").Logger()

	if in.Cache != nil {
		logger.Info().Msg("shutting down cache")
		if err := in.Cache.Close(); err != nil {
			err = fmt.Errorf("failed shutting down cache with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
		}
	}
	if in.Pool != nil {
		logger.Info().Msg("shutting down database")
		in.Pool.Close()
	}
	if len(in.shutdowns) > 0 {
		logger.Info().Msg("shutting down otel")
		if err := otel.ShutdownOtel(context.WithoutCancel(c), in.shutdowns); err != nil {
			err = fmt.Errorf("failed shutting down otel with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
		}
	}
}
