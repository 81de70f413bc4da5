package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
	userErrors "github.com/Alturino/storefront/user/internal/errors"
	"github.com/Alturino/storefront/user/pkg/request"
	"github.com/Alturino/storefront/user/pkg/response"
)

func addressError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return userErrors.ErrAddressNotFound
	}
	return err
}

// makeDefault clears the user's current default before marking addressId, so
// at most one address is default at any time.
func makeDefault(c context.Context, q *repository.Queries, userId, addressId uuid.UUID) (repository.Address, error) {
	if err := q.ClearDefaultAddresses(c, userId); err != nil {
		return repository.Address{}, fmt.Errorf("failed clearing default address with error=%w", err)
	}
	address, err := q.SetDefaultAddress(c, repository.SetDefaultAddressParams{ID: addressId, UserID: userId})
	if err != nil {
		return repository.Address{}, fmt.Errorf("failed setting default address with error=%w", addressError(err))
	}
	return address, nil
}

func (u *UserService) FindAddresses(c context.Context, userId uuid.UUID) ([]response.Address, error) {
	c, span := otel.Tracer.Start(c, "UserService FindAddresses")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService FindAddresses").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProcess, "finding addresses").
		Logger()

	logger.Trace().Msg("finding addresses")
	addresses, err := u.queries.FindAddressesByUserId(c, userId)
	if err != nil {
		err = fmt.Errorf("failed finding addresses with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Trace().Int("count", len(addresses)).Msg("found addresses")

	res := make([]response.Address, 0, len(addresses))
	for _, address := range addresses {
		res = append(res, address.Response())
	}
	return res, nil
}

func (u *UserService) InsertAddress(
	c context.Context,
	userId uuid.UUID,
	param request.Address,
) (response.Address, error) {
	c, span := otel.Tracer.Start(c, "UserService InsertAddress")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService InsertAddress").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProcess, "inserting address").
		Logger()

	logger.Info().Msg("inserting address")
	address, err := repository.WithTx(c, u.pool, u.queries, func(q *repository.Queries) (repository.Address, error) {
		address, err := q.InsertAddress(c, repository.InsertAddressParams{
			UserID:       userId,
			Name:         param.Name,
			AddressLine1: param.AddressLine1,
			AddressLine2: param.AddressLine2,
			City:         param.City,
			State:        param.State,
			PostalCode:   param.PostalCode,
		})
		if err != nil {
			return repository.Address{}, fmt.Errorf("failed inserting address with error=%w", err)
		}
		if !param.IsDefault {
			return address, nil
		}
		return makeDefault(c, q, userId, address.ID)
	})
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Address{}, err
	}
	logger.Info().Str(log.KeyAddressID, address.ID.String()).Msg("inserted address")

	return address.Response(), nil
}

func (u *UserService) UpdateAddress(
	c context.Context,
	userId uuid.UUID,
	addressId uuid.UUID,
	param request.Address,
) (response.Address, error) {
	c, span := otel.Tracer.Start(c, "UserService UpdateAddress")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService UpdateAddress").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyAddressID, addressId.String()).
		Str(log.KeyProcess, "updating address").
		Logger()

	logger.Info().Msg("updating address")
	address, err := repository.WithTx(c, u.pool, u.queries, func(q *repository.Queries) (repository.Address, error) {
		address, err := q.UpdateAddress(c, repository.UpdateAddressParams{
			ID:           addressId,
			UserID:       userId,
			Name:         param.Name,
			AddressLine1: param.AddressLine1,
			AddressLine2: param.AddressLine2,
			City:         param.City,
			State:        param.State,
			PostalCode:   param.PostalCode,
		})
		if err != nil {
			return repository.Address{}, fmt.Errorf("failed updating address with error=%w", addressError(err))
		}
		if !param.IsDefault || address.IsDefault {
			return address, nil
		}
		return makeDefault(c, q, userId, address.ID)
	})
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Address{}, err
	}
	logger.Info().Msg("updated address")

	return address.Response(), nil
}

func (u *UserService) DeleteAddress(c context.Context, userId uuid.UUID, addressId uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "UserService DeleteAddress")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService DeleteAddress").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyAddressID, addressId.String()).
		Str(log.KeyProcess, "deleting address").
		Logger()

	logger.Info().Msg("deleting address")
	_, err := u.queries.DeleteAddress(c, repository.DeleteAddressParams{ID: addressId, UserID: userId})
	if err != nil {
		err = fmt.Errorf("failed deleting address with error=%w", addressError(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("deleted address")
	return nil
}

func (u *UserService) SetDefaultAddress(
	c context.Context,
	userId uuid.UUID,
	addressId uuid.UUID,
) (response.Address, error) {
	c, span := otel.Tracer.Start(c, "UserService SetDefaultAddress")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService SetDefaultAddress").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyAddressID, addressId.String()).
		Str(log.KeyProcess, "setting default address").
		Logger()

	logger.Info().Msg("setting default address")
	address, err := repository.WithTx(c, u.pool, u.queries, func(q *repository.Queries) (repository.Address, error) {
		return makeDefault(c, q, userId, addressId)
	})
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Address{}, err
	}
	logger.Info().Msg("set default address")

	return address.Response(), nil
}
