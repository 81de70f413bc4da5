package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Alturino/storefront/internal/common"
	"github.com/Alturino/storefront/internal/common/constants"
	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
	userErrors "github.com/Alturino/storefront/user/internal/errors"
	"github.com/Alturino/storefront/user/pkg/request"
	"github.com/Alturino/storefront/user/pkg/response"
)

const (
	MinPasswordLength = 6
	uniqueViolation   = "23505"
)

type UserService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
	config  config.Application
	now     func() time.Time
}

func NewUserService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
	config config.Application,
) *UserService {
	return &UserService{pool: pool, queries: queries, cache: cache, config: config, now: time.Now}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (u *UserService) Register(c context.Context, param request.Register) (response.User, error) {
	c, span := otel.Tracer.Start(c, "UserService Register")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Register").
		Str(log.KeyEmail, param.Email).
		Logger()

	if utf8.RuneCountInString(param.Password) < MinPasswordLength {
		err := userErrors.ErrWeakPassword
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "hashing password").Logger()
	logger.Trace().Msg("hashing password")
	hashed, err := bcrypt.GenerateFromPassword([]byte(param.Password), bcrypt.DefaultCost)
	if err != nil {
		err = fmt.Errorf("failed hashing password with error=%w", errors.Join(err, commonErrors.ErrFailedHashToken))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Trace().Msg("hashed password")

	logger = logger.With().Str(log.KeyProcess, "inserting user to database").Logger()
	logger.Info().Msg("inserting user to database")
	user, err := u.queries.InsertUser(c, repository.InsertUserParams{
		Email:       param.Email,
		Password:    string(hashed),
		DisplayName: param.DisplayName,
		PhoneNumber: param.PhoneNumber,
	})
	if err != nil {
		if isUniqueViolation(err) {
			err = userErrors.ErrEmailExist
		}
		err = fmt.Errorf("failed inserting user with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Str(log.KeyUserID, user.ID.String()).Msg("inserted user to database")

	return user.Response(), nil
}

func (u *UserService) Login(c context.Context, param request.Login) (response.Token, error) {
	c, span := otel.Tracer.Start(c, "UserService Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Login").
		Str(log.KeyEmail, param.Email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding user").Logger()
	logger.Trace().Msg("finding user by email")
	user, err := u.queries.FindUserByEmail(c, param.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = userErrors.ErrInvalidCredential
		}
		err = fmt.Errorf("failed finding user by email with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Token{}, err
	}
	logger.Trace().Msg("found user by email")

	logger = logger.With().Str(log.KeyProcess, "verifying password").Logger()
	logger.Trace().Msg("verifying password")
	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(param.Password)); err != nil {
		err = userErrors.ErrInvalidCredential
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Token{}, err
	}
	logger.Trace().Msg("verified password")

	logger = logger.With().Str(log.KeyProcess, "signing token").Logger()
	logger.Trace().Msg("signing token")
	now := u.now()
	token, err := common.CreateToken(u.config.SecretKey, user.ID, now)
	if err != nil {
		err = fmt.Errorf("failed signing token with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Token{}, err
	}
	logger.Info().Str(log.KeyUserID, user.ID.String()).Msg("signed in")

	return response.Token{Token: token, ExpiresAt: now.Add(common.TokenTTL)}, nil
}

// Logout deny-lists the jti of the token on the context until it expires.
func (u *UserService) Logout(c context.Context) error {
	c, span := otel.Tracer.Start(c, "UserService Logout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Logout").
		Str(log.KeyProcess, "revoking token").
		Logger()

	jti, expiresAt, err := common.TokenIdAndExpiry(c)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	ttl := expiresAt.Sub(u.now())
	if ttl <= 0 {
		logger.Trace().Msg("token already expired")
		return nil
	}

	logger.Trace().Msg("revoking token")
	err = u.cache.Set(c, fmt.Sprintf(constants.KeyRevokedToken, jti), 1, ttl).Err()
	if err != nil {
		err = fmt.Errorf("failed revoking token with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("revoked token")
	return nil
}

func (u *UserService) FindUserById(c context.Context, param request.FindUserById) (response.User, error) {
	c, span := otel.Tracer.Start(c, "UserService FindUserById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService FindUserById").
		Str(log.KeyUserID, param.ID.String()).
		Str(log.KeyProcess, "finding user").
		Logger()

	logger.Trace().Msg("finding user")
	user, err := u.queries.FindUserById(c, param.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = userErrors.ErrUserNotFound
		}
		err = fmt.Errorf("failed finding user with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Trace().Msg("found user")

	return user.Response(), nil
}

func (u *UserService) UpdateProfile(
	c context.Context,
	userId uuid.UUID,
	param request.UpdateProfile,
) (response.User, error) {
	c, span := otel.Tracer.Start(c, "UserService UpdateProfile")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService UpdateProfile").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProcess, "updating profile").
		Logger()

	logger.Info().Msg("updating profile")
	user, err := u.queries.UpdateUserProfile(c, repository.UpdateUserProfileParams{
		ID:          userId,
		DisplayName: param.DisplayName,
		PhoneNumber: param.PhoneNumber,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = userErrors.ErrUserNotFound
		}
		err = fmt.Errorf("failed updating profile with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msg("updated profile")

	return user.Response(), nil
}
