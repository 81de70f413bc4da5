package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/common"
	"github.com/Alturino/storefront/internal/common/constants"
	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	commonHttp "github.com/Alturino/storefront/internal/common/http"
	"github.com/Alturino/storefront/internal/common/response"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
)

type Authenticator struct {
	secretKey string
	cache     *redis.Client
}

func NewAuthenticator(secretKey string, cache *redis.Client) Authenticator {
	return Authenticator{secretKey: secretKey, cache: cache}
}

// authenticate returns a context carrying the verified token. It returns
// ErrEmptyAuth when the request has no bearer token at all.
func (a Authenticator) authenticate(c context.Context, r *http.Request) (context.Context, error) {
	c, span := otel.Tracer.Start(c, "Authenticator authenticate")
	defer span.End()

	authorization := r.Header.Get(commonHttp.HeaderAuthorization)
	if authorization == "" {
		return c, commonErrors.ErrEmptyAuth
	}
	scheme, token, ok := strings.Cut(authorization, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
		return c, commonErrors.ErrTokenInvalid
	}

	jwtToken, err := common.VerifyToken(c, a.secretKey, token)
	if err != nil {
		otel.RecordError(err, span)
		return c, err
	}
	c = common.AttachJwtToken(c, jwtToken)

	if a.cache != nil {
		jti, _, err := common.TokenIdAndExpiry(c)
		if err != nil {
			otel.RecordError(err, span)
			return c, err
		}
		revoked, err := a.cache.Exists(c, fmt.Sprintf(constants.KeyRevokedToken, jti)).Result()
		if err != nil {
			err = fmt.Errorf("failed checking revoked token with error=%w", err)
			otel.RecordError(err, span)
			return c, err
		}
		if revoked > 0 {
			return c, commonErrors.ErrTokenRevoked
		}
	}

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		otel.RecordError(err, span)
		return c, err
	}
	logger := zerolog.Ctx(c).With().Str(log.KeyUserID, userId.String()).Logger()
	return logger.WithContext(c), nil
}

func (a Authenticator) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context()).With().Str(log.KeyTag, "middleware Auth").Logger()
		c := logger.WithContext(r.Context())

		c, err := a.authenticate(c, r)
		if err != nil {
			logger.Error().Err(err).Msg(err.Error())
			response.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
				"status":     "failed",
				"statusCode": http.StatusUnauthorized,
				"message":    err.Error(),
			})
			return
		}

		next.ServeHTTP(w, r.WithContext(c))
	})
}

// Optional lets anonymous requests through but still rejects a bad token.
func (a Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context()).With().Str(log.KeyTag, "middleware OptionalAuth").Logger()
		c := logger.WithContext(r.Context())

		c, err := a.authenticate(c, r)
		if errors.Is(err, commonErrors.ErrEmptyAuth) {
			next.ServeHTTP(w, r.WithContext(c))
			return
		}
		if err != nil {
			logger.Error().Err(err).Msg(err.Error())
			response.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
				"status":     "failed",
				"statusCode": http.StatusUnauthorized,
				"message":    err.Error(),
			})
			return
		}

		next.ServeHTTP(w, r.WithContext(c))
	})
}
