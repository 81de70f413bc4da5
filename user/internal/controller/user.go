package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/common"
	commonRequest "github.com/Alturino/storefront/internal/common/request"
	"github.com/Alturino/storefront/internal/common/response"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/middleware"
	"github.com/Alturino/storefront/internal/otel"
	userErrors "github.com/Alturino/storefront/user/internal/errors"
	"github.com/Alturino/storefront/user/internal/service"
	"github.com/Alturino/storefront/user/pkg/request"
)

type UserController struct {
	service      *service.UserService
	cookieSecure bool
}

// AttachUserController mounts register and login publicly and everything else
// behind auth.
func AttachUserController(
	router *mux.Router,
	service *service.UserService,
	auth mux.MiddlewareFunc,
	cookieSecure bool,
) {
	controller := UserController{service: service, cookieSecure: cookieSecure}

	users := router.PathPrefix("/users").Subrouter()
	users.HandleFunc("/register", controller.Register).Methods(http.MethodPost)
	users.HandleFunc("/login", controller.Login).Methods(http.MethodPost)

	protected := users.NewRoute().Subrouter()
	protected.Use(auth)
	protected.HandleFunc("/logout", controller.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/me", controller.FindMe).Methods(http.MethodGet)
	protected.HandleFunc("/me", controller.UpdateProfile).Methods(http.MethodPut)
	protected.HandleFunc("/me/addresses", controller.FindAddresses).Methods(http.MethodGet)
	protected.HandleFunc("/me/addresses", controller.InsertAddress).Methods(http.MethodPost)
	protected.HandleFunc("/me/addresses/{addressId}", controller.UpdateAddress).Methods(http.MethodPut)
	protected.HandleFunc("/me/addresses/{addressId}", controller.DeleteAddress).Methods(http.MethodDelete)
	protected.HandleFunc("/me/addresses/{addressId}/default", controller.SetDefaultAddress).
		Methods(http.MethodPost)
	protected.HandleFunc("/me/wallet", controller.FindWallet).Methods(http.MethodGet)
	protected.HandleFunc("/me/wallet/topup", controller.TopUp).Methods(http.MethodPost)
	protected.HandleFunc("/{userId}", controller.FindUserById).Methods(http.MethodGet)
}

var publicErrors = []error{
	userErrors.ErrWeakPassword,
	userErrors.ErrEmailExist,
	userErrors.ErrInvalidCredential,
	userErrors.ErrUserNotFound,
	userErrors.ErrAddressNotFound,
}

// publicError strips wrapping from account errors so the client sees the
// provider message as is.
func publicError(err error) error {
	for _, target := range publicErrors {
		if errors.Is(err, target) {
			return target
		}
	}
	return err
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, userErrors.ErrWeakPassword):
		return http.StatusBadRequest
	case errors.Is(err, userErrors.ErrEmailExist):
		return http.StatusConflict
	case errors.Is(err, userErrors.ErrInvalidCredential):
		return http.StatusUnauthorized
	case errors.Is(err, userErrors.ErrUserNotFound), errors.Is(err, userErrors.ErrAddressNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	response.WriteErrorResponse(r.Context(), w, statusCode(err), publicError(err))
}

func writeSuccess(w http.ResponseWriter, r *http.Request, statusCode int, message string, data map[string]interface{}) {
	response.WriteJsonResponse(r.Context(), w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": statusCode,
		"message":    message,
		"data":       data,
	})
}

func pathId(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed parsing %s=%s with error=%w", name, mux.Vars(r)[name], err)
	}
	return id, nil
}

func (u UserController) Register(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController Register")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController Register").
		Str(log.KeyProcess, "decoding request body").
		Logger()

	logger.Trace().Msg("decoding request body")
	reqBody := request.Register{}
	if err := commonRequest.DecodeAndValidate(c, r, &reqBody); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusBadRequest, err)
		return
	}
	logger.Trace().Object(log.KeyRequestBody, reqBody).Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "registering user").Logger()
	logger.Info().Msg("registering user")
	user, err := u.service.Register(logger.WithContext(c), reqBody)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeError(w, r, err)
		return
	}
	logger.Info().Str(log.KeyUserID, user.ID.String()).Msg("registered user")

	writeSuccess(w, r, http.StatusCreated, "user registered", map[string]interface{}{"user": user})
}

func (u UserController) Login(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController Login").
		Str(log.KeyProcess, "decoding request body").
		Logger()

	logger.Trace().Msg("decoding request body")
	reqBody := request.Login{}
	if err := commonRequest.DecodeAndValidate(c, r, &reqBody); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusBadRequest, err)
		return
	}
	logger.Trace().Object(log.KeyRequestBody, reqBody).Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "login").Str(log.KeyEmail, reqBody.Email).Logger()
	logger.Info().Msg("login")
	token, err := u.service.Login(logger.WithContext(c), reqBody)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeError(w, r, err)
		return
	}
	logger.Info().Msg("logged in")

	writeSuccess(w, r, http.StatusOK, "login success", map[string]interface{}{
		"token":     token.Token,
		"expiresAt": token.ExpiresAt,
	})
}

func (u UserController) Logout(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController Logout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController Logout").
		Str(log.KeyProcess, "logout").
		Logger()

	logger.Info().Msg("logout")
	if err := u.service.Logout(logger.WithContext(c)); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeError(w, r, err)
		return
	}
	sid := middleware.EndSession(w, u.cookieSecure)
	logger.Info().Str(log.KeySessionID, sid).Msg("logged out, session rotated")

	writeSuccess(w, r, http.StatusOK, "logged out", map[string]interface{}{})
}

func (u UserController) FindMe(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController FindMe")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController FindMe").
		Str(log.KeyProcess, "finding current user").
		Logger()

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusUnauthorized, err)
		return
	}

	user, err := u.service.FindUserById(logger.WithContext(c), request.FindUserById{ID: userId})
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeError(w, r, err)
		return
	}

	writeSuccess(w, r, http.StatusOK, "found user", map[string]interface{}{"user": user})
}

func (u UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController UpdateProfile")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController UpdateProfile").
		Str(log.KeyProcess, "decoding request body").
		Logger()

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusUnauthorized, err)
		return
	}

	reqBody := request.UpdateProfile{}
	if err = commonRequest.DecodeAndValidate(c, r, &reqBody); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusBadRequest, err)
		return
	}

	logger = logger.With().Str(log.KeyProcess, "updating profile").Logger()
	user, err := u.service.UpdateProfile(logger.WithContext(c), userId, reqBody)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeError(w, r, err)
		return
	}

	writeSuccess(w, r, http.StatusOK, "profile updated", map[string]interface{}{"user": user})
}

func (u UserController) FindUserById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController FindUserById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController FindUserById").
		Str(log.KeyProcess, "validating userId").
		Logger()

	logger.Trace().Msg("validating userId")
	userId, err := pathId(r, "userId")
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusBadRequest, err)
		return
	}
	logger.Trace().Msg("validated userId")

	logger = logger.With().Str(log.KeyProcess, "finding user").Logger()
	user, err := u.service.FindUserById(logger.WithContext(c), request.FindUserById{ID: userId})
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeError(w, r, err)
		return
	}

	writeSuccess(w, r, http.StatusOK, "found user", map[string]interface{}{"user": user})
}
