package controller

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/common"
	commonRequest "github.com/Alturino/storefront/internal/common/request"
	"github.com/Alturino/storefront/internal/common/response"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/user/pkg/request"
)

func (u UserController) FindAddresses(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController FindAddresses")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController FindAddresses").
		Str(log.KeyProcess, "finding addresses").
		Logger()

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusUnauthorized, err)
		return
	}

	addresses, err := u.service.FindAddresses(logger.WithContext(c), userId)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeError(w, r, err)
		return
	}

	writeSuccess(w, r, http.StatusOK, "found addresses", map[string]interface{}{"addresses": addresses})
}

func (u UserController) InsertAddress(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController InsertAddress")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController InsertAddress").
		Str(log.KeyProcess, "decoding request body").
		Logger()

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusUnauthorized, err)
		return
	}

	reqBody := request.Address{}
	if err = commonRequest.DecodeAndValidate(c, r, &reqBody); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusBadRequest, err)
		return
	}

	logger = logger.With().Str(log.KeyProcess, "inserting address").Logger()
	address, err := u.service.InsertAddress(logger.WithContext(c), userId, reqBody)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeError(w, r, err)
		return
	}

	writeSuccess(w, r, http.StatusCreated, "address added", map[string]interface{}{"address": address})
}

func (u UserController) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController UpdateAddress")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController UpdateAddress").
		Str(log.KeyProcess, "decoding request").
		Logger()

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusUnauthorized, err)
		return
	}

	addressId, err := pathId(r, "addressId")
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusBadRequest, err)
		return
	}

	reqBody := request.Address{}
	if err = commonRequest.DecodeAndValidate(c, r, &reqBody); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusBadRequest, err)
		return
	}

	logger = logger.With().Str(log.KeyProcess, "updating address").Logger()
	address, err := u.service.UpdateAddress(logger.WithContext(c), userId, addressId, reqBody)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeError(w, r, err)
		return
	}

	writeSuccess(w, r, http.StatusOK, "address updated", map[string]interface{}{"address": address})
}

func (u UserController) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController DeleteAddress")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController DeleteAddress").
		Str(log.KeyProcess, "deleting address").
		Logger()

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusUnauthorized, err)
		return
	}

	addressId, err := pathId(r, "addressId")
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusBadRequest, err)
		return
	}

	if err = u.service.DeleteAddress(logger.WithContext(c), userId, addressId); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeError(w, r, err)
		return
	}

	writeSuccess(w, r, http.StatusOK, "address deleted", map[string]interface{}{})
}

func (u UserController) SetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController SetDefaultAddress")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController SetDefaultAddress").
		Str(log.KeyProcess, "setting default address").
		Logger()

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusUnauthorized, err)
		return
	}

	addressId, err := pathId(r, "addressId")
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusBadRequest, err)
		return
	}

	address, err := u.service.SetDefaultAddress(logger.WithContext(c), userId, addressId)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeError(w, r, err)
		return
	}

	writeSuccess(w, r, http.StatusOK, "default address set", map[string]interface{}{"address": address})
}

func (u UserController) FindWallet(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController FindWallet")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController FindWallet").
		Str(log.KeyProcess, "finding wallet").
		Logger()

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusUnauthorized, err)
		return
	}

	wallet, err := u.service.FindWallet(logger.WithContext(c), userId)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeError(w, r, err)
		return
	}

	writeSuccess(w, r, http.StatusOK, "found wallet", map[string]interface{}{"wallet": wallet})
}

func (u UserController) TopUp(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController TopUp")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController TopUp").
		Str(log.KeyProcess, "decoding request body").
		Logger()

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusUnauthorized, err)
		return
	}

	reqBody := request.TopUp{}
	if err = commonRequest.DecodeAndValidate(c, r, &reqBody); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		response.WriteErrorResponse(c, w, http.StatusBadRequest, err)
		return
	}

	logger = logger.With().Str(log.KeyProcess, "topping up wallet").Logger()
	wallet, err := u.service.TopUp(logger.WithContext(c), userId, reqBody)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeError(w, r, err)
		return
	}

	writeSuccess(w, r, http.StatusOK, "wallet topped up", map[string]interface{}{"wallet": wallet})
}
