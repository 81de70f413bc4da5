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

func (u *UserService) FindWallet(c context.Context, userId uuid.UUID) (response.Wallet, error) {
	c, span := otel.Tracer.Start(c, "UserService FindWallet")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService FindWallet").
		Str(log.KeyUserID, userId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding balance").Logger()
	logger.Trace().Msg("finding balance")
	user, err := u.queries.FindUserById(c, userId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = userErrors.ErrUserNotFound
		}
		err = fmt.Errorf("failed finding balance with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Wallet{}, err
	}
	logger.Trace().Msg("found balance")

	logger = logger.With().Str(log.KeyProcess, "finding transactions").Logger()
	logger.Trace().Msg("finding transactions")
	transactions, err := u.queries.FindWalletTransactionsByUserId(c, userId)
	if err != nil {
		err = fmt.Errorf("failed finding transactions with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Wallet{}, err
	}
	logger.Trace().Int("count", len(transactions)).Msg("found transactions")

	wallet := response.Wallet{
		Balance:      repository.DecimalFromNumeric(user.WalletBalance),
		Currency:     u.config.CurrencyUnit().String(),
		Transactions: make([]response.WalletTransaction, 0, len(transactions)),
	}
	for _, transaction := range transactions {
		wallet.Transactions = append(wallet.Transactions, transaction.Response())
	}
	return wallet, nil
}

// TopUp credits the wallet and writes the ledger row in one transaction.
func (u *UserService) TopUp(c context.Context, userId uuid.UUID, param request.TopUp) (response.Wallet, error) {
	c, span := otel.Tracer.Start(c, "UserService TopUp")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService TopUp").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProcess, "topping up wallet").
		Str("amount", param.Amount.String()).
		Logger()

	logger.Info().Msg("topping up wallet")
	amount := repository.NumericFromDecimal(param.Amount.Round(2))
	_, err := repository.WithTx(c, u.pool, u.queries, func(q *repository.Queries) (repository.WalletTransaction, error) {
		if _, err := q.CreditWalletBalance(c, repository.CreditWalletBalanceParams{Amount: amount, ID: userId}); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return repository.WalletTransaction{}, userErrors.ErrUserNotFound
			}
			return repository.WalletTransaction{}, fmt.Errorf("failed crediting wallet with error=%w", err)
		}
		return q.InsertWalletTransaction(c, repository.InsertWalletTransactionParams{
			UserID: userId,
			Kind:   response.WalletKindTopUp,
			Amount: amount,
		})
	})
	if err != nil {
		err = fmt.Errorf("failed topping up wallet with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Wallet{}, err
	}
	logger.Info().Msg("topped up wallet")

	return u.FindWallet(logger.WithContext(c), userId)
}
