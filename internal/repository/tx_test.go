package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/internal/testutil"
)

func TestWithTx(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	c := context.Background()
	pool := testutil.StartPostgres(t, c)
	queries := repository.New(pool)

	insert := func(email string) func(q *repository.Queries) (repository.User, error) {
		return func(q *repository.Queries) (repository.User, error) {
			return q.InsertUser(c, repository.InsertUserParams{Email: email, Password: "hashed"})
		}
	}

	t.Run("given success should commit", func(t *testing.T) {
		email := gofakeit.Email()
		user, err := repository.WithTx(c, pool, queries, insert(email))
		require.NoError(t, err)

		found, err := queries.FindUserById(c, user.ID)
		require.NoError(t, err)
		assert.Equal(t, email, found.Email)
	})

	t.Run("given error should roll back", func(t *testing.T) {
		failure := errors.New("payment declined")
		var inserted repository.User
		_, err := repository.WithTx(c, pool, queries, func(q *repository.Queries) (repository.User, error) {
			user, err := insert(gofakeit.Email())(q)
			require.NoError(t, err)
			inserted = user
			return repository.User{}, failure
		})
		assert.ErrorIs(t, err, failure)

		_, err = queries.FindUserById(c, inserted.ID)
		assert.Error(t, err)
		assert.Zero(t, pool.Stat().AcquiredConns())
	})

	t.Run("given panic should roll back and release the connection", func(t *testing.T) {
		var inserted repository.User
		assert.PanicsWithValue(t, "boom", func() {
			_, _ = repository.WithTx(c, pool, queries, func(q *repository.Queries) (repository.User, error) {
				user, err := insert(gofakeit.Email())(q)
				require.NoError(t, err)
				inserted = user
				panic("boom")
			})
		})

		assert.Zero(t, pool.Stat().AcquiredConns())
		_, err := queries.FindUserById(c, inserted.ID)
		assert.Error(t, err)
	})
}
