package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-smart-travel-planner/internal/types"
)

func setupPostgresStoreTest(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)
	return NewPostgresStore(mockPool, slog.New(slog.NewTextHandler(io.Discard, nil))), mockPool
}

func TestPostgresStore_Get(t *testing.T) {
	ctx := context.Background()
	clientID := uuid.New()

	t.Run("found", func(t *testing.T) {
		store, mockPool := setupPostgresStoreTest(t)
		mockPool.ExpectQuery("SELECT payload FROM saved_plans").
			WithArgs(clientID, PlanStorageKey).
			WillReturnRows(pgxmock.NewRows([]string{"payload"}).AddRow(`{"tripTitle":"t"}`))

		got, err := store.Get(ctx, clientID, PlanStorageKey)
		require.NoError(t, err)
		assert.Equal(t, `{"tripTitle":"t"}`, got)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("missing row is not found", func(t *testing.T) {
		store, mockPool := setupPostgresStoreTest(t)
		mockPool.ExpectQuery("SELECT payload FROM saved_plans").
			WithArgs(clientID, PlanStorageKey).
			WillReturnError(pgx.ErrNoRows)

		_, err := store.Get(ctx, clientID, PlanStorageKey)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("database error is wrapped", func(t *testing.T) {
		store, mockPool := setupPostgresStoreTest(t)
		dbErr := errors.New("connection reset")
		mockPool.ExpectQuery("SELECT payload FROM saved_plans").WillReturnError(dbErr)

		_, err := store.Get(ctx, clientID, PlanStorageKey)
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, types.ErrNotFound)
	})
}

func TestPostgresStore_SetAndDelete(t *testing.T) {
	ctx := context.Background()
	clientID := uuid.New()

	t.Run("set upserts", func(t *testing.T) {
		store, mockPool := setupPostgresStoreTest(t)
		mockPool.ExpectExec("INSERT INTO saved_plans").
			WithArgs(clientID, PlanStorageKey, "{}").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, store.Set(ctx, clientID, PlanStorageKey, "{}"))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("set failure", func(t *testing.T) {
		store, mockPool := setupPostgresStoreTest(t)
		mockPool.ExpectExec("INSERT INTO saved_plans").WillReturnError(errors.New("disk full"))

		assert.Error(t, store.Set(ctx, clientID, PlanStorageKey, "{}"))
	})

	t.Run("delete", func(t *testing.T) {
		store, mockPool := setupPostgresStoreTest(t)
		mockPool.ExpectExec("DELETE FROM saved_plans").
			WithArgs(clientID, PlanStorageKey).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		require.NoError(t, store.Delete(ctx, clientID, PlanStorageKey))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}
