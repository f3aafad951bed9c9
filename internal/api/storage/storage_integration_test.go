//go:build integration

package storage

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	database "github.com/FACorreiaa/go-smart-travel-planner/app/db"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/types"
)

// exerciseStore runs the Store contract against a live backend.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	clientID := uuid.New()

	_, err := s.Get(ctx, clientID, PlanStorageKey)
	assert.ErrorIs(t, err, types.ErrNotFound)

	require.NoError(t, s.Set(ctx, clientID, PlanStorageKey, `{"tripTitle":"first"}`))
	require.NoError(t, s.Set(ctx, clientID, PlanStorageKey, `{"tripTitle":"second"}`))
	got, err := s.Get(ctx, clientID, PlanStorageKey)
	require.NoError(t, err)
	assert.Equal(t, `{"tripTitle":"second"}`, got)

	require.NoError(t, s.Delete(ctx, clientID, PlanStorageKey))
	_, err = s.Get(ctx, clientID, PlanStorageKey)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestPostgresStore_Integration(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	require.NoError(t, database.RunMigrations(dbURL, logger))
	pool, err := database.Init(dbURL, 5*time.Second, logger)
	require.NoError(t, err)
	defer pool.Close()
	require.True(t, database.WaitForDB(context.Background(), pool, logger))

	exerciseStore(t, NewPostgresStore(pool, logger))
}

func TestRedisStore_Integration(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client := NewRedisClient(addr, os.Getenv("TEST_REDIS_PASSWORD"), 0)
	defer client.Close()
	require.NoError(t, client.Ping(context.Background()).Err())

	exerciseStore(t, NewRedisStore(client, time.Minute))
}
