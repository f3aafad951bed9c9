package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	database "github.com/FACorreiaa/go-smart-travel-planner/app/db"
	"github.com/FACorreiaa/go-smart-travel-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/types"
)

var _ Store = (*PostgresStore)(nil)

type PostgresStore struct {
	logger *slog.Logger
	db     database.DBTX
}

func NewPostgresStore(db database.DBTX, logger *slog.Logger) *PostgresStore {
	return &PostgresStore{
		logger: logger,
		db:     db,
	}
}

func (s *PostgresStore) Get(ctx context.Context, clientID uuid.UUID, key string) (string, error) {
	ctx, span := otel.Tracer("PostgresStore").Start(ctx, "Get")
	defer span.End()
	defer s.observe(ctx, "get", time.Now())

	var payload string
	err := s.db.QueryRow(ctx,
		`SELECT payload FROM saved_plans WHERE client_id = $1 AND storage_key = $2`,
		clientID, key,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", types.ErrNotFound
		}
		span.RecordError(err)
		return "", fmt.Errorf("failed to read saved plan: %w", err)
	}
	return payload, nil
}

func (s *PostgresStore) Set(ctx context.Context, clientID uuid.UUID, key, value string) error {
	ctx, span := otel.Tracer("PostgresStore").Start(ctx, "Set")
	defer span.End()
	defer s.observe(ctx, "set", time.Now())

	_, err := s.db.Exec(ctx, `
        INSERT INTO saved_plans (client_id, storage_key, payload, updated_at)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (client_id, storage_key)
        DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()
    `, clientID, key, value)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to write saved plan: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, clientID uuid.UUID, key string) error {
	ctx, span := otel.Tracer("PostgresStore").Start(ctx, "Delete")
	defer span.End()
	defer s.observe(ctx, "delete", time.Now())

	_, err := s.db.Exec(ctx,
		`DELETE FROM saved_plans WHERE client_id = $1 AND storage_key = $2`,
		clientID, key,
	)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete saved plan: %w", err)
	}
	return nil
}

func (s *PostgresStore) observe(ctx context.Context, op string, start time.Time) {
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("operation", op)))
}
