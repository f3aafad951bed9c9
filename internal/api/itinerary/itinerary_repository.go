package itinerary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	database "github.com/FACorreiaa/go-smart-travel-planner/app/db"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/types"
)

var (
	_ InteractionRecorder = (*PostgresInteractionRepo)(nil)
	_ InteractionRecorder = (*LogInteractionRecorder)(nil)
)

// InteractionRecorder keeps a diagnostic trail of every generation.
type InteractionRecorder interface {
	SaveInteraction(ctx context.Context, interaction types.LlmInteraction) error
}

type PostgresInteractionRepo struct {
	logger *slog.Logger
	db     database.DBTX
}

func NewPostgresInteractionRepo(db database.DBTX, logger *slog.Logger) *PostgresInteractionRepo {
	return &PostgresInteractionRepo{
		logger: logger,
		db:     db,
	}
}

func (r *PostgresInteractionRepo) SaveInteraction(ctx context.Context, interaction types.LlmInteraction) error {
	query := `
        INSERT INTO llm_interactions (
            client_id, city_name, trip_style, days, prompt,
            response_text, model_used, latency_ms, outcome
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
	var clientID *uuid.UUID
	if interaction.ClientID != uuid.Nil {
		clientID = &interaction.ClientID
	}
	_, err := r.db.Exec(ctx, query,
		clientID, interaction.CityName, string(interaction.TripStyle), interaction.Days,
		interaction.Prompt, interaction.ResponseText, interaction.ModelUsed,
		interaction.LatencyMs, interaction.Outcome,
	)
	if err != nil {
		return fmt.Errorf("failed to save llm interaction: %w", err)
	}
	return nil
}

// LogInteractionRecorder writes interactions to the log when no database is
// configured. The prompt and the raw response only appear at debug level.
type LogInteractionRecorder struct {
	logger *slog.Logger
}

func NewLogInteractionRecorder(logger *slog.Logger) *LogInteractionRecorder {
	return &LogInteractionRecorder{logger: logger}
}

func (r *LogInteractionRecorder) SaveInteraction(ctx context.Context, interaction types.LlmInteraction) error {
	r.logger.InfoContext(ctx, "LLM interaction",
		slog.String("client_id", interaction.ClientID.String()),
		slog.String("city", interaction.CityName),
		slog.String("style", string(interaction.TripStyle)),
		slog.Int("days", interaction.Days),
		slog.String("model", interaction.ModelUsed),
		slog.Int("latency_ms", interaction.LatencyMs),
		slog.String("outcome", interaction.Outcome),
	)
	r.logger.DebugContext(ctx, "LLM interaction payload",
		slog.String("prompt", interaction.Prompt),
		slog.String("response", interaction.ResponseText),
	)
	return nil
}
