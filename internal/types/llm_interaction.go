package types

import (
	"github.com/google/uuid"
)

// LlmInteraction is the diagnostic record of one plan generation.
// ResponseText is kept raw so malformed answers can be inspected later;
// it is never sent back to the client.
type LlmInteraction struct {
	ClientID     uuid.UUID `json:"client_id"`
	CityName     string    `json:"city_name"`
	TripStyle    TripStyle `json:"trip_style"`
	Days         int       `json:"days"`
	Prompt       string    `json:"prompt"`
	ResponseText string    `json:"response_text"`
	ModelUsed    string    `json:"model_used"`
	LatencyMs    int       `json:"latency_ms"`
	Outcome      string    `json:"outcome"`
}

const (
	OutcomeSuccess         = "success"
	OutcomeGenerationError = "generation_error"
	OutcomeParseError      = "parse_error"
	OutcomeInvalidPlan     = "invalid_plan"
)
