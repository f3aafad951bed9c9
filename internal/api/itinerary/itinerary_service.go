package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/go-smart-travel-planner/app/observability/metrics"
	appMiddleware "github.com/FACorreiaa/go-smart-travel-planner/app/middleware"
	generativeAI "github.com/FACorreiaa/go-smart-travel-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/types"
)

const DefaultTemperature float32 = 0.7

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service turns a validated trip request into a parsed TripPlan.
type Service interface {
	BuildItinerary(ctx context.Context, req types.TripPlanRequest) (*types.TripPlan, error)
}

type ServiceImpl struct {
	logger      *slog.Logger
	generator   generativeAI.TextGenerator
	recorder    InteractionRecorder
	temperature float32
}

// NewService wires the itinerary builder. A nil generator means no AI
// credential is configured; every BuildItinerary call then fails with
// types.ErrMissingAICredential without touching the network.
func NewService(generator generativeAI.TextGenerator, recorder InteractionRecorder, temperature float32, logger *slog.Logger) *ServiceImpl {
	if temperature <= 0 {
		temperature = DefaultTemperature
	}
	if recorder == nil {
		recorder = NewLogInteractionRecorder(logger)
	}
	return &ServiceImpl{
		logger:      logger,
		generator:   generator,
		recorder:    recorder,
		temperature: temperature,
	}
}

func (s *ServiceImpl) BuildItinerary(ctx context.Context, req types.TripPlanRequest) (*types.TripPlan, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "BuildItinerary")
	defer span.End()
	span.SetAttributes(
		attribute.String("city", req.City),
		attribute.String("style", string(req.Style)),
		attribute.Int("days", req.Days),
	)

	l := s.logger.With(slog.String("method", "BuildItinerary"), slog.String("city", req.City))

	if s.generator == nil {
		span.SetStatus(codes.Error, "missing AI credential")
		return nil, types.ErrMissingAICredential
	}
	if err := req.Validate(0); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		return nil, err
	}

	systemInstruction, prompt := Prompts(req)
	config := generativeAI.JSONConfig(systemInstruction, s.temperature)

	l.DebugContext(ctx, "Requesting itinerary", slog.Int("days", req.Days), slog.String("style", string(req.Style)))
	start := time.Now()
	raw, err := s.generator.GenerateContent(ctx, prompt, config)
	latency := time.Since(start)

	interaction := types.LlmInteraction{
		CityName:     req.City,
		TripStyle:    req.Style,
		Days:         req.Days,
		Prompt:       systemInstruction + "\n\n" + prompt,
		ResponseText: raw,
		ModelUsed:    s.generator.Model(),
		LatencyMs:    int(latency.Milliseconds()),
	}
	if clientID, ok := appMiddleware.ClientIDFromContext(ctx); ok {
		interaction.ClientID = clientID
	}

	if err != nil {
		interaction.Outcome = types.OutcomeGenerationError
		s.finish(ctx, l, interaction, latency)
		l.ErrorContext(ctx, "AI generation failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		if errors.Is(err, types.ErrInvalidAICredential) || errors.Is(err, types.ErrGeneration) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", types.ErrGeneration, err)
	}

	plan, err := ParseItinerary(raw, req.Days)
	if err != nil {
		interaction.Outcome = types.OutcomeInvalidPlan
		if errors.Is(err, types.ErrPlanParse) {
			interaction.Outcome = types.OutcomeParseError
		}
		s.finish(ctx, l, interaction, latency)
		l.ErrorContext(ctx, "AI response rejected",
			slog.Any("error", err),
			slog.Int("response_len", len(raw)),
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid response")
		return nil, err
	}

	interaction.Outcome = types.OutcomeSuccess
	s.finish(ctx, l, interaction, latency)
	l.InfoContext(ctx, "Itinerary generated",
		slog.String("title", plan.TripTitle),
		slog.Duration("latency", latency),
	)
	span.SetAttributes(attribute.String("trip.title", plan.TripTitle))
	span.SetStatus(codes.Ok, "itinerary generated")
	return plan, nil
}

// finish records the interaction and the generation metrics. Recording
// failures are logged and never surface to the caller.
func (s *ServiceImpl) finish(ctx context.Context, l *slog.Logger, interaction types.LlmInteraction, latency time.Duration) {
	m := metrics.Get()
	outcome := metric.WithAttributes(attribute.String("outcome", interaction.Outcome))
	m.PlanRequestsTotal.Add(ctx, 1, outcome)
	m.PlanDurationSeconds.Record(ctx, latency.Seconds(), outcome)

	if err := s.recorder.SaveInteraction(ctx, interaction); err != nil {
		l.WarnContext(ctx, "Failed to record LLM interaction", slog.Any("error", err))
	}
}
