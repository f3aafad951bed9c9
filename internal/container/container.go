package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	database "github.com/FACorreiaa/go-smart-travel-planner/app/db"
	appMiddleware "github.com/FACorreiaa/go-smart-travel-planner/app/middleware"
	"github.com/FACorreiaa/go-smart-travel-planner/config"
	generativeAI "github.com/FACorreiaa/go-smart-travel-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/api/geocode"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/api/mapview"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/api/planner"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/api/storage"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/types"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *slog.Logger
	Pool           *pgxpool.Pool
	Redis          *redis.Client
	ClientScope    *appMiddleware.ClientScope
	PlannerService *planner.ServiceImpl
	PlannerHandler *planner.HandlerImpl
}

// NewContainer initializes and returns a new dependency container.
// Missing AI or Maps credentials are not fatal: the affected feature is
// reported as unavailable and the rest of the service keeps working.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	store, err := c.initStore(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}
	if cfg.Storage.MaxValueBytes > 0 {
		store = storage.NewLimitedStore(store, cfg.Storage.MaxValueBytes)
	}

	// AI client
	var generator generativeAI.TextGenerator
	aiClient, err := generativeAI.NewAIClient(ctx, cfg.AI.APIKey, cfg.AI.Model)
	switch {
	case errors.Is(err, types.ErrMissingAICredential):
		logger.Warn("Gemini API key not set, plan generation disabled", slog.String("env", config.GeminiAPIKeyEnv))
	case err != nil:
		c.Close()
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	default:
		generator = aiClient
	}

	var recorder itinerary.InteractionRecorder = itinerary.NewLogInteractionRecorder(logger)
	if c.Pool != nil {
		recorder = itinerary.NewPostgresInteractionRepo(c.Pool, logger)
	}
	temperature := cfg.AI.Temperature
	if temperature <= 0 {
		temperature = itinerary.DefaultTemperature
	}
	itinerarySvc := itinerary.NewService(generator, recorder, temperature, logger)

	// Map library: built lazily on the first session that needs it.
	loader := mapview.NewLoader(func(context.Context) (mapview.Locator, error) {
		geocoder, err := geocode.NewGoogleGeocoder(geocode.GoogleGeocoderConfig{
			APIKey:        cfg.Maps.APIKey,
			Language:      cfg.Maps.Language,
			Region:        cfg.Maps.Region,
			RatePerSecond: cfg.Geocoding.RatePerSecond,
			Burst:         cfg.Geocoding.Burst,
			CacheTTL:      cfg.Geocoding.CacheTTL,
		}, logger)
		if err != nil {
			return nil, err
		}
		return geocode.NewService(geocoder, cfg.Geocoding.Concurrency, logger), nil
	})
	if cfg.Maps.APIKey == "" {
		logger.Warn("Google Maps API key not set, map disabled", slog.String("env", config.MapsAPIKeyEnv))
	}

	c.PlannerService = planner.NewService(itinerarySvc, store, loader, planner.Config{
		MaxDays:              cfg.Planner.MaxDays,
		SessionTTL:           cfg.Planner.SessionTTL,
		NotificationDuration: cfg.Planner.NotificationDuration,
		ErrorDuration:        cfg.Planner.ErrorDuration,
		AIConfigured:         generator != nil,
		MapsConfigured:       cfg.Maps.APIKey != "",
	}, logger)
	c.PlannerHandler = planner.NewHandler(c.PlannerService, logger)
	c.ClientScope = appMiddleware.NewClientScope(cfg.Session.Secret, cfg.Session.TTL, cfg.Session.Secure, logger)

	return c, nil
}

// initStore opens the configured persistence backend.
func (c *Container) initStore(ctx context.Context) (storage.Store, error) {
	cfg, logger := c.Config, c.Logger

	switch cfg.Storage.Backend {
	case "", BackendMemory:
		logger.Info("Using in-memory plan storage")
		return storage.NewMemoryStore(), nil

	case BackendPostgres:
		dbConfig, err := database.NewDatabaseConfig(cfg, logger)
		if err != nil {
			return nil, err
		}
		if err = database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		maxWait := time.Duration(cfg.Repositories.Postgres.MAXCONWAITINGTIME) * time.Second
		pool, err := database.Init(dbConfig.ConnectionURL, maxWait, logger)
		if err != nil {
			return nil, err
		}
		c.Pool = pool
		if !database.WaitForDB(ctx, pool, logger) {
			return nil, errors.New("database not ready")
		}
		return storage.NewPostgresStore(pool, logger), nil

	case BackendRedis:
		client := storage.NewRedisClient(cfg.Repositories.Redis.Addr, cfg.Repositories.Redis.Password, cfg.Repositories.Redis.DB)
		c.Redis = client
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Repositories.Redis.Addr, err)
		}
		logger.Info("Using redis plan storage", slog.String("addr", cfg.Repositories.Redis.Addr))
		return storage.NewRedisStore(client, 0), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("Failed to close redis client", slog.Any("error", err))
		}
	}
}
