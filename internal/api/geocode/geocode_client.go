package geocode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/time/rate"
	"googlemaps.github.io/maps"

	"github.com/FACorreiaa/go-smart-travel-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/types"
)

// ErrZeroResults is returned when the address resolved to nothing.
var ErrZeroResults = errors.New("geocoding returned zero results")

// Geocoder resolves a free-text address to a coordinate.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*types.LatLng, error)
}

var _ Geocoder = (*GoogleGeocoder)(nil)

type GoogleGeocoderConfig struct {
	APIKey        string
	Language      string
	Region        string
	RatePerSecond float64
	Burst         int
	CacheTTL      time.Duration
	// BaseURL overrides the API host; tests point it at httptest.
	BaseURL string
}

// GoogleGeocoder calls the Google Geocoding API behind a client side rate
// limiter and a result cache. Zero results are cached, transport and quota
// failures are not.
type GoogleGeocoder struct {
	client   *maps.Client
	limiter  *rate.Limiter
	cache    *cache.Cache
	language string
	region   string
	logger   *slog.Logger
}

func NewGoogleGeocoder(cfg GoogleGeocoderConfig, logger *slog.Logger) (*GoogleGeocoder, error) {
	if cfg.APIKey == "" {
		return nil, types.ErrMissingMapsCredential
	}
	opts := []maps.ClientOption{maps.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, maps.WithBaseURL(cfg.BaseURL))
	}
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &GoogleGeocoder{
		client:   client,
		limiter:  rate.NewLimiter(limit, burst),
		cache:    cache.New(ttl, ttl/2),
		language: cfg.Language,
		region:   cfg.Region,
		logger:   logger,
	}, nil
}

type cachedResult struct {
	pos *types.LatLng
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (*types.LatLng, error) {
	ctx, span := otel.Tracer("GoogleGeocoder").Start(ctx, "Geocode")
	defer span.End()
	span.SetAttributes(attribute.String("geocode.address", address))

	l := g.logger.With(slog.String("method", "Geocode"), slog.String("address", address))
	counter := metrics.Get().GeocodeRequestsTotal

	cacheKey := strings.ToLower(strings.TrimSpace(address))
	if cached, found := g.cache.Get(cacheKey); found {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		res := cached.(cachedResult)
		if res.pos == nil {
			return nil, ErrZeroResults
		}
		pos := *res.pos
		return &pos, nil
	}

	if err := g.limiter.Wait(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "rate limiter wait failed")
		return nil, fmt.Errorf("geocode rate limit wait: %w", err)
	}

	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  address,
		Language: g.language,
		Region:   g.region,
	})
	if err != nil {
		counter.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "error")))
		l.WarnContext(ctx, "Geocoding failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "geocoding failed")
		return nil, fmt.Errorf("geocode %q: %w", address, err)
	}
	if len(results) == 0 {
		counter.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "zero_results")))
		l.DebugContext(ctx, "Geocoding returned zero results")
		g.cache.Set(cacheKey, cachedResult{}, cache.DefaultExpiration)
		return nil, ErrZeroResults
	}

	counter.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "ok")))
	loc := results[0].Geometry.Location
	pos := types.LatLng{Lat: loc.Lat, Lng: loc.Lng}
	g.cache.Set(cacheKey, cachedResult{pos: &pos}, cache.DefaultExpiration)
	span.SetStatus(codes.Ok, "geocoded")

	out := pos
	return &out, nil
}
