package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	appMiddleware "github.com/FACorreiaa/go-smart-travel-planner/app/middleware"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/api/geocode"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/api/mapview"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/api/planner"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/api/storage"
	api "github.com/FACorreiaa/go-smart-travel-planner/internal/router"
)

func benchmarkLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func scriptedResponse(b *testing.B) string {
	b.Helper()
	raw, err := (&scriptedGenerator{}).GenerateContent(context.Background(), "", nil)
	if err != nil {
		b.Fatal(err)
	}
	return raw
}

func BenchmarkParseItinerary(b *testing.B) {
	raw := scriptedResponse(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := itinerary.ParseItinerary(raw, 3); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkIsSignificant(b *testing.B) {
	names := []string{
		"วัดพระธาตุดอยสุเทพ",
		itinerary.FallbackChooseNearby,
		itinerary.FallbackHotel("เชียงใหม่"),
		"ร้าน",
		"Nimman Road",
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		geocode.IsSignificant(names[i%len(names)])
	}
}

func BenchmarkGeocodeAll(b *testing.B) {
	plan, err := itinerary.ParseItinerary(scriptedResponse(b), 3)
	if err != nil {
		b.Fatal(err)
	}
	svc := geocode.NewService(&gridGeocoder{}, geocode.DefaultConcurrency, benchmarkLogger())
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		svc.GeocodeAll(ctx, plan)
	}
}

func BenchmarkSubmitPlan(b *testing.B) {
	logger := benchmarkLogger()
	itinerarySvc := itinerary.NewService(&scriptedGenerator{}, itinerary.NewLogInteractionRecorder(logger), itinerary.DefaultTemperature, logger)
	loader := mapview.NewLoader(func(context.Context) (mapview.Locator, error) {
		return geocode.NewService(&gridGeocoder{}, 4, logger), nil
	})
	plannerSvc := planner.NewService(itinerarySvc, storage.NewMemoryStore(), loader, planner.Config{
		MaxDays:        14,
		SessionTTL:     time.Hour,
		AIConfigured:   true,
		MapsConfigured: true,
	}, logger)
	scope := appMiddleware.NewClientScope("bench-secret", time.Hour, false, logger)
	router := api.SetupRouter(&api.Config{
		PlannerHandler: planner.NewHandler(plannerSvc, logger),
		ClientScope:    scope,
		AllowedOrigins: []string{"*"},
	})

	token, err := scope.Issue(uuid.New())
	if err != nil {
		b.Fatal(err)
	}
	body := `{"city":"เชียงใหม่","style":"city","days":3}`

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/planner/plan", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(appMiddleware.ClientTokenHeader, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			b.Fatalf("unexpected status %d: %s", rr.Code, rr.Body.String())
		}
	}
}

func BenchmarkKeyLocations(b *testing.B) {
	plan, err := itinerary.ParseItinerary(scriptedResponse(b), 3)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = itinerary.KeyLocations(plan)
	}
}
