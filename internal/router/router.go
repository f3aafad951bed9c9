package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	appMiddleware "github.com/FACorreiaa/go-smart-travel-planner/app/middleware"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/api/planner"
)

// Config contains dependencies needed for the router setup
type Config struct {
	PlannerHandler *planner.HandlerImpl
	ClientScope    *appMiddleware.ClientScope
	AllowedOrigins []string
	// PlanRequestsPerMinute limits plan generations per client IP. Zero disables the limit.
	PlanRequestsPerMinute int
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (request ID, logger, recoverer) is applied in
// main.go before this router is mounted.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", appMiddleware.ClientTokenHeader},
		ExposedHeaders:   []string{appMiddleware.ClientTokenHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/trip-styles", cfg.PlannerHandler.GetTripStyles)

		// Everything under /planner is scoped to the calling browser.
		r.Route("/planner", func(r chi.Router) {
			r.Use(cfg.ClientScope.Handler)

			r.Get("/state", cfg.PlannerHandler.GetState)
			r.Group(func(r chi.Router) {
				if cfg.PlanRequestsPerMinute > 0 {
					r.Use(httprate.LimitByIP(cfg.PlanRequestsPerMinute, time.Minute))
				}
				r.Post("/plan", cfg.PlannerHandler.SubmitPlan)
			})
			r.Post("/save", cfg.PlannerHandler.SavePlan)
			r.Post("/load", cfg.PlannerHandler.LoadPlan)
			r.Delete("/saved", cfg.PlannerHandler.ClearSaved)
			r.Delete("/current", cfg.PlannerHandler.ClearCurrent)
			r.Delete("/notification", cfg.PlannerHandler.DismissNotification)

			r.Get("/map", cfg.PlannerHandler.GetMap)
			r.Post("/map/markers/{index}/open", cfg.PlannerHandler.OpenMarker)
			r.Get("/locations", cfg.PlannerHandler.GetKeyLocations)
		})
	})

	return r
}
