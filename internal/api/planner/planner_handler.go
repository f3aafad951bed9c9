package planner

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	appMiddleware "github.com/FACorreiaa/go-smart-travel-planner/app/middleware"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/api"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/api/mapview"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/types"
)

type HandlerImpl struct {
	plannerService Service
	logger         *slog.Logger
}

func NewHandler(plannerService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		plannerService: plannerService,
		logger:         logger,
	}
}

// MapResponse is the body of the map endpoints.
type MapResponse struct {
	Scene  mapview.Scene  `json:"scene"`
	Status mapview.Status `json:"status"`
}

func (h *HandlerImpl) clientID(w http.ResponseWriter, r *http.Request, l *slog.Logger, span trace.Span) (uuid.UUID, bool) {
	clientID, ok := appMiddleware.ClientIDFromContext(r.Context())
	if !ok {
		l.ErrorContext(r.Context(), "Client ID not found in context")
		span.SetStatus(codes.Error, "client id missing")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Client identity required")
		return uuid.Nil, false
	}
	return clientID, true
}

func startSpan(r *http.Request, name, route string) (*http.Request, trace.Span) {
	ctx, span := otel.Tracer("PlannerHandler").Start(r.Context(), name, trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String(route),
	))
	return r.WithContext(ctx), span
}

// GetTripStyles godoc
// @Summary      List trip styles
// @Description  Returns the selectable travel styles in display order.
// @Tags         Planner
// @Produce      json
// @Success      200 {array} types.TripStyleOption
// @Router       /trip-styles [get]
func (h *HandlerImpl) GetTripStyles(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, types.TripStyleOptions())
}

// GetState godoc
// @Summary      Get planner state
// @Description  Returns the current plan, loading flag, error, notification and map status of the calling browser.
// @Tags         Planner
// @Produce      json
// @Success      200 {object} planner.Snapshot
// @Router       /planner/state [get]
func (h *HandlerImpl) GetState(w http.ResponseWriter, r *http.Request) {
	r, span := startSpan(r, "GetState", "/planner/state")
	defer span.End()
	l := h.logger.With(slog.String("handler", "GetState"))

	clientID, ok := h.clientID(w, r, l, span)
	if !ok {
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, h.plannerService.State(r.Context(), clientID))
}

// SubmitPlan godoc
// @Summary      Generate a trip plan
// @Description  Builds an itinerary for a city, style and number of days with the generative AI service, then geocodes it for the map.
// @Tags         Planner
// @Accept       json
// @Produce      json
// @Param        request body types.TripPlanRequest true "Trip request"
// @Success      200 {object} planner.Snapshot
// @Failure      400 {object} types.Response "Invalid request"
// @Failure      429 {object} types.Response "Too many requests"
// @Failure      502 {object} types.Response "AI service failure or invalid response"
// @Failure      503 {object} types.Response "AI service not configured"
// @Router       /planner/plan [post]
func (h *HandlerImpl) SubmitPlan(w http.ResponseWriter, r *http.Request) {
	r, span := startSpan(r, "SubmitPlan", "/planner/plan")
	defer span.End()
	l := h.logger.With(slog.String("handler", "SubmitPlan"))

	clientID, ok := h.clientID(w, r, l, span)
	if !ok {
		return
	}

	var req types.TripPlanRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(r.Context(), "Failed to decode plan request", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid body")
		api.ErrorResponse(w, r, http.StatusBadRequest, MsgBadRequest)
		return
	}

	snap, err := h.plannerService.Submit(r.Context(), clientID, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "submit failed")
		api.ErrorResponse(w, r, statusFor(err), UserMessage(err))
		return
	}

	span.SetStatus(codes.Ok, "plan generated")
	api.WriteJSONResponse(w, r, http.StatusOK, snap)
}

// SavePlan godoc
// @Summary      Save the current plan
// @Description  Stores the current plan under the browser's single saved-plan slot.
// @Tags         Planner
// @Produce      json
// @Success      200 {object} planner.Snapshot
// @Failure      507 {object} types.Response "Storage quota exceeded"
// @Failure      500 {object} types.Response "Storage failure"
// @Router       /planner/save [post]
func (h *HandlerImpl) SavePlan(w http.ResponseWriter, r *http.Request) {
	r, span := startSpan(r, "SavePlan", "/planner/save")
	defer span.End()
	l := h.logger.With(slog.String("handler", "SavePlan"))

	clientID, ok := h.clientID(w, r, l, span)
	if !ok {
		return
	}
	snap, err := h.plannerService.Save(r.Context(), clientID)
	if err != nil {
		span.SetStatus(codes.Error, "save failed")
		api.ErrorResponse(w, r, statusFor(err), MsgSaveFailed)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, snap)
}

// LoadPlan godoc
// @Summary      Load the saved plan
// @Description  Replaces the current plan with the saved one. With verbose=false no notification is produced.
// @Tags         Planner
// @Produce      json
// @Param        verbose query bool false "Emit notifications" default(true)
// @Success      200 {object} planner.Snapshot
// @Failure      500 {object} types.Response "Storage failure or corrupt saved plan"
// @Router       /planner/load [post]
func (h *HandlerImpl) LoadPlan(w http.ResponseWriter, r *http.Request) {
	r, span := startSpan(r, "LoadPlan", "/planner/load")
	defer span.End()
	l := h.logger.With(slog.String("handler", "LoadPlan"))

	clientID, ok := h.clientID(w, r, l, span)
	if !ok {
		return
	}
	verbose := true
	if v := r.URL.Query().Get("verbose"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			api.ErrorResponse(w, r, http.StatusBadRequest, "verbose must be true or false")
			return
		}
		verbose = parsed
	}

	snap, err := h.plannerService.Load(r.Context(), clientID, verbose)
	if err != nil {
		span.SetStatus(codes.Error, "load failed")
		api.ErrorResponse(w, r, statusFor(err), MsgLoadFailed)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, snap)
}

// ClearSaved godoc
// @Summary      Delete the saved plan
// @Tags         Planner
// @Produce      json
// @Success      200 {object} planner.Snapshot
// @Failure      500 {object} types.Response "Storage failure"
// @Router       /planner/saved [delete]
func (h *HandlerImpl) ClearSaved(w http.ResponseWriter, r *http.Request) {
	r, span := startSpan(r, "ClearSaved", "/planner/saved")
	defer span.End()
	l := h.logger.With(slog.String("handler", "ClearSaved"))

	clientID, ok := h.clientID(w, r, l, span)
	if !ok {
		return
	}
	snap, err := h.plannerService.ClearSaved(r.Context(), clientID)
	if err != nil {
		span.SetStatus(codes.Error, "clear saved failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, MsgClearSavedFailed)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, snap)
}

// ClearCurrent godoc
// @Summary      Discard the current plan
// @Description  Drops the in-memory plan and error. The saved plan is kept.
// @Tags         Planner
// @Produce      json
// @Success      200 {object} planner.Snapshot
// @Router       /planner/current [delete]
func (h *HandlerImpl) ClearCurrent(w http.ResponseWriter, r *http.Request) {
	r, span := startSpan(r, "ClearCurrent", "/planner/current")
	defer span.End()
	l := h.logger.With(slog.String("handler", "ClearCurrent"))

	clientID, ok := h.clientID(w, r, l, span)
	if !ok {
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, h.plannerService.ClearCurrent(r.Context(), clientID))
}

// DismissNotification godoc
// @Summary      Dismiss the notification
// @Tags         Planner
// @Produce      json
// @Success      200 {object} planner.Snapshot
// @Router       /planner/notification [delete]
func (h *HandlerImpl) DismissNotification(w http.ResponseWriter, r *http.Request) {
	r, span := startSpan(r, "DismissNotification", "/planner/notification")
	defer span.End()
	l := h.logger.With(slog.String("handler", "DismissNotification"))

	clientID, ok := h.clientID(w, r, l, span)
	if !ok {
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, h.plannerService.DismissNotification(r.Context(), clientID))
}

// GetMap godoc
// @Summary      Get the map scene
// @Description  Markers, day lines and viewport derived from the current plan.
// @Tags         Map
// @Produce      json
// @Success      200 {object} planner.MapResponse
// @Router       /planner/map [get]
func (h *HandlerImpl) GetMap(w http.ResponseWriter, r *http.Request) {
	r, span := startSpan(r, "GetMap", "/planner/map")
	defer span.End()
	l := h.logger.With(slog.String("handler", "GetMap"))

	clientID, ok := h.clientID(w, r, l, span)
	if !ok {
		return
	}
	scene, status := h.plannerService.Map(r.Context(), clientID)
	api.WriteJSONResponse(w, r, http.StatusOK, MapResponse{Scene: scene, Status: status})
}

// OpenMarker godoc
// @Summary      Open a marker popup
// @Tags         Map
// @Produce      json
// @Param        index path int true "Marker index"
// @Success      200 {object} mapview.Scene
// @Failure      400 {object} types.Response "Invalid index"
// @Failure      404 {object} types.Response "No such marker"
// @Failure      409 {object} types.Response "Map not available"
// @Router       /planner/map/markers/{index}/open [post]
func (h *HandlerImpl) OpenMarker(w http.ResponseWriter, r *http.Request) {
	r, span := startSpan(r, "OpenMarker", "/planner/map/markers/{index}/open")
	defer span.End()
	l := h.logger.With(slog.String("handler", "OpenMarker"))

	clientID, ok := h.clientID(w, r, l, span)
	if !ok {
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, MsgInvalidMarker)
		return
	}

	scene, err := h.plannerService.OpenMarker(r.Context(), clientID, index)
	if err != nil {
		status, msg := http.StatusConflict, MsgMapUnavailable
		if errors.Is(err, types.ErrNotFound) {
			status, msg = http.StatusNotFound, MsgMarkerNotFound
		}
		l.WarnContext(r.Context(), "Failed to open marker", slog.Int("index", index), slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, status, msg)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, scene)
}

// GetKeyLocations godoc
// @Summary      List the plan's locations
// @Description  Distinct location names of the current plan with map search links.
// @Tags         Planner
// @Produce      json
// @Success      200 {array} types.KeyLocation
// @Router       /planner/locations [get]
func (h *HandlerImpl) GetKeyLocations(w http.ResponseWriter, r *http.Request) {
	r, span := startSpan(r, "GetKeyLocations", "/planner/locations")
	defer span.End()
	l := h.logger.With(slog.String("handler", "GetKeyLocations"))

	clientID, ok := h.clientID(w, r, l, span)
	if !ok {
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, h.plannerService.KeyLocations(r.Context(), clientID))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrMissingAICredential):
		return http.StatusServiceUnavailable
	case errors.Is(err, types.ErrInvalidAICredential),
		errors.Is(err, types.ErrGeneration),
		errors.Is(err, types.ErrPlanParse),
		errors.Is(err, types.ErrInvalidPlan):
		return http.StatusBadGateway
	case errors.Is(err, types.ErrQuotaExceeded):
		return http.StatusInsufficientStorage
	default:
		return http.StatusInternalServerError
	}
}
