package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appMiddleware "github.com/FACorreiaa/go-smart-travel-planner/app/middleware"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/api/mapview"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/types"
)

// MockPlannerService is a mock implementation of Service
type MockPlannerService struct {
	mock.Mock
}

var _ Service = (*MockPlannerService)(nil)

func (m *MockPlannerService) State(ctx context.Context, clientID uuid.UUID) Snapshot {
	return m.Called(ctx, clientID).Get(0).(Snapshot)
}

func (m *MockPlannerService) Submit(ctx context.Context, clientID uuid.UUID, req types.TripPlanRequest) (Snapshot, error) {
	args := m.Called(ctx, clientID, req)
	return args.Get(0).(Snapshot), args.Error(1)
}

func (m *MockPlannerService) Save(ctx context.Context, clientID uuid.UUID) (Snapshot, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(Snapshot), args.Error(1)
}

func (m *MockPlannerService) Load(ctx context.Context, clientID uuid.UUID, verbose bool) (Snapshot, error) {
	args := m.Called(ctx, clientID, verbose)
	return args.Get(0).(Snapshot), args.Error(1)
}

func (m *MockPlannerService) ClearSaved(ctx context.Context, clientID uuid.UUID) (Snapshot, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(Snapshot), args.Error(1)
}

func (m *MockPlannerService) ClearCurrent(ctx context.Context, clientID uuid.UUID) Snapshot {
	return m.Called(ctx, clientID).Get(0).(Snapshot)
}

func (m *MockPlannerService) DismissNotification(ctx context.Context, clientID uuid.UUID) Snapshot {
	return m.Called(ctx, clientID).Get(0).(Snapshot)
}

func (m *MockPlannerService) Map(ctx context.Context, clientID uuid.UUID) (mapview.Scene, mapview.Status) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(mapview.Scene), args.Get(1).(mapview.Status)
}

func (m *MockPlannerService) OpenMarker(ctx context.Context, clientID uuid.UUID, index int) (mapview.Scene, error) {
	args := m.Called(ctx, clientID, index)
	return args.Get(0).(mapview.Scene), args.Error(1)
}

func (m *MockPlannerService) KeyLocations(ctx context.Context, clientID uuid.UUID) []types.KeyLocation {
	return m.Called(ctx, clientID).Get(0).([]types.KeyLocation)
}

func setupHandlerTest() (*HandlerImpl, *MockPlannerService, chi.Router, uuid.UUID) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	svc := new(MockPlannerService)
	h := NewHandler(svc, logger)
	clientID := uuid.New()

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(appMiddleware.WithClientID(r.Context(), clientID)))
		})
	})
	r.Get("/trip-styles", h.GetTripStyles)
	r.Get("/planner/state", h.GetState)
	r.Post("/planner/plan", h.SubmitPlan)
	r.Post("/planner/save", h.SavePlan)
	r.Post("/planner/load", h.LoadPlan)
	r.Delete("/planner/saved", h.ClearSaved)
	r.Delete("/planner/current", h.ClearCurrent)
	r.Post("/planner/map/markers/{index}/open", h.OpenMarker)
	r.Get("/planner/locations", h.GetKeyLocations)
	return h, svc, r, clientID
}

func doRequest(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestHandler_GetTripStyles(t *testing.T) {
	_, _, r, _ := setupHandlerTest()
	rr := doRequest(r, http.MethodGet, "/trip-styles", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var styles []types.TripStyleOption
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &styles))
	require.Len(t, styles, 4)
	assert.Equal(t, types.TripStyleNature, styles[0].Value)
	assert.Equal(t, types.TripStyleCity, styles[3].Value)
}

func TestHandler_SubmitPlan(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		_, svc, r, clientID := setupHandlerTest()
		req := types.TripPlanRequest{City: "เชียงใหม่", Style: types.TripStyleCity, Days: 3}
		svc.On("Submit", mock.Anything, clientID, req).Return(Snapshot{Plan: chiangMaiPlan(3)}, nil).Once()

		rr := doRequest(r, http.MethodPost, "/planner/plan", `{"city":"เชียงใหม่","style":"city","days":3}`)
		require.Equal(t, http.StatusOK, rr.Code)

		var snap Snapshot
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))
		require.NotNil(t, snap.Plan)
		assert.Len(t, snap.Plan.Days, 3)
		svc.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		_, svc, r, _ := setupHandlerTest()
		rr := doRequest(r, http.MethodPost, "/planner/plan", `{"city":`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, _, r, _ := setupHandlerTest()
		rr := doRequest(r, http.MethodPost, "/planner/plan", `{"city":"x","style":"city","days":1,"budget":10}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	errCases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"bad request", types.ErrBadRequest, http.StatusBadRequest, MsgBadRequest},
		{"missing key", types.ErrMissingAICredential, http.StatusServiceUnavailable, MsgMissingAIKey},
		{"invalid plan", &types.ValidationError{Reason: "x"}, http.StatusBadGateway, MsgInvalidPlanFormat},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, MsgUnexpected},
	}
	for _, tc := range errCases {
		t.Run(tc.name, func(t *testing.T) {
			_, svc, r, _ := setupHandlerTest()
			svc.On("Submit", mock.Anything, mock.Anything, mock.Anything).Return(Snapshot{}, tc.err).Once()

			rr := doRequest(r, http.MethodPost, "/planner/plan", `{"city":"เชียงใหม่","style":"city","days":3}`)
			assert.Equal(t, tc.status, rr.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.msg, body["error"])
		})
	}
}

func TestHandler_SaveAndLoad(t *testing.T) {
	t.Run("quota exceeded", func(t *testing.T) {
		_, svc, r, clientID := setupHandlerTest()
		svc.On("Save", mock.Anything, clientID).Return(Snapshot{}, types.ErrQuotaExceeded).Once()
		rr := doRequest(r, http.MethodPost, "/planner/save", "")
		assert.Equal(t, http.StatusInsufficientStorage, rr.Code)
	})

	t.Run("load defaults to verbose", func(t *testing.T) {
		_, svc, r, clientID := setupHandlerTest()
		svc.On("Load", mock.Anything, clientID, true).Return(Snapshot{}, nil).Once()
		rr := doRequest(r, http.MethodPost, "/planner/load", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		svc.AssertExpectations(t)
	})

	t.Run("silent load", func(t *testing.T) {
		_, svc, r, clientID := setupHandlerTest()
		svc.On("Load", mock.Anything, clientID, false).Return(Snapshot{}, nil).Once()
		rr := doRequest(r, http.MethodPost, "/planner/load?verbose=false", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		svc.AssertExpectations(t)
	})

	t.Run("bad verbose flag", func(t *testing.T) {
		_, _, r, _ := setupHandlerTest()
		rr := doRequest(r, http.MethodPost, "/planner/load?verbose=maybe", "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("clear saved and current", func(t *testing.T) {
		_, svc, r, clientID := setupHandlerTest()
		svc.On("ClearSaved", mock.Anything, clientID).Return(Snapshot{}, nil).Once()
		svc.On("ClearCurrent", mock.Anything, clientID).Return(Snapshot{}).Once()
		assert.Equal(t, http.StatusOK, doRequest(r, http.MethodDelete, "/planner/saved", "").Code)
		assert.Equal(t, http.StatusOK, doRequest(r, http.MethodDelete, "/planner/current", "").Code)
		svc.AssertExpectations(t)
	})
}

func TestHandler_OpenMarker(t *testing.T) {
	errorBody := func(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
		t.Helper()
		var body map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])
		return body
	}

	t.Run("not a number", func(t *testing.T) {
		_, _, r, _ := setupHandlerTest()
		rr := doRequest(r, http.MethodPost, "/planner/map/markers/abc/open", "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, MsgInvalidMarker, errorBody(t, rr)["error"])
	})

	t.Run("unknown marker", func(t *testing.T) {
		_, svc, r, clientID := setupHandlerTest()
		svc.On("OpenMarker", mock.Anything, clientID, 9).Return(mapview.Scene{}, fmt.Errorf("marker 9: %w", types.ErrNotFound)).Once()
		rr := doRequest(r, http.MethodPost, "/planner/map/markers/9/open", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
		body := errorBody(t, rr)
		assert.Equal(t, MsgMarkerNotFound, body["error"])
		assert.NotContains(t, rr.Body.String(), "marker 9")
	})

	t.Run("map not ready", func(t *testing.T) {
		_, svc, r, clientID := setupHandlerTest()
		svc.On("OpenMarker", mock.Anything, clientID, 0).Return(mapview.Scene{}, errors.New("map is missing_credential")).Once()
		rr := doRequest(r, http.MethodPost, "/planner/map/markers/0/open", "")
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, MsgMapUnavailable, errorBody(t, rr)["error"])
		assert.NotContains(t, rr.Body.String(), "missing_credential")
	})
}

func TestHandler_MissingClientID(t *testing.T) {
	h, svc, _, _ := setupHandlerTest()
	rr := httptest.NewRecorder()
	h.GetState(rr, httptest.NewRequest(http.MethodGet, "/planner/state", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	svc.AssertNotCalled(t, "State", mock.Anything, mock.Anything)
}

func TestHandler_GetKeyLocations(t *testing.T) {
	_, svc, r, clientID := setupHandlerTest()
	locs := []types.KeyLocation{{Name: "วัดพระสิงห์", MapURL: types.MapSearchURL("วัดพระสิงห์")}}
	svc.On("KeyLocations", mock.Anything, clientID).Return(locs).Once()

	rr := doRequest(r, http.MethodGet, "/planner/locations", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var got []types.KeyLocation
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, locs, got)
}
