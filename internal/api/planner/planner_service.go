package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-smart-travel-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/api/mapview"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/api/storage"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/types"
)

type Config struct {
	MaxDays              int
	SessionTTL           time.Duration
	NotificationDuration time.Duration
	ErrorDuration        time.Duration
	AIConfigured         bool
	MapsConfigured       bool
}

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service is the coordinator behind the planner endpoints. Every call is
// scoped to one client and returns that client's state afterwards.
type Service interface {
	State(ctx context.Context, clientID uuid.UUID) Snapshot
	Submit(ctx context.Context, clientID uuid.UUID, req types.TripPlanRequest) (Snapshot, error)
	Save(ctx context.Context, clientID uuid.UUID) (Snapshot, error)
	Load(ctx context.Context, clientID uuid.UUID, verbose bool) (Snapshot, error)
	ClearSaved(ctx context.Context, clientID uuid.UUID) (Snapshot, error)
	ClearCurrent(ctx context.Context, clientID uuid.UUID) Snapshot
	DismissNotification(ctx context.Context, clientID uuid.UUID) Snapshot
	Map(ctx context.Context, clientID uuid.UUID) (mapview.Scene, mapview.Status)
	OpenMarker(ctx context.Context, clientID uuid.UUID, index int) (mapview.Scene, error)
	KeyLocations(ctx context.Context, clientID uuid.UUID) []types.KeyLocation
}

type ServiceImpl struct {
	logger    *slog.Logger
	itinerary itinerary.Service
	store     storage.Store
	loader    *mapview.Loader
	sessions  *cache.Cache
	cfg       Config
}

func NewService(itinerarySvc itinerary.Service, store storage.Store, loader *mapview.Loader, cfg Config, logger *slog.Logger) *ServiceImpl {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	sessions := cache.New(cfg.SessionTTL, cfg.SessionTTL/2)
	sessions.OnEvicted(func(_ string, v interface{}) {
		if sess, ok := v.(*Session); ok {
			sess.close()
		}
	})
	return &ServiceImpl{
		logger:    logger,
		itinerary: itinerarySvc,
		store:     store,
		loader:    loader,
		sessions:  sessions,
		cfg:       cfg,
	}
}

// session returns the client's session, creating and mounting it on first
// access. Mounting silently restores a saved plan.
func (s *ServiceImpl) session(ctx context.Context, clientID uuid.UUID) *Session {
	key := clientID.String()
	if v, found := s.sessions.Get(key); found {
		s.sessions.Set(key, v, cache.DefaultExpiration)
		return v.(*Session)
	}

	sess := &Session{
		clientID: clientID,
		notifier: NewNotifier(s.cfg.NotificationDuration, s.cfg.ErrorDuration),
		view:     mapview.NewView(s.loader, mapview.NewSceneCanvas(), s.logger.With(slog.String("client_id", key))),
	}
	if err := s.sessions.Add(key, sess, cache.DefaultExpiration); err != nil {
		// Lost the race to another request for the same client.
		if v, found := s.sessions.Get(key); found {
			return v.(*Session)
		}
	}

	s.logger.DebugContext(ctx, "Mounting planner session", slog.String("client_id", key))
	sess.view.Init(ctx)
	s.load(ctx, sess, false)
	return sess
}

func (s *ServiceImpl) snapshot(sess *Session) Snapshot {
	sess.mu.Lock()
	snap := Snapshot{
		Plan:           sess.plan,
		IsLoading:      sess.isLoading,
		Error:          sess.err,
		AIConfigured:   s.cfg.AIConfigured,
		MapsConfigured: s.cfg.MapsConfigured,
		ConfigWarnings: []string{},
	}
	sess.mu.Unlock()

	snap.Notification = sess.notifier.Current()
	snap.Map = sess.view.Status()
	if !s.cfg.AIConfigured {
		snap.ConfigWarnings = append(snap.ConfigWarnings, MsgMissingAIKey)
	}
	if !s.cfg.MapsConfigured {
		snap.ConfigWarnings = append(snap.ConfigWarnings, MsgMapsKeyMissingInfo)
	}
	return snap
}

func (s *ServiceImpl) State(ctx context.Context, clientID uuid.UUID) Snapshot {
	return s.snapshot(s.session(ctx, clientID))
}

// Submit generates a new plan. The AI call and geocoding run without the
// session lock, so State observes isLoading meanwhile. Concurrent submits
// are not serialised; the last one to finish wins.
func (s *ServiceImpl) Submit(ctx context.Context, clientID uuid.UUID, req types.TripPlanRequest) (Snapshot, error) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "Submit")
	defer span.End()
	span.SetAttributes(
		attribute.String("client.id", clientID.String()),
		attribute.String("city", req.City),
		attribute.Int("days", req.Days),
	)

	l := s.logger.With(slog.String("method", "Submit"), slog.String("client_id", clientID.String()))
	sess := s.session(ctx, clientID)
	sess.notifier.Clear()

	if !s.cfg.AIConfigured {
		return s.fail(ctx, sess, span, types.ErrMissingAICredential)
	}
	if err := req.Validate(s.cfg.MaxDays); err != nil {
		l.InfoContext(ctx, "Rejected plan request", slog.Any("error", err))
		return s.fail(ctx, sess, span, err)
	}

	sess.mu.Lock()
	sess.isLoading = true
	sess.err = ""
	sess.plan = nil
	sess.mu.Unlock()
	sess.view.Sync(ctx, nil)

	plan, err := s.itinerary.BuildItinerary(ctx, req)

	sess.mu.Lock()
	sess.isLoading = false
	sess.mu.Unlock()

	if err != nil {
		l.ErrorContext(ctx, "Plan generation failed", slog.Any("error", err))
		return s.fail(ctx, sess, span, err)
	}

	sess.setPlan(plan)
	sess.notifier.Show(types.NotificationSuccess, MsgPlanReady)
	l.InfoContext(ctx, "Plan ready", slog.String("title", plan.TripTitle), slog.Int("days", len(plan.Days)))

	sess.notifier.ShowNotice(sess.view.Sync(ctx, plan))
	span.SetStatus(codes.Ok, "plan generated")
	return s.snapshot(sess), nil
}

func (s *ServiceImpl) fail(ctx context.Context, sess *Session, span trace.Span, err error) (Snapshot, error) {
	msg := UserMessage(err)
	sess.mu.Lock()
	sess.err = msg
	sess.mu.Unlock()
	sess.notifier.Show(types.NotificationError, msg)
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	s.logger.DebugContext(ctx, "Plan request failed", slog.String("client_id", sess.clientID.String()), slog.String("message", msg))
	return s.snapshot(sess), err
}

func (s *ServiceImpl) Save(ctx context.Context, clientID uuid.UUID) (Snapshot, error) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "Save")
	defer span.End()

	l := s.logger.With(slog.String("method", "Save"), slog.String("client_id", clientID.String()))
	sess := s.session(ctx, clientID)
	sess.notifier.Clear()

	plan := sess.currentPlan()
	if plan == nil {
		sess.notifier.Show(types.NotificationInfo, MsgNothingToSave)
		return s.snapshot(sess), nil
	}

	payload, err := json.Marshal(plan)
	if err == nil {
		err = s.store.Set(ctx, clientID, storage.PlanStorageKey, string(payload))
	}
	if err != nil {
		l.ErrorContext(ctx, "Failed to save plan", slog.Any("error", err))
		s.countStorageError(ctx, "save")
		span.RecordError(err)
		span.SetStatus(codes.Error, "save failed")
		sess.notifier.Show(types.NotificationError, MsgSaveFailed)
		return s.snapshot(sess), fmt.Errorf("save plan: %w", err)
	}

	sess.notifier.Show(types.NotificationSuccess, MsgSaved)
	return s.snapshot(sess), nil
}

func (s *ServiceImpl) Load(ctx context.Context, clientID uuid.UUID, verbose bool) (Snapshot, error) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "Load")
	defer span.End()
	span.SetAttributes(attribute.Bool("verbose", verbose))

	sess := s.session(ctx, clientID)
	err := s.load(ctx, sess, verbose)
	if err != nil {
		span.RecordError(err)
	}
	return s.snapshot(sess), err
}

// load restores the saved plan into sess. A missing entry is not an error.
// A corrupt entry is deleted so it does not fail every later load.
func (s *ServiceImpl) load(ctx context.Context, sess *Session, verbose bool) error {
	l := s.logger.With(slog.String("method", "load"), slog.String("client_id", sess.clientID.String()))
	sess.notifier.Clear()

	raw, err := s.store.Get(ctx, sess.clientID, storage.PlanStorageKey)
	if errors.Is(err, types.ErrNotFound) {
		if verbose {
			sess.notifier.Show(types.NotificationInfo, MsgNothingSaved)
		}
		return nil
	}
	if err != nil {
		l.ErrorContext(ctx, "Failed to read saved plan", slog.Any("error", err))
		s.countStorageError(ctx, "load")
		if verbose {
			sess.notifier.Show(types.NotificationError, MsgLoadFailed)
		}
		return fmt.Errorf("load plan: %w", err)
	}

	plan, err := decodeSavedPlan(raw)
	if err != nil {
		l.WarnContext(ctx, "Discarding corrupt saved plan", slog.Any("error", err))
		s.countStorageError(ctx, "corrupt")
		if delErr := s.store.Delete(ctx, sess.clientID, storage.PlanStorageKey); delErr != nil {
			l.ErrorContext(ctx, "Failed to delete corrupt saved plan", slog.Any("error", delErr))
		}
		if verbose {
			sess.notifier.Show(types.NotificationError, MsgLoadFailed)
		}
		return err
	}

	sess.mu.Lock()
	sess.plan = plan
	sess.err = ""
	sess.mu.Unlock()
	if verbose {
		sess.notifier.Show(types.NotificationSuccess, MsgLoaded)
	}
	if notice := sess.view.Sync(ctx, plan); verbose {
		sess.notifier.ShowNotice(notice)
	}
	return nil
}

func decodeSavedPlan(raw string) (*types.TripPlan, error) {
	var plan *types.TripPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrCorruptPlan, err)
	}
	if plan == nil {
		return nil, fmt.Errorf("%w: empty document", types.ErrCorruptPlan)
	}
	return plan, nil
}

// ClearSaved deletes the stored plan. The plan on screen stays.
func (s *ServiceImpl) ClearSaved(ctx context.Context, clientID uuid.UUID) (Snapshot, error) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "ClearSaved")
	defer span.End()

	sess := s.session(ctx, clientID)
	sess.notifier.Clear()

	if err := s.store.Delete(ctx, clientID, storage.PlanStorageKey); err != nil {
		s.logger.ErrorContext(ctx, "Failed to clear saved plan", slog.String("client_id", clientID.String()), slog.Any("error", err))
		s.countStorageError(ctx, "clear")
		span.RecordError(err)
		sess.notifier.Show(types.NotificationError, MsgClearSavedFailed)
		return s.snapshot(sess), fmt.Errorf("clear saved plan: %w", err)
	}
	sess.notifier.Show(types.NotificationSuccess, MsgSavedCleared)
	return s.snapshot(sess), nil
}

// ClearCurrent drops the in-memory plan and error. Storage is untouched.
func (s *ServiceImpl) ClearCurrent(ctx context.Context, clientID uuid.UUID) Snapshot {
	sess := s.session(ctx, clientID)
	sess.notifier.Clear()

	sess.mu.Lock()
	sess.plan = nil
	sess.err = ""
	sess.mu.Unlock()
	sess.view.Sync(ctx, nil)

	sess.notifier.Show(types.NotificationInfo, MsgCurrentCleared)
	return s.snapshot(sess)
}

func (s *ServiceImpl) DismissNotification(ctx context.Context, clientID uuid.UUID) Snapshot {
	sess := s.session(ctx, clientID)
	sess.notifier.Clear()
	return s.snapshot(sess)
}

func (s *ServiceImpl) Map(ctx context.Context, clientID uuid.UUID) (mapview.Scene, mapview.Status) {
	sess := s.session(ctx, clientID)
	return sess.view.Scene(), sess.view.Status()
}

func (s *ServiceImpl) OpenMarker(ctx context.Context, clientID uuid.UUID, index int) (mapview.Scene, error) {
	sess := s.session(ctx, clientID)
	if err := sess.view.OpenInfo(index); err != nil {
		return sess.view.Scene(), err
	}
	return sess.view.Scene(), nil
}

func (s *ServiceImpl) KeyLocations(ctx context.Context, clientID uuid.UUID) []types.KeyLocation {
	return itinerary.KeyLocations(s.session(ctx, clientID).currentPlan())
}

func (s *ServiceImpl) countStorageError(ctx context.Context, op string) {
	metrics.Get().StorageErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
}
