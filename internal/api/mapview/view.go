package mapview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/FACorreiaa/go-smart-travel-planner/internal/api/geocode"
	"github.com/FACorreiaa/go-smart-travel-planner/internal/types"
)

const (
	DefaultZoom      = 6
	SingleMarkerZoom = 14
	CityZoom         = 10
	FitBoundsPadding = 48

	MissingCredentialMessage = "ยังไม่ได้ตั้งค่า Google Maps API Key ฟีเจอร์แผนที่จึงถูกปิดใช้งาน"
	LoadFailedMessage        = "ไม่สามารถโหลดแผนที่ได้ กรุณาลองรีเฟรชอีกครั้ง"
)

// DefaultCenter is Bangkok.
var DefaultCenter = types.LatLng{Lat: 13.7563, Lng: 100.5018}

var dayColors = []string{"#FF5733", "#33FF57", "#3357FF", "#FF33A1", "#A133FF"}

// DayColor picks the marker and line colour of a day, cycling the palette.
func DayColor(day int) string {
	if day < 1 {
		day = 1
	}
	return dayColors[(day-1)%len(dayColors)]
}

type State string

const (
	StateUninitialized     State = "uninitialized"
	StateReady             State = "ready"
	StateRendering         State = "rendering"
	StateMissingCredential State = "missing_credential"
	StateLoadFailed        State = "load_failed"
)

// Terminal states last for the lifetime of the view.
func (s State) Terminal() bool {
	return s == StateMissingCredential || s == StateLoadFailed
}

// Status is the map panel state shown next to the scene.
type Status struct {
	State     State  `json:"state"`
	Geocoding bool   `json:"geocoding"`
	Message   string `json:"message,omitempty"`
}

// View keeps one map scene in step with the current plan.
type View struct {
	mu        sync.Mutex
	loader    *Loader
	canvas    Canvas
	locator   Locator
	state     State
	geocoding bool
	message   string
	// generation discards renders of superseded syncs.
	generation uint64
	logger     *slog.Logger
}

func NewView(loader *Loader, canvas Canvas, logger *slog.Logger) *View {
	return &View{
		loader: loader,
		canvas: canvas,
		state:  StateUninitialized,
		logger: logger,
	}
}

// Init loads the mapping client and sets the default viewport. It is a
// no-op once the view is ready or has failed.
func (v *View) Init(ctx context.Context) State {
	v.mu.Lock()
	if v.state != StateUninitialized {
		s := v.state
		v.mu.Unlock()
		return s
	}
	v.mu.Unlock()

	locator, err := v.loader.Wait(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state != StateUninitialized {
		return v.state
	}
	switch {
	case errors.Is(err, types.ErrMissingMapsCredential):
		v.state, v.message = StateMissingCredential, MissingCredentialMessage
		v.logger.WarnContext(ctx, "Maps credential missing, map disabled")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// The caller gave up; a later Init retries.
		return v.state
	case err != nil:
		v.state, v.message = StateLoadFailed, LoadFailedMessage
		v.logger.ErrorContext(ctx, "Map failed to load", slog.Any("error", err))
	default:
		v.locator = locator
		v.state = StateReady
		v.canvas.SetCenter(DefaultCenter, DefaultZoom)
	}
	return v.state
}

func (v *View) Status() Status {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Status{State: v.state, Geocoding: v.geocoding, Message: v.message}
}

func (v *View) Scene() Scene {
	return v.canvas.Scene()
}

// Sync geocodes plan and redraws the scene. A nil plan clears the map. It
// returns the notice of the geocoding batch, if any. Nothing is drawn when
// the map is unavailable.
func (v *View) Sync(ctx context.Context, plan *types.TripPlan) *types.Notification {
	ctx, span := otel.Tracer("MapView").Start(ctx, "Sync")
	defer span.End()

	if s := v.Init(ctx); s != StateReady && s != StateRendering {
		return nil
	}

	v.mu.Lock()
	v.generation++
	gen := v.generation
	if plan == nil {
		v.canvas.Clear()
		v.geocoding = false
		v.mu.Unlock()
		return nil
	}
	v.geocoding = true
	locator := v.locator
	v.mu.Unlock()

	batch := locator.GeocodeAll(ctx, plan)
	span.SetAttributes(attribute.Int("map.resolved", batch.Resolved))

	var cityCenter *types.LatLng
	if batch.Resolved == 0 {
		cityCenter = v.locateCity(ctx, locator, plan, batch.City)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.generation {
		v.logger.DebugContext(ctx, "Dropping stale map render", slog.Uint64("generation", gen))
		return batch.Notice
	}
	v.geocoding = false
	v.render(plan, batch.ResolvedLocations(), cityCenter)
	return batch.Notice
}

func (v *View) locateCity(ctx context.Context, locator Locator, plan *types.TripPlan, city string) *types.LatLng {
	if city == "" {
		city = geocode.CityFromTitle(plan.TripTitle)
	}
	if city == "" {
		return nil
	}
	pos, err := locator.Locate(ctx, city)
	if err != nil {
		v.logger.WarnContext(ctx, "Could not centre map on city", slog.String("city", city), slog.Any("error", err))
		return nil
	}
	return pos
}

// render redraws everything from scratch. Callers hold v.mu.
func (v *View) render(plan *types.TripPlan, resolved []types.GeocodedLocation, cityCenter *types.LatLng) {
	v.state = StateRendering
	defer func() { v.state = StateReady }()

	v.canvas.Clear()

	var bounds types.Bounds
	for _, loc := range resolved {
		v.canvas.AddMarker(Marker{
			Position: *loc.Position,
			Title:    fmt.Sprintf("%s (%s)", loc.Title, loc.LocationName),
			Color:    DayColor(loc.Day),
			Day:      loc.Day,
			Type:     loc.Type,
			Info: InfoContent{
				Title:        loc.Title,
				LocationName: loc.LocationName,
				Time:         loc.Time,
				MapURL:       types.MapSearchURL(loc.LocationName),
			},
		})
		bounds.Extend(*loc.Position)
	}

	for _, line := range DayLines(plan, resolved) {
		v.canvas.AddPolyline(line)
	}

	switch {
	case len(resolved) == 1:
		v.canvas.SetCenter(*resolved[0].Position, SingleMarkerZoom)
	case len(resolved) > 1:
		v.canvas.FitBounds(bounds, FitBoundsPadding)
	case cityCenter != nil:
		v.canvas.SetCenter(*cityCenter, CityZoom)
	}
}

// OpenInfo opens the popup of marker index.
func (v *View) OpenInfo(index int) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state != StateReady {
		return fmt.Errorf("map is %s", v.state)
	}
	return v.canvas.OpenInfo(index)
}

var startTimeRegex = regexp.MustCompile(`^\s*(\d{1,2})[:.](\d{2})`)

// StartKey normalises the start of a time range to "HH:MM". Untimed
// entries return "".
func StartKey(timeRange string) string {
	m := startTimeRegex.FindStringSubmatch(timeRange)
	if m == nil {
		return ""
	}
	hour := m[1]
	if len(hour) == 1 {
		hour = "0" + hour
	}
	return hour + ":" + m[2]
}

// DayLines builds one polyline per day with at least two resolved points,
// ordered by start time. Untimed points go last, keeping plan order.
func DayLines(plan *types.TripPlan, resolved []types.GeocodedLocation) []Polyline {
	if plan == nil {
		return nil
	}
	var lines []Polyline
	for _, day := range plan.Days {
		var dayLocs []types.GeocodedLocation
		for _, loc := range resolved {
			if loc.Day == day.Day && loc.Position != nil {
				dayLocs = append(dayLocs, loc)
			}
		}
		if len(dayLocs) < 2 {
			continue
		}
		sort.SliceStable(dayLocs, func(i, j int) bool {
			ki, kj := StartKey(dayLocs[i].Time), StartKey(dayLocs[j].Time)
			if ki == "" || kj == "" {
				return ki != "" && kj == ""
			}
			return ki < kj
		})
		path := make([]types.LatLng, len(dayLocs))
		for i, loc := range dayLocs {
			path[i] = *loc.Position
		}
		lines = append(lines, Polyline{Day: day.Day, Color: DayColor(day.Day), Path: path})
	}
	return lines
}
