package geocode

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	a "github.com/petar-dambovaliev/aho-corasick"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-smart-travel-planner/internal/types"
)

const (
	DefaultConcurrency = 8
	minSignificantLen  = 3

	PartialFailureMessage = "ไม่พบตำแหน่งของบางสถานที่บนแผนที่"
	TotalFailureMessage   = "ไม่สามารถระบุตำแหน่งสถานที่บนแผนที่ได้"
)

// placeholderTerms mark names the model wrote when it could not name a
// venue. Matching any of them makes a location not worth geocoding.
var placeholderTerms = []string{
	"ผู้ใช้เลือกตามชอบ",
	"แนะนำ",
	"ย่าน",
	"โรงแรม/ที่พักในย่านตัวเมือง",
}

var (
	placeholderBuilder = a.NewAhoCorasickBuilder(a.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  false,
	})
	placeholderMatcher = placeholderBuilder.Build(placeholderTerms)
)

var cityFromTitleRegex = regexp.MustCompile(`ที่\s+(.+?)\s*\(`)

// Flatten lists every location of plan in day order. Within a day the
// order is activities, afternoon activities, lunch, dinner, accommodation.
func Flatten(plan *types.TripPlan) []types.GeocodedLocation {
	if plan == nil {
		return nil
	}
	var out []types.GeocodedLocation
	for _, day := range plan.Days {
		for _, act := range day.Activities {
			out = append(out, types.GeocodedLocation{
				LocationName: act.LocationName, Title: act.Description,
				Day: day.Day, Type: types.LocationActivity, Time: act.Time,
			})
		}
		for _, act := range day.AfternoonActivities {
			out = append(out, types.GeocodedLocation{
				LocationName: act.LocationName, Title: act.Description,
				Day: day.Day, Type: types.LocationAfternoonActivity, Time: act.Time,
			})
		}
		if day.Lunch != nil {
			out = append(out, types.GeocodedLocation{
				LocationName: day.Lunch.LocationName, Title: day.Lunch.Name,
				Day: day.Day, Type: types.LocationLunch, Time: day.Lunch.Time,
			})
		}
		if day.Dinner != nil {
			out = append(out, types.GeocodedLocation{
				LocationName: day.Dinner.LocationName, Title: day.Dinner.Name,
				Day: day.Day, Type: types.LocationDinner, Time: day.Dinner.Time,
			})
		}
		if day.Accommodation != nil {
			out = append(out, types.GeocodedLocation{
				LocationName: day.Accommodation.LocationName, Title: day.Accommodation.Name,
				Day: day.Day, Type: types.LocationAccommodation,
			})
		}
	}
	return out
}

// IsSignificant reports whether name is specific enough to geocode. It is a
// heuristic: blank names, very short names and placeholder phrases fail.
func IsSignificant(name string) bool {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < minSignificantLen {
		return false
	}
	return len(placeholderMatcher.FindAll(name)) == 0
}

// CityFromTitle recovers the city token from a plan title such as
// "แผนเที่ยว 3 วัน 2 คืน ที่ เชียงใหม่ (สไตล์: ...)".
func CityFromTitle(title string) string {
	m := cityFromTitleRegex.FindStringSubmatch(title)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// QualifyAddress appends the city to name unless name already contains it.
func QualifyAddress(name, city string) string {
	if city == "" || strings.Contains(name, city) {
		return name
	}
	return name + ", " + city
}

// BatchResult is the settled outcome of one GeocodeAll call.
// Locations holds every significant location in Flatten order, with a nil
// Position where the lookup failed.
type BatchResult struct {
	Locations     []types.GeocodedLocation `json:"locations"`
	Resolved      int                      `json:"resolved"`
	Failed        int                      `json:"failed"`
	NoSignificant bool                     `json:"noSignificant"`
	City          string                   `json:"city"`
	Notice        *types.Notification      `json:"notice,omitempty"`
}

// ResolvedLocations returns the entries that carry a position.
func (b BatchResult) ResolvedLocations() []types.GeocodedLocation {
	out := make([]types.GeocodedLocation, 0, b.Resolved)
	for _, loc := range b.Locations {
		if loc.Position != nil {
			out = append(out, loc)
		}
	}
	return out
}

type Service struct {
	geocoder    Geocoder
	concurrency int
	logger      *slog.Logger
}

func NewService(geocoder Geocoder, concurrency int, logger *slog.Logger) *Service {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Service{
		geocoder:    geocoder,
		concurrency: concurrency,
		logger:      logger,
	}
}

// GeocodeAll resolves every significant location of plan. Lookups run
// concurrently and settle independently: a failed lookup leaves its entry
// without a position and never cancels the others.
func (s *Service) GeocodeAll(ctx context.Context, plan *types.TripPlan) BatchResult {
	ctx, span := otel.Tracer("GeocodeService").Start(ctx, "GeocodeAll")
	defer span.End()

	l := s.logger.With(slog.String("method", "GeocodeAll"))

	var result BatchResult
	if plan == nil {
		result.NoSignificant = true
		return result
	}
	result.City = CityFromTitle(plan.TripTitle)

	for _, loc := range Flatten(plan) {
		if IsSignificant(loc.LocationName) {
			result.Locations = append(result.Locations, loc)
		}
	}
	span.SetAttributes(attribute.Int("geocode.significant", len(result.Locations)))
	if len(result.Locations) == 0 {
		result.NoSignificant = true
		l.DebugContext(ctx, "No significant locations to geocode", slog.String("city", result.City))
		return result
	}

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i := range result.Locations {
		loc := &result.Locations[i]
		address := QualifyAddress(loc.LocationName, result.City)
		g.Go(func() error {
			pos, err := s.geocoder.Geocode(ctx, address)
			if err != nil {
				l.WarnContext(ctx, "Location could not be geocoded",
					slog.String("location", loc.LocationName),
					slog.Any("error", err))
				return nil
			}
			loc.Position = pos
			return nil
		})
	}
	_ = g.Wait()

	for _, loc := range result.Locations {
		if loc.Position != nil {
			result.Resolved++
		} else {
			result.Failed++
		}
	}
	switch {
	case result.Failed == 0:
	case result.Resolved == 0:
		result.Notice = &types.Notification{Kind: types.NotificationError, Message: TotalFailureMessage}
	default:
		result.Notice = &types.Notification{Kind: types.NotificationInfo, Message: PartialFailureMessage}
	}

	span.SetAttributes(
		attribute.Int("geocode.resolved", result.Resolved),
		attribute.Int("geocode.failed", result.Failed),
	)
	l.InfoContext(ctx, "Geocoding batch settled",
		slog.Int("resolved", result.Resolved),
		slog.Int("failed", result.Failed))
	return result
}

// Locate resolves a single address, used to centre the map on a city.
func (s *Service) Locate(ctx context.Context, address string) (*types.LatLng, error) {
	return s.geocoder.Geocode(ctx, address)
}
