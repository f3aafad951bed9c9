package types

import (
	"math"
	"net/url"
)

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat" example:"18.7883"`
	Lng float64 `json:"lng" example:"98.9853"`
}

// Bounds is the bounding box of a set of points. The zero value is empty.
type Bounds struct {
	SouthWest LatLng `json:"southWest"`
	NorthEast LatLng `json:"northEast"`
	set       bool
}

// Extend grows b to include p.
func (b *Bounds) Extend(p LatLng) {
	if !b.set {
		b.SouthWest, b.NorthEast, b.set = p, p, true
		return
	}
	b.SouthWest.Lat = math.Min(b.SouthWest.Lat, p.Lat)
	b.SouthWest.Lng = math.Min(b.SouthWest.Lng, p.Lng)
	b.NorthEast.Lat = math.Max(b.NorthEast.Lat, p.Lat)
	b.NorthEast.Lng = math.Max(b.NorthEast.Lng, p.Lng)
}

func (b Bounds) IsEmpty() bool { return !b.set }

// LocationType tags where a location came from inside a DayPlan.
type LocationType string

const (
	LocationActivity          LocationType = "activity"
	LocationAfternoonActivity LocationType = "afternoon-activity"
	LocationLunch             LocationType = "lunch"
	LocationDinner            LocationType = "dinner"
	LocationAccommodation     LocationType = "accommodation"
)

// GeocodedLocation is derived from a TripPlan on every map refresh.
// Position is nil when geocoding failed.
type GeocodedLocation struct {
	LocationName string       `json:"locationName"`
	Title        string       `json:"title"`
	Day          int          `json:"day"`
	Type         LocationType `json:"type"`
	Time         string       `json:"time,omitempty"`
	Position     *LatLng      `json:"position"`
}

const mapSearchBaseURL = "https://maps.google.com/?q="

// MapSearchURL builds the map web site search link for a place name.
func MapSearchURL(name string) string {
	return mapSearchBaseURL + url.QueryEscape(name)
}

// KeyLocation is one entry of the "places in this trip" list.
type KeyLocation struct {
	Name   string `json:"name" example:"วัดพระธาตุดอยสุเทพ"`
	MapURL string `json:"mapUrl" example:"https://maps.google.com/?q=%E0%B8%A7%E0%B8%B1%E0%B8%94"`
}
