package types

import (
	"fmt"
	"strings"
)

// TripStyle is the travel style picked in the planner form.
type TripStyle string

const (
	TripStyleNature    TripStyle = "nature"
	TripStyleCafe      TripStyle = "cafe-hopping"
	TripStyleAdventure TripStyle = "adventure"
	TripStyleCity      TripStyle = "city"
)

// TripStyleOption is one entry of the style selector.
type TripStyleOption struct {
	Value TripStyle `json:"value" example:"city"`
	Label string    `json:"label" example:"🏙️ เที่ยวในเมือง (City Tour)"`
}

var tripStyleLabels = map[TripStyle]string{
	TripStyleNature:    "เที่ยวธรรมชาติ",
	TripStyleCafe:      "สายชิลคาเฟ่",
	TripStyleAdventure: "ลุยหนักธรรมชาติ",
	TripStyleCity:      "เที่ยวในเมือง",
}

// TripStyleOptions returns the selectable styles in display order.
func TripStyleOptions() []TripStyleOption {
	return []TripStyleOption{
		{Value: TripStyleNature, Label: "🌿 เที่ยวธรรมชาติ (Nature)"},
		{Value: TripStyleCafe, Label: "☕ สายชิลคาเฟ่ (Cafe Hopping)"},
		{Value: TripStyleAdventure, Label: "🏞️ ลุยหนักธรรมชาติ (Adventure)"},
		{Value: TripStyleCity, Label: "🏙️ เที่ยวในเมือง (City Tour)"},
	}
}

// Valid reports whether s is one of the known styles.
func (s TripStyle) Valid() bool {
	_, ok := tripStyleLabels[s]
	return ok
}

// Label is the Thai name of the style, as written into prompts and titles.
func (s TripStyle) Label() string {
	if label, ok := tripStyleLabels[s]; ok {
		return label
	}
	return string(s)
}

// TripPlanRequest is the input of a plan generation.
type TripPlanRequest struct {
	City  string    `json:"city" example:"เชียงใหม่"`
	Style TripStyle `json:"style" example:"city"`
	Days  int       `json:"days" example:"3"`
}

// Validate checks the request before any call to the AI service.
// maxDays <= 0 disables the upper bound.
func (r TripPlanRequest) Validate(maxDays int) error {
	if strings.TrimSpace(r.City) == "" {
		return fmt.Errorf("%w: city is required", ErrBadRequest)
	}
	if !r.Style.Valid() {
		return fmt.Errorf("%w: unknown trip style %q", ErrBadRequest, r.Style)
	}
	if r.Days < 1 {
		return fmt.Errorf("%w: days must be at least 1, got %d", ErrBadRequest, r.Days)
	}
	if maxDays > 0 && r.Days > maxDays {
		return fmt.Errorf("%w: days must be at most %d, got %d", ErrBadRequest, maxDays, r.Days)
	}
	return nil
}

type Activity struct {
	Time         string `json:"time" example:"09:00 - 11:00"`
	Description  string `json:"description"`
	LocationName string `json:"locationName"`
}

type Meal struct {
	Time         string `json:"time" example:"12:00 - 13:00"`
	Name         string `json:"name"`
	LocationName string `json:"locationName"`
}

type Accommodation struct {
	Name         string `json:"name"`
	LocationName string `json:"locationName"`
}

// DayPlan is one day of a TripPlan. The last day normally has no
// accommodation and may have no dinner.
type DayPlan struct {
	Day                 int            `json:"day"`
	Theme               string         `json:"theme"`
	Activities          []Activity     `json:"activities"`
	Lunch               *Meal          `json:"lunch"`
	AfternoonActivities []Activity     `json:"afternoonActivities"`
	Dinner              *Meal          `json:"dinner"`
	Accommodation       *Accommodation `json:"accommodation"`
}

// TripPlan is the itinerary produced by the AI service.
type TripPlan struct {
	TripTitle string    `json:"tripTitle"`
	Days      []DayPlan `json:"days"`
}
