package itinerary

import (
	"strings"

	"github.com/FACorreiaa/go-smart-travel-planner/internal/types"
)

// KeyLocations lists every distinct location name of plan in first-seen
// order, each with a map search link. Unlike the geocoder it keeps
// placeholder names: the links work without a maps credential.
func KeyLocations(plan *types.TripPlan) []types.KeyLocation {
	if plan == nil {
		return []types.KeyLocation{}
	}
	seen := make(map[string]struct{})
	out := make([]types.KeyLocation, 0)
	add := func(name string) {
		if strings.TrimSpace(name) == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, types.KeyLocation{Name: name, MapURL: types.MapSearchURL(name)})
	}

	for _, day := range plan.Days {
		for _, a := range day.Activities {
			add(a.LocationName)
		}
		for _, a := range day.AfternoonActivities {
			add(a.LocationName)
		}
		if day.Lunch != nil {
			add(day.Lunch.LocationName)
		}
		if day.Dinner != nil {
			add(day.Dinner.LocationName)
		}
		if day.Accommodation != nil {
			add(day.Accommodation.LocationName)
		}
	}
	return out
}
