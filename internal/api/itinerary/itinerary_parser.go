package itinerary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/FACorreiaa/go-smart-travel-planner/internal/types"
)

var fenceRegex = regexp.MustCompile("(?s)^```[\\w-]*[ \\t]*\\n?(.*?)\\n?\\s*```$")

// StripCodeFence removes a single fenced code block wrapping the payload.
func StripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if m := fenceRegex.FindStringSubmatch(s); m != nil && m[1] != "" {
		return strings.TrimSpace(m[1])
	}
	return s
}

// ParseItinerary decodes and structurally validates an AI response.
// Syntax failures return *types.ParseError, shape failures *types.ValidationError.
// Beyond the title, the day count and a numeric day, values are not checked.
func ParseItinerary(raw string, expectedDays int) (*types.TripPlan, error) {
	jsonStr := StripCodeFence(raw)

	var syntax any
	if err := json.Unmarshal([]byte(jsonStr), &syntax); err != nil {
		return nil, &types.ParseError{Raw: raw, Err: err}
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(jsonStr), &doc); err != nil || doc == nil {
		return nil, &types.ValidationError{Reason: "response is not a JSON object"}
	}

	var title string
	if err := json.Unmarshal(doc["tripTitle"], &title); err != nil || strings.TrimSpace(title) == "" {
		return nil, &types.ValidationError{Reason: "tripTitle is missing or empty"}
	}

	rawDays := bytes.TrimSpace(doc["days"])
	if len(rawDays) == 0 || rawDays[0] != '[' {
		return nil, &types.ValidationError{Reason: "days is not an array"}
	}
	var days []json.RawMessage
	if err := json.Unmarshal(rawDays, &days); err != nil {
		return nil, &types.ValidationError{Reason: "days is not an array"}
	}

	if len(days) != expectedDays {
		return nil, &types.ValidationError{
			Reason: fmt.Sprintf("expected %d days, got %d", expectedDays, len(days)),
		}
	}

	plan := &types.TripPlan{TripTitle: title, Days: make([]types.DayPlan, 0, len(days))}
	for i, d := range days {
		var entry map[string]json.RawMessage
		if err := json.Unmarshal(d, &entry); err != nil || entry == nil {
			return nil, &types.ValidationError{Reason: fmt.Sprintf("days[%d] is not an object", i)}
		}
		dayNum, ok := jsonNumber(entry["day"])
		if !ok {
			return nil, &types.ValidationError{Reason: fmt.Sprintf("days[%d].day is not a number", i)}
		}
		plan.Days = append(plan.Days, decodeDay(entry, dayNum))
	}
	return plan, nil
}

// decodeDay builds a DayPlan from a validated entry. Values are taken as
// they come: a field of an unexpected JSON type is converted or left empty,
// never rejected.
func decodeDay(entry map[string]json.RawMessage, day float64) types.DayPlan {
	return types.DayPlan{
		Day:                 int(math.Trunc(day)),
		Theme:               looseString(entry["theme"]),
		Activities:          looseActivities(entry["activities"]),
		Lunch:               looseMeal(entry["lunch"]),
		AfternoonActivities: looseActivities(entry["afternoonActivities"]),
		Dinner:              looseMeal(entry["dinner"]),
		Accommodation:       looseAccommodation(entry["accommodation"]),
	}
}

// looseString returns a JSON string as is and any other scalar as its
// literal text, so a time of 900 becomes "900".
func looseString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if raw[0] == '{' || raw[0] == '[' {
		return ""
	}
	return string(raw)
}

func looseObject(raw json.RawMessage) map[string]json.RawMessage {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	return obj
}

func looseActivities(raw json.RawMessage) []types.Activity {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]types.Activity, 0, len(items))
	for _, item := range items {
		obj := looseObject(item)
		if obj == nil {
			continue
		}
		out = append(out, types.Activity{
			Time:         looseString(obj["time"]),
			Description:  looseString(obj["description"]),
			LocationName: looseString(obj["locationName"]),
		})
	}
	return out
}

func looseMeal(raw json.RawMessage) *types.Meal {
	obj := looseObject(raw)
	if obj == nil {
		return nil
	}
	return &types.Meal{
		Time:         looseString(obj["time"]),
		Name:         looseString(obj["name"]),
		LocationName: looseString(obj["locationName"]),
	}
}

func looseAccommodation(raw json.RawMessage) *types.Accommodation {
	obj := looseObject(raw)
	if obj == nil {
		return nil
	}
	return &types.Accommodation{
		Name:         looseString(obj["name"]),
		LocationName: looseString(obj["locationName"]),
	}
}

// jsonNumber reports whether raw is a JSON number and returns its value.
func jsonNumber(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, false
	}
	if c := raw[0]; c != '-' && (c < '0' || c > '9') {
		return 0, false
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	f, err := n.Float64()
	if err != nil {
		return 0, false
	}
	return f, true
}
