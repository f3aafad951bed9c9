package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripPlanRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     TripPlanRequest
		maxDays int
		wantErr bool
	}{
		{"valid", TripPlanRequest{City: "เชียงใหม่", Style: TripStyleCity, Days: 3}, 14, false},
		{"one day", TripPlanRequest{City: "น่าน", Style: TripStyleNature, Days: 1}, 14, false},
		{"blank city", TripPlanRequest{City: "  ", Style: TripStyleCity, Days: 3}, 14, true},
		{"unknown style", TripPlanRequest{City: "ภูเก็ต", Style: "luxury", Days: 3}, 14, true},
		{"zero days", TripPlanRequest{City: "ภูเก็ต", Style: TripStyleCafe, Days: 0}, 14, true},
		{"above max", TripPlanRequest{City: "ภูเก็ต", Style: TripStyleCafe, Days: 15}, 14, true},
		{"no upper bound", TripPlanRequest{City: "ภูเก็ต", Style: TripStyleAdventure, Days: 30}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate(tt.maxDays)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadRequest)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTripStyle(t *testing.T) {
	opts := TripStyleOptions()
	require.Len(t, opts, 4)
	for _, o := range opts {
		assert.True(t, o.Value.Valid())
		assert.NotEqual(t, string(o.Value), o.Value.Label())
	}
	assert.Equal(t, "เที่ยวในเมือง", TripStyleCity.Label())
	assert.Equal(t, "luxury", TripStyle("luxury").Label())
	assert.False(t, TripStyle("luxury").Valid())
}

func TestTripPlan_JSONKeepsNulls(t *testing.T) {
	raw := `{"tripTitle":"แผนเที่ยว 1 วัน ที่ ลำปาง (สไตล์: เที่ยวในเมือง)","days":[{"day":1,"theme":"","activities":[],"lunch":null,"afternoonActivities":[],"dinner":null,"accommodation":null}]}`
	var plan TripPlan
	require.NoError(t, json.Unmarshal([]byte(raw), &plan))
	assert.Nil(t, plan.Days[0].Dinner)
	assert.Nil(t, plan.Days[0].Accommodation)

	out, err := json.Marshal(plan)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestBounds(t *testing.T) {
	var b Bounds
	assert.True(t, b.IsEmpty())

	b.Extend(LatLng{Lat: 18.8, Lng: 98.9})
	assert.False(t, b.IsEmpty())
	assert.Equal(t, b.SouthWest, b.NorthEast)

	b.Extend(LatLng{Lat: 18.7, Lng: 99.0})
	assert.Equal(t, LatLng{Lat: 18.7, Lng: 98.9}, b.SouthWest)
	assert.Equal(t, LatLng{Lat: 18.8, Lng: 99.0}, b.NorthEast)
}

func TestMapSearchURL(t *testing.T) {
	assert.Equal(t, "https://maps.google.com/?q=Wat+Phra+Singh", MapSearchURL("Wat Phra Singh"))
	assert.Equal(t, "https://maps.google.com/?q=%E0%B8%A7%E0%B8%B1%E0%B8%94", MapSearchURL("วัด"))
	assert.Equal(t, "https://maps.google.com/?q=A%26B", MapSearchURL("A&B"))
}

func TestPlanErrors(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	var pe error = &ParseError{Raw: "{", Err: cause}
	assert.ErrorIs(t, pe, ErrPlanParse)
	assert.ErrorIs(t, pe, cause)
	assert.NotErrorIs(t, pe, ErrInvalidPlan)

	var ve error = &ValidationError{Reason: "days is not an array"}
	assert.ErrorIs(t, ve, ErrInvalidPlan)
	assert.Contains(t, ve.Error(), "days is not an array")
}
