package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-smart-travel-planner/internal/types"
)

func TestKeyLocations(t *testing.T) {
	plan := &types.TripPlan{
		TripTitle: "t",
		Days: []types.DayPlan{
			{
				Day:                 1,
				Activities:          []types.Activity{{LocationName: "วัดเจดีย์หลวง"}, {LocationName: " "}},
				Lunch:               &types.Meal{LocationName: "ข้าวซอยแม่สาย"},
				AfternoonActivities: []types.Activity{{LocationName: "ถนนนิมมานเหมินท์"}},
				Dinner:              &types.Meal{LocationName: "วัดเจดีย์หลวง"},
				Accommodation:       &types.Accommodation{LocationName: "โรงแรม/ที่พักในย่านตัวเมือง เชียงใหม่"},
			},
			{
				Day:        2,
				Activities: []types.Activity{{LocationName: "ข้าวซอยแม่สาย"}, {LocationName: "ดอยอินทนนท์"}},
			},
		},
	}

	got := KeyLocations(plan)
	require.Len(t, got, 5)

	names := make([]string, len(got))
	for i, k := range got {
		names[i] = k.Name
		assert.Equal(t, types.MapSearchURL(k.Name), k.MapURL)
	}
	assert.Equal(t, []string{
		"วัดเจดีย์หลวง",
		"ถนนนิมมานเหมินท์",
		"ข้าวซอยแม่สาย",
		"โรงแรม/ที่พักในย่านตัวเมือง เชียงใหม่",
		"ดอยอินทนนท์",
	}, names)
}

func TestKeyLocations_NilPlan(t *testing.T) {
	assert.Empty(t, KeyLocations(nil))
}
