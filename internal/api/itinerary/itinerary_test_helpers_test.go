package itinerary

import (
	"fmt"
	"strings"
)

// planJSON builds a well-formed response with days day objects.
func planJSON(title string, days int) string {
	var b strings.Builder
	fmt.Fprintf(&b, `{"tripTitle": %q, "days": [`, title)
	for d := 1; d <= days; d++ {
		if d > 1 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{
			"day": %d,
			"theme": "วันที่ %d",
			"activities": [{"time": "09:00 - 11:00", "description": "ไหว้พระ", "locationName": "วัดพระธาตุดอยสุเทพ"}],
			"lunch": {"time": "12:00 - 13:00", "name": "ข้าวซอยแม่สาย", "locationName": "ข้าวซอยแม่สาย"},
			"afternoonActivities": [{"time": "14:30 - 16:00", "description": "เดินเล่น", "locationName": "ถนนนิมมานเหมินท์"}],
			"dinner": null,
			"accommodation": null
		}`, d, d)
	}
	b.WriteString("]}")
	return b.String()
}
