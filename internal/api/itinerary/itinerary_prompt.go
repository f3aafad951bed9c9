package itinerary

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-smart-travel-planner/internal/types"
)

// Fallback phrases the model is told to use when it cannot name a venue.
// The geocoder filters locations carrying them.
const (
	FallbackChooseNearby = "แนะนำให้ผู้ใช้เลือกตามชอบในย่านนั้น"
	fallbackHotelPrefix  = "โรงแรม/ที่พักในย่านตัวเมือง"
)

// FallbackHotel is the accommodation fallback phrase for city.
func FallbackHotel(city string) string {
	return fallbackHotelPrefix + " " + city
}

// TripTitle renders the title the model is asked to return. The city sits
// between "ที่ " and " (" so it can be recovered from a stored plan.
func TripTitle(city string, style types.TripStyle, days int) string {
	if days <= 1 {
		return fmt.Sprintf("แผนเที่ยว 1 วัน ที่ %s (สไตล์: %s)", city, style.Label())
	}
	return fmt.Sprintf("แผนเที่ยว %d วัน %d คืน ที่ %s (สไตล์: %s)", days, days-1, city, style.Label())
}

// Prompts returns the system instruction and user prompt for req.
func Prompts(req types.TripPlanRequest) (systemInstruction, prompt string) {
	return getSystemInstruction(req.City, req.Style, req.Days), getUserPrompt(req.City, req.Style, req.Days)
}

func getUserPrompt(city string, style types.TripStyle, days int) string {
	return fmt.Sprintf("สร้างแผนเที่ยว %d วันสำหรับ %s สไตล์ %s ตามโครงสร้าง JSON ที่กำหนดใน system instruction.",
		days, city, style.Label())
}

func getSystemInstruction(city string, style types.TripStyle, days int) string {
	return fmt.Sprintf(`
คุณคือนักวางแผนท่องเที่ยวมืออาชีพ AI ผู้เชี่ยวชาญการจัดทริปในประเทศไทย
ภารกิจของคุณคือสร้างแผนการเดินทาง %[1]d วัน สำหรับเมือง/จังหวัด "%[2]s" ตามสไตล์ทริป "%[3]s"

ข้อกำหนดสำคัญมากสำหรับการตอบกลับ:
1.  **ต้องตอบกลับเป็น JSON object เท่านั้น** ไม่มีการนำหน้าหรือต่อท้ายด้วยข้อความใดๆ และห้ามใช้ markdown code fences
2.  JSON object ต้องมีโครงสร้างตามที่ระบุข้างล่างนี้ทุกประการ และ "days" ต้องมีจำนวน %[1]d รายการพอดี โดย "day" เรียงจาก 1 ถึง %[1]d
3.  ข้อมูลทั้งหมดต้องเป็นภาษาไทย
4.  ชื่อสถานที่ (locationName) ต้องเป็นชื่อที่สามารถนำไปค้นหาบน Google Maps ได้จริง
5.  หากข้อมูลบางส่วน เช่น ร้านอาหารหรือที่พัก ไม่สามารถระบุชื่อเฉพาะได้ ให้ใช้คำว่า "%[4]s" หรือ "%[5]s"
6.  วันที่ %[1]d ซึ่งเป็นวันสุดท้าย ต้องมี "accommodation" เป็น null และ "dinner" เป็น null ได้
7.  ใส่ความคิดสร้างสรรค์ลงไปในแผน ให้ทริปน่าสนใจและสมเหตุสมผล

โครงสร้าง JSON ที่ต้องการ:
%[6]s
`, days, city, style.Label(), FallbackChooseNearby, FallbackHotel(city), schemaTemplate(city, style, days))
}

// schemaTemplate writes day 1 and the last day in full; the days between
// are summarised by an ellipsis note.
func schemaTemplate(city string, style types.TripStyle, days int) string {
	var b strings.Builder
	b.WriteString("{\n")
	fmt.Fprintf(&b, "  \"tripTitle\": %q,\n", TripTitle(city, style, days))
	b.WriteString("  \"days\": [\n")
	if days == 1 {
		b.WriteString(lastDayTemplate(1))
	} else {
		b.WriteString(firstDayTemplate())
		b.WriteString(",\n")
		if days > 2 {
			fmt.Fprintf(&b, "    // ... วันที่ 2 ถึงวันที่ %d ใช้โครงสร้างเดียวกับวันที่ 1 ...\n", days-1)
		}
		b.WriteString(lastDayTemplate(days))
	}
	b.WriteString("\n  ]\n}")
	return b.String()
}

func firstDayTemplate() string {
	return `    {
      "day": 1,
      "theme": "ตัวอย่าง: สำรวจใจกลางเมืองและวัฒนธรรมท้องถิ่น",
      "activities": [
        { "time": "09:00 - 11:00", "description": "กิจกรรมช่วงเช้า 1", "locationName": "ชื่อสถานที่ 1" },
        { "time": "11:30 - 12:30", "description": "กิจกรรมช่วงเช้า 2", "locationName": "ชื่อสถานที่ 2" }
      ],
      "lunch": { "time": "13:00 - 14:00", "name": "ชื่อร้านอาหารกลางวัน", "locationName": "ชื่อร้านอาหารกลางวัน" },
      "afternoonActivities": [
        { "time": "15:00 - 17:00", "description": "กิจกรรมช่วงบ่าย", "locationName": "ชื่อสถานที่ 3" }
      ],
      "dinner": { "time": "18:30 - 20:00", "name": "ชื่อร้านอาหารเย็น", "locationName": "ชื่อร้านอาหารเย็น" },
      "accommodation": { "name": "ชื่อที่พักคืนแรก", "locationName": "ชื่อที่พัก" }
    }`
}

func lastDayTemplate(day int) string {
	return fmt.Sprintf(`    {
      "day": %d,
      "theme": "ตัวอย่าง: พักผ่อนหย่อนใจและซื้อของฝาก",
      "activities": [
        { "time": "09:00 - 11:00", "description": "กิจกรรมช่วงเช้า", "locationName": "ชื่อสถานที่ 4" },
        { "time": "11:30 - 12:30", "description": "ซื้อของฝาก", "locationName": "ชื่อตลาดหรือแหล่งช้อปปิ้ง" }
      ],
      "lunch": { "time": "13:00 - 14:00", "name": "ชื่อร้านอาหารกลางวันก่อนเดินทางกลับ", "locationName": "ชื่อร้านอาหาร" },
      "afternoonActivities": [],
      "dinner": null,
      "accommodation": null
    }`, day)
}
