package planner

import (
	"errors"

	"github.com/FACorreiaa/go-smart-travel-planner/internal/types"
)

// User-facing notices. Technical detail only goes to the log.
const (
	MsgPlanReady          = "แผนการเดินทางของคุณพร้อมแล้ว!"
	MsgMissingAIKey       = "ยังไม่ได้ตั้งค่า API Key สำหรับบริการ AI จึงไม่สามารถสร้างแผนได้"
	MsgInvalidAIKey       = "API Key ของบริการ AI ไม่ถูกต้อง กรุณาตรวจสอบการตั้งค่า"
	MsgGenerationFailed   = "ไม่สามารถสร้างแผนการเดินทางได้ กรุณาลองใหม่อีกครั้ง"
	MsgInvalidPlanFormat  = "AI ตอบกลับในรูปแบบที่ไม่ถูกต้อง กรุณาลองใหม่อีกครั้ง"
	MsgBadRequest         = "กรุณาระบุเมือง สไตล์การเที่ยว และจำนวนวันให้ถูกต้อง"
	MsgUnexpected         = "เกิดข้อผิดพลาดที่ไม่คาดคิด กรุณาลองใหม่อีกครั้ง"
	MsgSaved              = "บันทึกแผนการเดินทางสำเร็จ!"
	MsgSaveFailed         = "ไม่สามารถบันทึกแผนได้ พื้นที่จัดเก็บอาจเต็ม"
	MsgNothingToSave      = "ไม่มีแผนการเดินทางให้บันทึก"
	MsgLoaded             = "โหลดแผนที่บันทึกไว้สำเร็จ!"
	MsgNothingSaved       = "ไม่พบแผนการเดินทางที่บันทึกไว้"
	MsgLoadFailed         = "ไม่สามารถโหลดแผนที่บันทึกไว้ได้"
	MsgSavedCleared       = "ลบแผนที่บันทึกไว้ออกจากที่จัดเก็บแล้ว"
	MsgClearSavedFailed   = "ไม่สามารถลบแผนที่บันทึกไว้ได้"
	MsgCurrentCleared     = "ล้างแผนการเดินทางปัจจุบันแล้ว"
	MsgMapsKeyMissingInfo = "ยังไม่ได้ตั้งค่า Google Maps API Key ฟีเจอร์แผนที่จึงถูกปิดใช้งาน"
	MsgInvalidMarker      = "หมายเลขหมุดไม่ถูกต้อง"
	MsgMarkerNotFound     = "ไม่พบหมุดที่เลือกบนแผนที่"
	MsgMapUnavailable     = "แผนที่ยังไม่พร้อมใช้งาน"
)

// UserMessage maps an error from plan generation to the short message
// shown to the user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, types.ErrBadRequest):
		return MsgBadRequest
	case errors.Is(err, types.ErrMissingAICredential):
		return MsgMissingAIKey
	case errors.Is(err, types.ErrInvalidAICredential):
		return MsgInvalidAIKey
	case errors.Is(err, types.ErrPlanParse), errors.Is(err, types.ErrInvalidPlan):
		return MsgInvalidPlanFormat
	case errors.Is(err, types.ErrGeneration):
		return MsgGenerationFailed
	default:
		return MsgUnexpected
	}
}
