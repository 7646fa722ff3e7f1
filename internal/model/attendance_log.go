package model

import "time"

// Punch types
const (
	PunchIn  = "IN"
	PunchOut = "OUT"
)

// AttendanceLog one clock event, table attendance_logs
//
// Rows are append-only; a category's rows are removed together by an
// explicit clear and never edited in place.
type AttendanceLog struct {
	ID         string    `gorm:"type:uuid;primaryKey"                           json:"id"`
	EmployeeID string    `gorm:"type:varchar(64);not null;default:''"            json:"employee_id"`
	Name       string    `gorm:"type:varchar(200);not null;default:''"           json:"name"` // snapshot at punch time
	Type       string    `gorm:"type:varchar(3);not null"                       json:"type"` // IN | OUT
	Timestamp  time.Time `gorm:"not null;index:idx_logs_category_ts,priority:2" json:"timestamp"`
	Category   string    `gorm:"type:varchar(32);not null;index:idx_logs_category_ts,priority:1" json:"category"`
}

// TableName table name
func (AttendanceLog) TableName() string { return "attendance_logs" }

// ValidPunchType reports whether t is IN or OUT.
func ValidPunchType(t string) bool {
	return t == PunchIn || t == PunchOut
}
