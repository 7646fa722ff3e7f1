package model

// ClockSetting kiosk policy, table clock_settings (single row)
type ClockSetting struct {
	Singleton   bool `gorm:"primaryKey;default:true" json:"-"`
	RequireName bool `gorm:"not null"                json:"require_name"`
	BaseModel
}

// TableName table name
func (ClockSetting) TableName() string { return "clock_settings" }
