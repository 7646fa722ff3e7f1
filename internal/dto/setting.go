package dto

// UpdateSettingRequest kiosk policy update
type UpdateSettingRequest struct {
	RequireName *bool `json:"require_name" binding:"required"`
}

// SettingResponse kiosk policy
type SettingResponse struct {
	RequireName bool   `json:"require_name"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}
