package dto

// ── clock ──

// PunchRequest a Time-In or Time-Out submitted at the kiosk
type PunchRequest struct {
	Name       string `json:"name"        binding:"max=200"`
	EmployeeID string `json:"employee_id" binding:"max=64"`
	Type       string `json:"type"        binding:"required,oneof=IN OUT"`
}

// LogResponse one stored attendance event
type LogResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Timestamp  string `json:"timestamp"`
	Category   string `json:"category"`
}

// PunchResponse outcome of a punch. Synced is false while the durable write
// is pending or after it failed; SyncError is set only on failure.
type PunchResponse struct {
	Log       LogResponse `json:"log"`
	Synced    bool        `json:"synced"`
	SyncError string      `json:"sync_error,omitempty"`
}

// CategoriesResponse configured log partitions
type CategoriesResponse struct {
	Categories []string `json:"categories"`
	Default    string   `json:"default"`
}
