package dto

// ── roster ──

// Import modes
const (
	ImportReplace = "replace"
	ImportUpsert  = "upsert"
)

// ImportEmployeeQuery roster import options
type ImportEmployeeQuery struct {
	Mode string `form:"mode" binding:"omitempty,oneof=replace upsert"`
}

// EmployeeResponse roster entry
type EmployeeResponse struct {
	EmployeeNo   string `json:"employee_no"`
	EmployeeName string `json:"employee_name"`
	JacketSize   string `json:"jacket_size"`
	Department   string `json:"department,omitempty"`
	Position     string `json:"position,omitempty"`
}

// ImportEmployeeResponse roster import summary
type ImportEmployeeResponse struct {
	Total int    `json:"total"`
	Mode  string `json:"mode"`
}
