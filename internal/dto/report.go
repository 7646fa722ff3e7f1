package dto

// ReportQuery daily report parameters
type ReportQuery struct {
	DayQuery
	IncludeJacket *bool `form:"include_jacket"`
}

// ReportRowResponse one employee's day
type ReportRowResponse struct {
	EmployeeNo   string `json:"employee_no"`
	EmployeeName string `json:"employee_name"`
	Date         string `json:"date"`
	TimeIn       string `json:"time_in"`
	TimeOut      string `json:"time_out"`
	JacketSize   string `json:"jacket_size,omitempty"`
}

// DailyReportResponse report rows for one category and day
type DailyReportResponse struct {
	Category string              `json:"category"`
	Date     string              `json:"date"`
	Rows     []ReportRowResponse `json:"rows"`
	Degraded bool                `json:"degraded"`
}
