package dto

// DayQuery selects a calendar day in the viewer's timezone.
type DayQuery struct {
	Date string `form:"date"` // YYYY-MM-DD, today when empty
	TZ   string `form:"tz"`   // IANA name, server zone when empty
}

// DayLogResponse one event of the day as shown in the log table
type DayLogResponse struct {
	LogResponse
	Time       string `json:"time"`
	JacketSize string `json:"jacket_size"`
	Latest     bool   `json:"latest"`
}

// DayLogsResponse raw events of a day, newest first
type DayLogsResponse struct {
	Category string           `json:"category"`
	Date     string           `json:"date"`
	Logs     []DayLogResponse `json:"logs"`
	Degraded bool             `json:"degraded"`
}
